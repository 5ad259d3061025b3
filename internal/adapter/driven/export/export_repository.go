package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/setdocai/setdoc-admin-go/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// Colunas do relatório detalhado, na ordem usada em todos os formatos.
var detailedHeaders = []string{
	"Timestamp", "Account Name", "User Name", "Job ID", "Prompt Name", "Model Name", "Cost",
}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Relatório detalhado (itemizado) ---

func (r *ExportRepositoryImpl) ExportDetailedToCSV(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(detailedHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range report.Breakdown {
		record := detailedRecord(row, accountName)
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportDetailedToJSON(report *entity.DetailedBillingReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportDetailedToPDF(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Relatório Detalhado de Faturamento: %s", accountName)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Período: %s a %s", report.StartDate, report.EndDate)), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	colWidths := []float64{36, 44, 40, 42, 44, 38, 22}

	drawHeaderRow := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		for i, h := range detailedHeaders {
			pdf.CellFormat(colWidths[i], 7, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	drawHeaderRow()

	var total float64
	for _, row := range report.Breakdown {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			drawHeaderRow()
		}
		record := detailedRecord(row, accountName)
		for i, cell := range record {
			pdf.CellFormat(colWidths[i], 6, tr(truncate(cell, 28)), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		total += row.Cost
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total do período: R$ %.4f (%d jobs)", total, len(report.Breakdown))), "", 1, "L", false, 0, "")

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by SetDoc Admin Dashboard | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportDetailedToXLSX gera a planilha oferecida como download no painel.
func (r *ExportRepositoryImpl) ExportDetailedToXLSX(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Faturamento"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range detailedHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, row := range report.Breakdown {
		values := []interface{}{
			row.Timestamp.Format(time.RFC3339),
			accountName,
			row.UserName,
			row.JobID,
			row.PromptName,
			row.ModelName,
			row.Cost,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Relatório resumido ---

func (r *ExportRepositoryImpl) ExportSummaryToCSV(report *entity.BillingReport, accountName, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Account", "Period", "Model", "Jobs", "Tokens", "Cost"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	period := fmt.Sprintf("%s to %s", report.StartDate, report.EndDate)
	for _, m := range report.ByModel {
		record := []string{
			accountName,
			period,
			m.ModelName,
			fmt.Sprintf("%d", m.Jobs),
			fmt.Sprintf("%d", m.Tokens),
			fmt.Sprintf("%.4f", m.Cost),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	totals := []string{
		accountName,
		period,
		"TOTAL",
		fmt.Sprintf("%d", report.Summary.TotalJobs),
		fmt.Sprintf("%d", report.Summary.TotalTokens),
		fmt.Sprintf("%.4f", report.Summary.TotalCost),
	}
	if err := writer.Write(totals); err != nil {
		return "", fmt.Errorf("error writing CSV record: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToJSON(report *entity.BillingReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToPDF(report *entity.BillingReport, accountName, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Relatório de Faturamento: %s", accountName)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Período: %s a %s", report.StartDate, report.EndDate)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	summary := fmt.Sprintf("Total de Jobs Processados: %d\nTotal de Tokens: %d\nCusto Total: R$ %.4f",
		report.Summary.TotalJobs, report.Summary.TotalTokens, report.Summary.TotalCost)
	drawSection("Resumo do Período", summary)

	if len(report.ByModel) > 0 {
		var lines string
		for _, m := range report.ByModel {
			lines += fmt.Sprintf("%s: %d jobs, %d tokens, R$ %.4f\n", m.ModelName, m.Jobs, m.Tokens, m.Cost)
		}
		drawSection("Detalhes por Modelo", lines)
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by SetDoc Admin Dashboard | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

func detailedRecord(row entity.BillingJobRow, accountName string) []string {
	name := row.AccountName
	if name == "" {
		name = accountName
	}
	return []string{
		row.Timestamp.Format(time.RFC3339),
		cleanRichTags(name),
		cleanRichTags(row.UserName),
		row.JobID,
		cleanRichTags(row.PromptName),
		row.ModelName,
		fmt.Sprintf("%.4f", row.Cost),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
