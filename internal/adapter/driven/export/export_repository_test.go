package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDetailedReport() *entity.DetailedBillingReport {
	ts := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	return &entity.DetailedBillingReport{
		AccountID: 1,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Breakdown: []entity.BillingJobRow{
			{
				Timestamp:  ts,
				UserName:   "Maria Silva",
				JobID:      "job-001",
				PromptName: "Minuta de Escritura",
				ModelName:  "gpt-4o",
				Cost:       1.2345,
			},
			{
				Timestamp:  ts.Add(time.Hour),
				UserName:   "João Souza",
				JobID:      "job-002",
				PromptName: "Qualificação Registral",
				ModelName:  "gpt-4o-mini",
				Cost:       0.5,
			},
		},
	}
}

func TestExportDetailedToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportDetailedToCSV(sampleDetailedReport(), "Cartório A", "report", dir)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, detailedHeaders, records[0])
	assert.Equal(t, "Cartório A", records[1][1], "account name fills in when the row carries none")
	assert.Equal(t, "Maria Silva", records[1][2])
	assert.Equal(t, "job-001", records[1][3])
	assert.Equal(t, "1.2345", records[1][6])
	assert.Equal(t, "0.5000", records[2][6])
}

func TestExportDetailedToJSON(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	report := sampleDetailedReport()
	path, err := repo.ExportDetailedToJSON(report, "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.DetailedBillingReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.StartDate, decoded.StartDate)
	require.Len(t, decoded.Breakdown, 2)
	assert.Equal(t, "job-002", decoded.Breakdown[1].JobID)
}

func TestExportDetailedToXLSX(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportDetailedToXLSX(sampleDetailedReport(), "Cartório A", "report", dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Faturamento")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, detailedHeaders, rows[0])
	assert.Equal(t, "Cartório A", rows[1][1])
	assert.Equal(t, "job-001", rows[1][3])
}

func TestExportSummaryToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	report := &entity.BillingReport{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Summary:   entity.BillingSummary{TotalJobs: 10, TotalTokens: 5000, TotalCost: 12.5},
		ByModel: []entity.ModelUsage{
			{ModelName: "gpt-4o", Jobs: 6, Tokens: 3000, Cost: 9.5},
			{ModelName: "gpt-4o-mini", Jobs: 4, Tokens: 2000, Cost: 3.0},
		},
	}

	path, err := repo.ExportSummaryToCSV(report, "Todas as Contas", "report", dir)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Account", "Period", "Model", "Jobs", "Tokens", "Cost"}, records[0])
	assert.Equal(t, "gpt-4o", records[1][2])
	assert.Equal(t, "TOTAL", records[3][2])
	assert.Equal(t, "12.5000", records[3][5])
}

func TestGenerateFilenameCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"

	path, err := generateFilename("report", dir, "csv")
	require.NoError(t, err)
	assert.Contains(t, path, "report_")
	assert.Contains(t, path, ".csv")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanRichTags(t *testing.T) {
	assert.Equal(t, "Cartório A", cleanRichTags("[red]Cartório A[/red]"))
	assert.Equal(t, "ativo", cleanRichTags("\x1b[32mativo\x1b[0m"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 28))
	long := "um nome de prompt comprido demais para a célula"
	assert.Len(t, truncate(long, 28), 28)
}
