package repository

import (
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
)

type ExportRepository interface {
	// Detailed (itemized) billing report
	ExportDetailedToCSV(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error)
	ExportDetailedToJSON(report *entity.DetailedBillingReport, filename, outputDir string) (string, error)
	ExportDetailedToPDF(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error)
	ExportDetailedToXLSX(report *entity.DetailedBillingReport, accountName, filename, outputDir string) (string, error)

	// Summary billing report
	ExportSummaryToCSV(report *entity.BillingReport, accountName, filename, outputDir string) (string, error)
	ExportSummaryToJSON(report *entity.BillingReport, filename, outputDir string) (string, error)
	ExportSummaryToPDF(report *entity.BillingReport, accountName, filename, outputDir string) (string, error)
}
