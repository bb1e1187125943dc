package repository

import (
	"context"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportAlertsToCSV(result entity.AnalysisResult, filename, outputDir string) (string, error)
	ExportAlertsToJSON(result entity.AnalysisResult, filename, outputDir string) (string, error)
	ExportAlertsToPDF(result entity.AnalysisResult, filename, outputDir string) (string, error)

	// Audit
	ExportLedgerAuditToCSV(audit entity.LedgerAudit, filename, outputDir string) (string, error)
	ExportLedgerAuditToJSON(audit entity.LedgerAudit, filename, outputDir string) (string, error)
}

// ReportUploader publica um arquivo exportado em um destino remoto.
type ReportUploader interface {
	UploadReport(ctx context.Context, localPath string) (string, error)
}
