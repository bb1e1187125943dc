package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/domain/service"
	"github.com/diillson/finops-variance-go/internal/logger"
)

const (
	// DefaultAuditPageSize é o tamanho de cada página lida do razão.
	DefaultAuditPageSize = 1000
	// DefaultAuditMaxRows limita o total de linhas de uma auditoria.
	DefaultAuditMaxRows = 500000
)

// AuditUseCase agrega o ano inteiro do razão em páginas, com limite de linhas.
type AuditUseCase struct {
	ledgerRepo repository.LedgerRepository
	pageSize   int
	maxRows    int
}

// NewAuditUseCase cria o caso de uso com os limites padrão.
func NewAuditUseCase(ledgerRepo repository.LedgerRepository) *AuditUseCase {
	return &AuditUseCase{
		ledgerRepo: ledgerRepo,
		pageSize:   DefaultAuditPageSize,
		maxRows:    DefaultAuditMaxRows,
	}
}

// WithLimits devolve uma cópia com tamanho de página e limite customizados.
func (uc *AuditUseCase) WithLimits(pageSize, maxRows int) *AuditUseCase {
	clone := *uc
	if pageSize > 0 {
		clone.pageSize = pageSize
	}
	if maxRows > 0 {
		clone.maxRows = maxRows
	}
	return &clone
}

// RunLedgerAudit pagina o razão do ano até esgotar os dados ou atingir o
// limite. Truncated só é marcado quando existe ao menos uma linha além do
// limite, e não é erro. Uma falha no meio devolve o que já foi agregado junto
// com o erro.
func (uc *AuditUseCase) RunLedgerAudit(
	ctx context.Context,
	tenantID string,
	year int,
	companyFilter []string,
) (entity.LedgerAudit, error) {
	audit := entity.LedgerAudit{
		TenantID: tenantID,
		Year:     year,
		Cells:    []entity.AggregatedCell{},
	}

	if tenantID == "" || !(entity.Period{Year: year, Month: entity.January}).Valid() {
		return audit, nil
	}

	log := logger.FromContext(ctx)

	companies, dirErr := uc.ledgerRepo.ListCompanies(ctx, tenantID)
	if dirErr != nil {
		dirErr = fmt.Errorf("error listing companies: %w", dirErr)
		if len(companyFilter) > 0 {
			return audit, dirErr
		}
		log.Warn().Err(dirErr).Msg("company directory unavailable, rows stay unresolved")
	}
	directory := service.NewCompanyDirectory(companies)

	query := entity.LedgerQuery{TenantID: tenantID, Year: year}
	if len(companyFilter) > 0 {
		query.CompanyIDs = directory.EffectiveCompanyIDs(companyFilter)
		if len(query.CompanyIDs) == 0 {
			return audit, nil
		}
	}

	grouper := service.NewGrouper(directory)
	exhausted := false

	for grouper.Rows() < uc.maxRows {
		if err := ctx.Err(); err != nil {
			audit.Cells = grouper.Cells()
			audit.RowsScanned = grouper.Rows()
			return audit, errors.Join(dirErr, err)
		}

		limit := uc.pageSize
		if remaining := uc.maxRows - grouper.Rows(); remaining < limit {
			limit = remaining
		}

		page, err := uc.ledgerRepo.FetchLedgerPage(ctx, query, grouper.Rows(), limit)
		if err != nil {
			audit.Cells = grouper.Cells()
			audit.RowsScanned = grouper.Rows()
			return audit, errors.Join(dirErr, fmt.Errorf("error fetching ledger page %d: %w", audit.Pages+1, err))
		}

		if len(page) > 0 {
			audit.Pages++
			grouper.Add(page...)
		}

		if len(page) < limit {
			exhausted = true
			break
		}
	}

	// Limite atingido: uma linha a mais decide se algo ficou de fora
	if !exhausted {
		next, err := uc.ledgerRepo.FetchLedgerPage(ctx, query, grouper.Rows(), 1)
		exhausted = err == nil && len(next) == 0
	}

	audit.Cells = grouper.Cells()
	audit.RowsScanned = grouper.Rows()
	audit.Truncated = !exhausted

	if audit.Truncated {
		log.Warn().
			Int("rows", audit.RowsScanned).
			Int("limit", uc.maxRows).
			Msg("ledger audit reached the row limit, result is partial")
	}

	return audit, dirErr
}
