package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/domain/service"
)

// LedgerAggregator busca os lançamentos de um período e os reduz a células
// (conta, departamento, empresa).
type LedgerAggregator struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerAggregator cria um novo agregador.
func NewLedgerAggregator(ledgerRepo repository.LedgerRepository) *LedgerAggregator {
	return &LedgerAggregator{ledgerRepo: ledgerRepo}
}

// Aggregate devolve as células do período. Entrada inválida ou filtro de
// empresas sem nenhuma empresa conhecida resultam em agregação vazia sem
// consulta ao razão. Sem diretório de empresas e sem filtro, os lançamentos
// ainda são somados como empresa não resolvida e o erro é devolvido junto.
func (a *LedgerAggregator) Aggregate(
	ctx context.Context,
	tenantID string,
	period entity.Period,
	companyFilter []string,
) (entity.PeriodAggregation, error) {
	result := entity.PeriodAggregation{Period: period, Cells: []entity.AggregatedCell{}}

	if tenantID == "" || !period.Valid() {
		return result, nil
	}

	companies, dirErr := a.ledgerRepo.ListCompanies(ctx, tenantID)
	if dirErr != nil {
		dirErr = fmt.Errorf("error listing companies for %s: %w", period.Label(), dirErr)
		// Filtro não pode ser resolvido sem o diretório
		if len(companyFilter) > 0 {
			return result, dirErr
		}
	}
	directory := service.NewCompanyDirectory(companies)

	query := entity.LedgerQuery{
		TenantID: tenantID,
		Year:     period.Year,
		Month:    period.Month,
	}

	if len(companyFilter) > 0 {
		query.CompanyIDs = directory.EffectiveCompanyIDs(companyFilter)
		// Filtro sem empresa válida nunca vira consulta sem restrição
		if len(query.CompanyIDs) == 0 {
			return result, nil
		}
	}

	rows, err := a.ledgerRepo.FetchLedgerRows(ctx, query)
	if err != nil {
		return result, errors.Join(dirErr, fmt.Errorf("error fetching ledger rows for %s: %w", period.Label(), err))
	}

	result.Cells = service.AggregateRows(rows, directory)
	return result, dirErr
}
