package postgres

import (
	"fmt"
	"strings"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

const ledgerSelect = `
	SELECT e.account_id, COALESCE(a.name, e.account_id), COALESCE(a.account_type, ''),
	       COALESCE(e.department, ''), e.company_id, e.amount, COALESCE(e.nature, '')
	FROM ledger_entries e
	LEFT JOIN accounts a ON a.tenant_id = e.tenant_id AND a.id = e.account_id`

// buildLedgerQuery monta o SELECT do razão com os filtros da consulta.
// Paginação só é aplicada com limit > 0 e usa ordenação estável por id.
func buildLedgerQuery(q entity.LedgerQuery, offset, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(ledgerSelect)

	args := []any{q.TenantID, q.Year}
	sb.WriteString("\n\tWHERE e.tenant_id = $1 AND e.year = $2")

	if !q.AllMonths() {
		args = append(args, q.Month.String())
		fmt.Fprintf(&sb, " AND e.period_label = $%d", len(args))
	}
	if len(q.CompanyIDs) > 0 {
		args = append(args, q.CompanyIDs)
		fmt.Fprintf(&sb, " AND e.company_id = ANY($%d)", len(args))
	}

	if limit > 0 {
		sb.WriteString("\n\tORDER BY e.id")
		args = append(args, limit, offset)
		fmt.Fprintf(&sb, "\n\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return sb.String(), args
}
