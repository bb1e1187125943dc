package postgres

import (
	"testing"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func TestBuildLedgerQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    entity.LedgerQuery
		offset   int
		limit    int
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:     "month without company filter",
			query:    entity.LedgerQuery{TenantID: "t1", Year: 2024, Month: entity.March},
			contains: []string{"e.period_label = $3"},
			absent:   []string{"ANY(", "LIMIT"},
			args:     []any{"t1", 2024, "MARÇO"},
		},
		{
			name:     "month with companies",
			query:    entity.LedgerQuery{TenantID: "t1", Year: 2024, Month: entity.January, CompanyIDs: []string{"c1", "c2"}},
			contains: []string{"e.period_label = $3", "e.company_id = ANY($4)"},
			args:     []any{"t1", 2024, "JANEIRO", []string{"c1", "c2"}},
		},
		{
			name:     "whole year paged",
			query:    entity.LedgerQuery{TenantID: "t1", Year: 2024, CompanyIDs: []string{"c1"}},
			offset:   2000,
			limit:    1000,
			contains: []string{"e.company_id = ANY($3)", "ORDER BY e.id", "LIMIT $4 OFFSET $5"},
			absent:   []string{"period_label ="},
			args:     []any{"t1", 2024, []string{"c1"}, 1000, 2000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildLedgerQuery(tt.query, tt.offset, tt.limit)
			for _, s := range tt.contains {
				require.Contains(t, sql, s)
			}
			for _, s := range tt.absent {
				require.NotContains(t, sql, s)
			}
			require.Equal(t, tt.args, args)
		})
	}
}
