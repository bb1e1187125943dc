package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDepartment é usado quando o lançamento não informa departamento.
const DefaultDepartment = "GERAL"

// Nature é a natureza contábil (débito/crédito) de um lançamento.
type Nature string

const (
	NatureDebit  Nature = "D"
	NatureCredit Nature = "C"
)

// ParseNature aceita "D"/"C" e variações por extenso ("debito", "credit", ...).
// Naturezas desconhecidas devolvem "" e não caem em nenhum dos baldes.
func ParseNature(s string) Nature {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case v == "D" || strings.HasPrefix(v, "DEB") || strings.HasPrefix(v, "DÉB"):
		return NatureDebit
	case v == "C" || strings.HasPrefix(v, "CRED") || strings.HasPrefix(v, "CRÉD"):
		return NatureCredit
	default:
		return ""
	}
}

// AccountType vem do plano de contas. Contas legadas sem tipo ficam
// Unclassified e são classificadas por palavra-chave no nome.
type AccountType string

const (
	AccountTypeUnclassified AccountType = ""
	AccountTypeExpense      AccountType = "expense"
	AccountTypeRevenue      AccountType = "revenue"
)

// ParseAccountType normaliza o tipo vindo do armazenamento.
func ParseAccountType(s string) AccountType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "despesa", "custo", "cost":
		return AccountTypeExpense
	case "revenue", "receita":
		return AccountTypeRevenue
	default:
		return AccountTypeUnclassified
	}
}

// LedgerRow é um lançamento bruto do razão externo. Somente leitura.
type LedgerRow struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type,omitempty"`
	Department  string          `json:"department"`
	CompanyRef  string          `json:"company_reference"`
	Amount      decimal.Decimal `json:"signed_amount"`
	Nature      Nature          `json:"nature"`
}

// DepartmentOrDefault devolve o departamento ou "GERAL" quando vazio.
func (r LedgerRow) DepartmentOrDefault() string {
	if d := strings.TrimSpace(r.Department); d != "" {
		return d
	}
	return DefaultDepartment
}

// Company é uma empresa do tenant, resolvida por ID ou nome de exibição.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LedgerQuery são os filtros aceitos pelo armazenamento do razão.
// CompanyIDs vazio significa "sem restrição".
type LedgerQuery struct {
	TenantID   string   `json:"tenant_id"`
	Year       int      `json:"year"`
	Month      Month    `json:"month"`
	CompanyIDs []string `json:"company_ids,omitempty"`
}

// AllMonths indica, em consultas em lote, que o ano inteiro deve ser lido.
func (q LedgerQuery) AllMonths() bool {
	return q.Month == 0
}

// CellKey identifica uma célula agregada. CompanyRef guarda a referência
// original apenas quando a empresa não foi resolvida.
type CellKey struct {
	AccountName string `json:"account_name"`
	Department  string `json:"department"`
	CompanyID   string `json:"company_id"`
	CompanyRef  string `json:"company_ref,omitempty"`
}

// AggregatedCell é a soma de um período para (conta, departamento, empresa).
// CompanyID vazio agrupa lançamentos cuja empresa não foi resolvida, um por
// referência original.
type AggregatedCell struct {
	CellKey
	AccountID   string          `json:"account_id,omitempty"`
	AccountType AccountType     `json:"account_type,omitempty"`
	CompanyName string          `json:"company_name,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Entries     int             `json:"entries"`
}

// Resolved informa se a empresa da célula foi identificada.
func (c AggregatedCell) Resolved() bool {
	return c.CompanyID != ""
}

// PeriodAggregation é o resultado do agregador para um período.
type PeriodAggregation struct {
	Period Period           `json:"period"`
	Cells  []AggregatedCell `json:"cells"`
}

// Empty informa se não há células.
func (a PeriodAggregation) Empty() bool {
	return len(a.Cells) == 0
}
