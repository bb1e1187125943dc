package entity

// LedgerAudit é o resultado da agregação em lote usada pela visão de auditoria.
type LedgerAudit struct {
	TenantID    string           `json:"tenant_id"`
	Year        int              `json:"year"`
	Cells       []AggregatedCell `json:"cells"`
	RowsScanned int              `json:"rows_scanned"`
	Pages       int              `json:"pages"`
	// Truncated indica que o limite de segurança foi atingido.
	Truncated bool `json:"truncated"`
}
