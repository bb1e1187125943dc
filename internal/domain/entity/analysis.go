package entity

// AnalysisRequest é a tupla que dispara uma análise.
type AnalysisRequest struct {
	TenantID      string   `json:"tenant_id"`
	Period        Period   `json:"period"`
	CompanyFilter []string `json:"company_filter,omitempty"`
}

// Valid informa se a requisição tem tenant e período válidos.
func (r AnalysisRequest) Valid() bool {
	return r.TenantID != "" && r.Period.Valid()
}

// AnalysisResult é o snapshot somente leitura exposto a quem chamou.
type AnalysisResult struct {
	RequestID   string          `json:"request_id,omitempty"`
	Request     AnalysisRequest `json:"request"`
	Summary     Summary         `json:"summary"`
	Alerts      []Alert         `json:"alerts"`
	TopCritical []Alert         `json:"top_critical"`
	TopWarning  []Alert         `json:"top_warning"`
	IsLoading   bool            `json:"is_loading"`
	Error       string          `json:"error,omitempty"`
	AIContext   *InsightContext `json:"ai_context,omitempty"`
}
