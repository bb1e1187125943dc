package entity

// BudgetAssumption é uma premissa orçamentária nomeada.
type BudgetAssumption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BudgetAssumptionValue é o valor de uma premissa em um período.
type BudgetAssumptionValue struct {
	AssumptionID string  `json:"assumption_id"`
	Year         int     `json:"year"`
	Month        Month   `json:"month"`
	Value        float64 `json:"value"`
}

// BudgetMapping liga uma premissa a uma conta (por ID) e/ou departamento.
type BudgetMapping struct {
	AssumptionID       string `json:"assumption_id"`
	TargetAccountID    string `json:"target_account_id,omitempty"`
	TargetDepartmentID string `json:"target_department_id,omitempty"`
}

// BudgetSnapshot reúne o que o resolvedor de orçamento precisa para um período.
type BudgetSnapshot struct {
	Assumptions []BudgetAssumption      `json:"assumptions"`
	Values      []BudgetAssumptionValue `json:"values"`
	Mappings    []BudgetMapping         `json:"mappings"`
}

// Benchmark é um valor de referência da organização, por nome de conta.
type Benchmark struct {
	AccountName string  `json:"account_name"`
	Value       float64 `json:"value"`
}
