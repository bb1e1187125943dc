package service

import (
	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var testCompanies = []entity.Company{
	{ID: "c1", Name: "Loja A"},
	{ID: "c2", Name: "Loja B"},
}

func ledgerRow(account, department, company string, amount float64, nature entity.Nature) entity.LedgerRow {
	return entity.LedgerRow{
		AccountID:   "acc-" + account,
		AccountName: account,
		Department:  department,
		CompanyRef:  company,
		Amount:      decimal.NewFromFloat(amount),
		Nature:      nature,
	}
}

func cells(rows ...entity.LedgerRow) []entity.AggregatedCell {
	return AggregateRows(rows, NewCompanyDirectory(testCompanies))
}
