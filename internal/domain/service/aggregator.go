package service

import (
	"sort"
	"strings"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/normalize"
	"github.com/shopspring/decimal"
)

// CompanyDirectory resolve referências de empresa (ID ou nome de exibição)
// para as empresas conhecidas do tenant.
type CompanyDirectory struct {
	byID   map[string]entity.Company
	byName map[string]entity.Company
}

// NewCompanyDirectory indexa as empresas por ID e por nome normalizado.
func NewCompanyDirectory(companies []entity.Company) *CompanyDirectory {
	d := &CompanyDirectory{
		byID:   make(map[string]entity.Company, len(companies)),
		byName: make(map[string]entity.Company, len(companies)),
	}
	for _, c := range companies {
		if c.ID == "" {
			continue
		}
		d.byID[c.ID] = c
		if name := normalize.Fold(c.Name); name != "" {
			if _, exists := d.byName[name]; !exists {
				d.byName[name] = c
			}
		}
	}
	return d
}

// Len devolve a quantidade de empresas conhecidas.
func (d *CompanyDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byID)
}

// Resolve procura a empresa primeiro pelo ID e depois pelo nome.
func (d *CompanyDirectory) Resolve(ref string) (entity.Company, bool) {
	if d == nil {
		return entity.Company{}, false
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entity.Company{}, false
	}
	if c, ok := d.byID[ref]; ok {
		return c, true
	}
	c, ok := d.byName[normalize.Fold(ref)]
	return c, ok
}

// EffectiveCompanyIDs resolve o filtro pedido contra o diretório, sem repetições
// e na ordem do filtro. Entradas desconhecidas são descartadas.
func (d *CompanyDirectory) EffectiveCompanyIDs(filter []string) []string {
	seen := make(map[string]bool, len(filter))
	ids := make([]string, 0, len(filter))
	for _, ref := range filter {
		c, ok := d.Resolve(ref)
		if !ok || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}
	return ids
}

// Grouper acumula lançamentos em células (conta, departamento, empresa).
// É o algoritmo compartilhado pelo agregador de período e pela auditoria em lote.
type Grouper struct {
	directory *CompanyDirectory
	cells     map[entity.CellKey]*entity.AggregatedCell
	rows      int
}

// NewGrouper cria um agrupador. Com diretório nil nenhuma empresa é resolvida.
func NewGrouper(directory *CompanyDirectory) *Grouper {
	return &Grouper{
		directory: directory,
		cells:     make(map[entity.CellKey]*entity.AggregatedCell),
	}
}

// Add soma os lançamentos nas células. Cada lançamento cai em exatamente uma
// célula e, pela natureza, em no máximo um dos baldes débito/crédito.
func (g *Grouper) Add(rows ...entity.LedgerRow) {
	for _, row := range rows {
		g.rows++

		company, resolved := g.directory.Resolve(row.CompanyRef)
		key := entity.CellKey{
			AccountName: strings.TrimSpace(row.AccountName),
			Department:  row.DepartmentOrDefault(),
		}
		if resolved {
			key.CompanyID = company.ID
		} else {
			key.CompanyRef = strings.TrimSpace(row.CompanyRef)
		}

		cell, ok := g.cells[key]
		if !ok {
			cell = &entity.AggregatedCell{
				CellKey:     key,
				CompanyName: company.Name,
				Value:       decimal.Zero,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			g.cells[key] = cell
		}
		if cell.AccountID == "" {
			cell.AccountID = row.AccountID
		}
		if cell.AccountType == entity.AccountTypeUnclassified {
			cell.AccountType = row.AccountType
		}

		cell.Value = cell.Value.Add(row.Amount)
		switch row.Nature {
		case entity.NatureDebit:
			cell.Debit = cell.Debit.Add(row.Amount)
		case entity.NatureCredit:
			cell.Credit = cell.Credit.Add(row.Amount)
		}
		cell.Entries++
	}
}

// Rows devolve quantos lançamentos foram somados.
func (g *Grouper) Rows() int {
	return g.rows
}

// Cells devolve as células ordenadas por conta, departamento e empresa.
func (g *Grouper) Cells() []entity.AggregatedCell {
	out := make([]entity.AggregatedCell, 0, len(g.cells))
	for _, c := range g.cells {
		out = append(out, *c)
	}
	sortCells(out)
	return out
}

// AggregateRows agrupa os lançamentos de um período.
func AggregateRows(rows []entity.LedgerRow, directory *CompanyDirectory) []entity.AggregatedCell {
	g := NewGrouper(directory)
	g.Add(rows...)
	return g.Cells()
}

func sortCells(cells []entity.AggregatedCell) {
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i].CellKey, cells[j].CellKey
		if a.AccountName != b.AccountName {
			return a.AccountName < b.AccountName
		}
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		if a.CompanyID != b.CompanyID {
			return a.CompanyID < b.CompanyID
		}
		return a.CompanyRef < b.CompanyRef
	})
}
