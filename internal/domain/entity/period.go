package entity

import (
	"fmt"
	"strconv"

	"github.com/diillson/finops-variance-go/internal/shared/normalize"
)

// Month é um mês canônico do calendário contábil (1..12).
type Month int

// monthNames são os rótulos canônicos usados pelo razão para filtrar o período.
var monthNames = [12]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// MonthNames devolve a lista dos doze rótulos canônicos, em ordem.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames[:])
	return out
}

// Valid informa se o mês está entre 1 e 12.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String devolve o rótulo canônico ("JANEIRO", ...) ou "" para meses inválidos.
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m-1]
}

// ParseMonth aceita o rótulo canônico (com ou sem acento, qualquer caixa)
// ou o número do mês.
func ParseMonth(s string) (Month, error) {
	folded := normalize.Fold(s)
	if folded == "" {
		return 0, fmt.Errorf("empty month label")
	}
	for i, name := range monthNames {
		if normalize.Fold(name) == folded {
			return Month(i + 1), nil
		}
	}
	if n, err := strconv.Atoi(folded); err == nil && Month(n).Valid() {
		return Month(n), nil
	}
	return 0, fmt.Errorf("unknown month label %q", s)
}

// Period é o par (ano, mês canônico) usado em todas as consultas.
type Period struct {
	Year  int   `json:"year"`
	Month Month `json:"month"`
}

// Valid exige ano de quatro dígitos e mês canônico.
func (p Period) Valid() bool {
	return p.Year >= 1000 && p.Year <= 9999 && p.Month.Valid()
}

// Previous devolve o período imediatamente anterior, virando o ano em janeiro.
func (p Period) Previous() Period {
	if p.Month == January {
		return Period{Year: p.Year - 1, Month: December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// SameMonthLastYear devolve o mesmo mês do ano anterior.
func (p Period) SameMonthLastYear() Period {
	return Period{Year: p.Year - 1, Month: p.Month}
}

// Label formata o período como "JANEIRO/2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s/%d", p.Month, p.Year)
}

func (p Period) String() string {
	return p.Label()
}
