package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é a saída de terminal do CLI: mensagens com prefixo, spinner,
// tabelas de alertas e painéis.
type Console struct {
	out io.Writer
}

// NewConsole cria um Console que escreve em stdout.
func NewConsole() *Console {
	return NewConsoleWithWriter(os.Stdout)
}

// NewConsoleWithWriter cria um Console que escreve em w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo, LogWarning, LogError e LogSuccess usam os prefixos do pterm.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status inicia um spinner enquanto a análise ou a auditoria roda.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

type column struct {
	name       string
	alignRight bool
}

// Table acumula linhas e só formata no Render, quando a largura de cada
// coluna já é conhecida.
type Table struct {
	columns []column
	rows    [][]string
}

func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// AddColumn aceita types.AlignRight para colunas de valores.
func (t *Table) AddColumn(name string, options ...interface{}) {
	col := column{name: name}
	for _, opt := range options {
		if opt == types.AlignRight {
			col.alignRight = true
		}
	}
	t.columns = append(t.columns, col)
}

func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(t.columns))
	for i, cell := range cells {
		if i >= len(row) {
			break
		}
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

// Render devolve a tabela com cabeçalho; sem linhas, só o aviso de vazio.
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return pterm.FgGray.Sprint("(no rows)") + "\n"
	}

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.name
	}
	data := pterm.TableData{header}
	for _, row := range t.rows {
		data = append(data, t.align(row))
	}

	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return rendered
}

// align completa à esquerda as células de colunas numéricas. A largura
// ignora os códigos de cor.
func (t *Table) align(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	for i, col := range t.columns {
		if !col.alignRight {
			continue
		}
		width := visibleWidth(col.name)
		for _, r := range t.rows {
			if w := visibleWidth(r[i]); w > width {
				width = w
			}
		}
		out[i] = strings.Repeat(" ", width-visibleWidth(row[i])) + row[i]
	}
	return out
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(pterm.RemoveColorFromString(s))
}

// DisplayPanel exibe linhas de texto dentro de uma caixa com título.
func (c *Console) DisplayPanel(title string, lines []string) {
	fmt.Fprintln(c.out, "\n"+renderPanel(title, lines))
}

var panelTitle = color.New(color.FgCyan, color.Bold).SprintFunc()

func renderPanel(title string, lines []string) string {
	body := strings.Join(lines, "\n")
	if strings.TrimSpace(body) == "" {
		body = pterm.FgGray.Sprint("(empty)")
	}
	return pterm.DefaultBox.
		WithTitle(panelTitle(title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(body)
}
