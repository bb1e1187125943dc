package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	table := NewConsole().CreateTable()
	table.AddColumn("Account")
	table.AddColumn("Actual")
	table.AddRow("Despesa Operacional", 120000.5)
	table.AddRow("Receita", "95.000,00")

	out := table.Render()
	require.Contains(t, out, "Account")
	require.Contains(t, out, "Despesa Operacional")
	require.Contains(t, out, "120000.5")
	require.Contains(t, out, "95.000,00")
}

func TestTable_AlignRight(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	table := NewConsole().CreateTable()
	table.AddColumn("Account")
	table.AddColumn("Actual", types.AlignRight)
	table.AddRow("Despesa", "1.234.567,89")
	table.AddRow("Receita", "10,00")

	out := table.Render()
	require.Contains(t, out, "       10,00")
	require.Contains(t, out, "1.234.567,89")
}

func TestTable_RenderEmpty(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	table := NewConsole().CreateTable()
	table.AddColumn("Account")
	require.Equal(t, "(no rows)\n", table.Render())
}

func TestVisibleWidthIgnoresColor(t *testing.T) {
	require.Equal(t, 5, visibleWidth(pterm.FgRed.Sprint("⬆ 20%")))
}

func TestConsole_WritesToWriter(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	c := NewConsoleWithWriter(&buf)
	c.Println("header")
	c.LogWarning("budget missing for %s", "Despesa")
	c.DisplayPanel("Variance Summary", []string{"Critical: 1"})

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "header\n"))
	require.Contains(t, out, "budget missing for Despesa")
	require.Contains(t, out, "Critical: 1")
}

func TestRenderPanel(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	out := renderPanel("Variance Summary", []string{"Critical: 1", "Warning: 0"})
	require.Contains(t, out, "Variance Summary")
	require.Contains(t, out, "Critical: 1")

	require.Contains(t, renderPanel("Empty", nil), "(empty)")
}
