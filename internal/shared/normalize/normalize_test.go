package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	require.Equal(t, "marco", Fold(" MARÇO "))
	require.Equal(t, "despesa administrativa", Fold("Despesa Administrativa"))
	require.Equal(t, "", Fold(""))
}

func TestContainsAny(t *testing.T) {
	require.True(t, ContainsAny("CUSTO DE MERCADORIA", "despesa", "custo"))
	require.True(t, ContainsAny("Receita Líquida", "líquida"))
	require.False(t, ContainsAny("Receita Bruta", "despesa", "custo"))
	require.False(t, ContainsAny("Receita Bruta", ""))
}
