package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usinagem-golang/internal/storage"
)

func TestCoerceRow_WellFormed(t *testing.T) {
	raw := storage.RawRow{
		"Centro":          "120",
		"Torno (minutos)": "30",
		"Site":            "Igarassu",
		"Quantidade":      "10",
		"Data":            "20/07/2024",
	}

	rec := CoerceRow("row-1", raw)

	assert.Equal(t, "row-1", rec.ID)
	assert.Equal(t, "Igarassu", rec.RequestingFactory)
	assert.InDelta(t, 2.0, rec.CentroTime, 1e-9)
	assert.InDelta(t, 0.5, rec.TornoTime, 1e-9)
	assert.InDelta(t, 0.0, rec.ProgramacaoTime, 1e-9)
	assert.InDelta(t, 2.5, rec.ManufacturingTime, 1e-9)
	assert.Equal(t, 10, rec.Quantity)
	assert.Equal(t, 2024, rec.Date.Year())
	assert.Equal(t, time.July, rec.Date.Month())
	assert.Equal(t, 20, rec.Date.Day())
	assert.False(t, rec.DateParseFailed)
	assert.Equal(t, "N/A", rec.PartName)
	assert.Equal(t, "N/A", rec.Material)
}

func TestCoerceRow_Malformed(t *testing.T) {
	raw := storage.RawRow{
		"Centro":          "abc",
		"Torno (minutos)": "",
		"Site":            "Vinhedo",
		"Quantidade":      "-5",
		"Data":            "not-a-date",
	}

	before := time.Now()
	rec := CoerceRow("row-2", raw)

	assert.Zero(t, rec.CentroTime)
	assert.Zero(t, rec.TornoTime)
	assert.Zero(t, rec.ManufacturingTime)
	assert.Equal(t, 0, rec.Quantity)
	assert.True(t, rec.DateParseFailed)
	assert.WithinDuration(t, before, rec.Date, 5*time.Second)
}

// Linha completamente vazia ainda vira registro: zeros, "N/A" e agora.
// Nada aqui pode estourar o lote.
func TestCoerceRow_EmptyRow(t *testing.T) {
	rec := CoerceRow("row-3", storage.RawRow{})

	assert.Equal(t, "N/A", rec.RequestingFactory)
	assert.Equal(t, "N/A", rec.PartName)
	assert.Equal(t, "N/A", rec.Material)
	assert.Zero(t, rec.Quantity)
	assert.Zero(t, rec.ManufacturingTime)
	assert.True(t, rec.DateParseFailed)
}

func TestCoerceRow_TimeInvariant(t *testing.T) {
	rows := []storage.RawRow{
		{"Centro": "90", "Torno": "45", "Programação": "15"},
		{"Centro": "0", "Torno": "abc", "Programação": "-10"},
		{},
		{"Centro": 60.0, "Torno": 30, "Programação": nil},
	}

	for i, raw := range rows {
		rec := CoerceRow("r", raw)
		assert.InDelta(t, rec.CentroTime+rec.TornoTime+rec.ProgramacaoTime, rec.ManufacturingTime, 1e-9, "row %d", i)
		assert.GreaterOrEqual(t, rec.CentroTime, 0.0)
		assert.GreaterOrEqual(t, rec.TornoTime, 0.0)
		assert.GreaterOrEqual(t, rec.ProgramacaoTime, 0.0)
	}
}

func TestCoerceRow_ColumnAliases(t *testing.T) {
	rec := CoerceRow("r", storage.RawRow{
		"columnA": "Extrema",
		"columnB": "01/02/2024",
	})

	assert.Equal(t, "Extrema", rec.RequestingFactory)
	assert.Equal(t, time.February, rec.Date.Month())
	assert.Equal(t, 1, rec.Date.Day())
}

// A planilha nem sempre preenche o zero à esquerda.
func TestCoerceRow_UnpaddedDate(t *testing.T) {
	rec := CoerceRow("r", storage.RawRow{"Data": "5/7/2024"})

	assert.False(t, rec.DateParseFailed)
	assert.Equal(t, 5, rec.Date.Day())
	assert.Equal(t, time.July, rec.Date.Month())
	assert.Equal(t, 2024, rec.Date.Year())
}

// Requisição segue a mesma política de quantidade: "10.0" conta como 10.
func TestCoerceRow_RequestIDDecimal(t *testing.T) {
	rec := CoerceRow("r", storage.RawRow{"Requisição": "10.0"})

	assert.Equal(t, 10, rec.RequestID)
}

func TestCoerceRow_FallbackDateLayouts(t *testing.T) {
	rec := CoerceRow("r", storage.RawRow{"Data": "2024-07-20"})

	assert.False(t, rec.DateParseFailed)
	assert.Equal(t, 20, rec.Date.Day())
	assert.Equal(t, time.July, rec.Date.Month())
}

func TestCoerceBatch_SortedByDateDescending(t *testing.T) {
	rows := map[string]storage.RawRow{
		"a": {"Data": "01/01/2024"},
		"b": {"Data": "15/03/2024"},
		"c": {"Data": "10/02/2024"},
	}

	records := CoerceBatch(rows)

	require.Len(t, records, 3)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
	assert.True(t, records[0].Date.After(records[1].Date))
}

func TestCoerceBatch_StableOnEqualDates(t *testing.T) {
	rows := map[string]storage.RawRow{
		"z": {"Data": "01/01/2024"},
		"a": {"Data": "01/01/2024"},
		"m": {"Data": "01/01/2024"},
	}

	records := CoerceBatch(rows)

	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "m", records[1].ID)
	assert.Equal(t, "z", records[2].ID)
}
