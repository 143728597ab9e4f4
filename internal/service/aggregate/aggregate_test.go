package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/storage"
)

func rec(factory, status string, centro, torno, prog float64) storage.ProductionRecord {
	return storage.ProductionRecord{
		RequestingFactory: factory,
		Status:            status,
		CentroTime:        centro,
		TornoTime:         torno,
		ProgramacaoTime:   prog,
		ManufacturingTime: centro + torno + prog,
	}
}

// Coleção vazia devolve o roster inteiro zerado, nunca um slice vazio.
func TestByFactory_EmptySeedsRoster(t *testing.T) {
	out := ByFactory(nil)

	require.Len(t, out, len(constants.FactoryRoster))
	for i, fh := range out {
		assert.Equal(t, constants.FactoryRoster[i], fh.Factory)
		assert.Zero(t, fh.Total)
	}
}

func TestByFactory_SumLaw(t *testing.T) {
	records := []storage.ProductionRecord{
		rec("Igarassu", "Em produção", 2, 0.5, 0),
		rec("Igarassu", "Encerrado", 1, 1, 1),
		rec("Vinhedo", "Enviado", 0, 3, 0.25),
	}

	out := ByFactory(records)

	var total, expected float64
	for _, fh := range out {
		total += fh.Total
	}
	for _, r := range records {
		expected += r.ManufacturingTime
	}
	assert.InDelta(t, expected, total, 1e-9)

	byName := make(map[string]FactoryHours)
	for _, fh := range out {
		byName[fh.Factory] = fh
	}
	assert.InDelta(t, 3.0, byName["Igarassu"].Centro, 1e-9)
	assert.InDelta(t, 1.5, byName["Igarassu"].Torno, 1e-9)
	assert.InDelta(t, 5.5, byName["Igarassu"].Total, 1e-9)
}

func TestByFactory_UnknownFactoryAppended(t *testing.T) {
	out := ByFactory([]storage.ProductionRecord{rec("Manaus", "Enviado", 1, 0, 0)})

	require.Len(t, out, len(constants.FactoryRoster)+1)
	assert.Equal(t, "Manaus", out[len(out)-1].Factory)
	assert.InDelta(t, 1.0, out[len(out)-1].Total, 1e-9)
}

func TestByStatus_UnrecognizedGoesToOutro(t *testing.T) {
	records := []storage.ProductionRecord{
		rec("Igarassu", "Em produção", 1, 0, 0),
		rec("Igarassu", "aguardando cliente", 0, 2, 0),
		rec("Igarassu", "", 0, 0, 3),
	}

	out := ByStatus(records)

	byStatus := make(map[string]float64)
	for _, sh := range out {
		byStatus[sh.Status] = sh.Hours
	}
	assert.InDelta(t, 1.0, byStatus["Em produção"], 1e-9)
	assert.InDelta(t, 5.0, byStatus[constants.StatusOutro], 1e-9)

	// ordem fixa da paleta
	assert.Equal(t, constants.StatusOrder[0], out[0].Status)
	assert.Equal(t, constants.StatusOutro, out[len(out)-1].Status)
}

func TestByTechnology(t *testing.T) {
	out := ByTechnology([]storage.ProductionRecord{
		rec("Igarassu", "Enviado", 1, 2, 3),
		rec("Vinhedo", "Enviado", 0.5, 0, 0.5),
	})

	assert.InDelta(t, 1.5, out.Centro, 1e-9)
	assert.InDelta(t, 2.0, out.Torno, 1e-9)
	assert.InDelta(t, 3.5, out.Programacao, 1e-9)
}

func TestCounts(t *testing.T) {
	records := []storage.ProductionRecord{
		{RequestID: 10, PartName: "Eixo", Material: "Aço", ManufacturingTime: 2},
		{RequestID: 10, PartName: "Eixo", Material: "Inox", ManufacturingTime: 4},
		{RequestID: 0, PartName: "Bucha", Material: "Aço", ManufacturingTime: 0},
	}

	out := Counts(records)

	assert.Equal(t, 3, out.Records)
	assert.Equal(t, 1, out.DistinctRequests) // zero é ausente, não conta
	assert.Equal(t, 2, out.DistinctParts)
	assert.Equal(t, 2, out.DistinctMaterials)
	assert.InDelta(t, 2.0, out.MeanManufacturing, 1e-9)
}

func TestCounts_EmptyMeanIsZero(t *testing.T) {
	out := Counts(nil)
	assert.Zero(t, out.MeanManufacturing)
}

func TestDeriveOEE(t *testing.T) {
	derived := DeriveOEE(storage.MachineOEE{MachineID: "CNC-01", Availability: 90, Performance: 95, Quality: 99})
	assert.InDelta(t, 84.645, derived.OEE, 1e-3)

	// valor pré-calculado passa direto
	passthrough := DeriveOEE(storage.MachineOEE{MachineID: "CNC-02", OEE: 72.5})
	assert.InDelta(t, 72.5, passthrough.OEE, 1e-9)
}

func TestMonthlyUtilization(t *testing.T) {
	over := MonthlyUtilization(270, 300)
	assert.Zero(t, over.Remaining)
	assert.InDelta(t, 111.1, over.PercentageUsed, 0.1)

	empty := MonthlyUtilization(0, 0)
	assert.Zero(t, empty.PercentageUsed)

	normal := MonthlyUtilization(135, 54)
	assert.InDelta(t, 81.0, normal.Remaining, 1e-9)
	assert.InDelta(t, 40.0, normal.PercentageUsed, 1e-9)
}

func TestLossesByReason_AndTop(t *testing.T) {
	losses := []storage.ProductionLoss{
		{Reason: "Falta de material", QuantityLost: 5, Factory: "Igarassu"},
		{Reason: "Setup", QuantityLost: 12, Factory: "Vinhedo"},
		{Reason: "Falta de material", QuantityLost: 3, Factory: "Igarassu"},
	}

	groups := LossesByReason(losses)
	require.Len(t, groups, 2)
	assert.Equal(t, LossGroup{Key: "Falta de material", Quantity: 8}, groups[0])
	assert.Equal(t, LossGroup{Key: "Setup", Quantity: 12}, groups[1])

	top, ok := TopLoss(groups)
	require.True(t, ok)
	assert.Equal(t, "Setup", top.Key)
}

// Empate fica com o primeiro visto na ordem da coleção.
func TestTopLoss_TieKeepsFirstSeen(t *testing.T) {
	top, ok := TopLoss([]LossGroup{{Key: "Setup", Quantity: 7}, {Key: "Quebra", Quantity: 7}})
	require.True(t, ok)
	assert.Equal(t, "Setup", top.Key)

	_, ok = TopLoss(nil)
	assert.False(t, ok)
}

func TestUsedHoursByMachine(t *testing.T) {
	entries := []storage.OperatorProduction{
		{MachineID: "CNC-01", OperatorID: "OP-1", ProductionTimeSeconds: 7200},
		{MachineID: "CNC-01", OperatorID: "OP-2", ProductionTimeSeconds: 1800},
		{MachineID: "CNC-02", OperatorID: "OP-1", ProductionTimeSeconds: 3600},
	}

	byMachine := UsedHoursByMachine(entries)
	assert.InDelta(t, 2.5, byMachine["CNC-01"], 1e-9)
	assert.InDelta(t, 1.0, byMachine["CNC-02"], 1e-9)

	byOperator := UsedHoursByOperator(entries)
	assert.InDelta(t, 3.0, byOperator["OP-1"], 1e-9)
}
