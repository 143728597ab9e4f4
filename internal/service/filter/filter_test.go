package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"usinagem-golang/internal/storage"
)

func makeRecord(factory, part string, year int, month time.Month) storage.ProductionRecord {
	return storage.ProductionRecord{
		RequestingFactory: factory,
		PartName:          part,
		Material:          "Aço 1045",
		Status:            "Em produção",
		Date:              time.Date(year, month, 10, 0, 0, 0, 0, time.Local),
	}
}

func testRecords() []storage.ProductionRecord {
	return []storage.ProductionRecord{
		makeRecord("Igarassu", "Eixo pinhão", 2024, time.July),
		makeRecord("Vinhedo", "Flange tampa", 2024, time.March),
		makeRecord("Igarassu", "Bucha guia", 2023, time.July),
	}
}

// Lei da identidade: filtro vazio devolve a coleção inteira.
func TestRecords_IdentityFilter(t *testing.T) {
	records := testRecords()

	out := Records(records, All())

	assert.Equal(t, records, out)
}

func TestRecords_Idempotent(t *testing.T) {
	spec := All()
	spec.Factories = map[string]bool{"Igarassu": true}
	spec.Year = 2024

	once := Records(testRecords(), spec)
	twice := Records(once, spec)

	assert.Equal(t, once, twice)
}

func TestRecords_AllDimensionsAnded(t *testing.T) {
	spec := All()
	spec.Factories = map[string]bool{"Igarassu": true}
	spec.Year = 2024
	spec.Month = 6 // julho, indexado de zero

	out := Records(testRecords(), spec)

	assert.Len(t, out, 1)
	assert.Equal(t, "Eixo pinhão", out[0].PartName)
}

func TestRecords_FreeTextCaseInsensitive(t *testing.T) {
	spec := All()
	spec.FreeText = "flange"

	out := Records(testRecords(), spec)

	assert.Len(t, out, 1)
	assert.Equal(t, "Vinhedo", out[0].RequestingFactory)
}

func TestRecords_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	spec := All()
	spec.Factories = map[string]bool{"Vinhedo": true}

	_ = Records(records, spec)

	assert.Equal(t, testRecords(), records)
}

func TestLosses_ByReasonAndMachine(t *testing.T) {
	losses := []storage.ProductionLoss{
		{MachineID: "CNC-01", Reason: "Falta de material", Factory: "Igarassu", Timestamp: time.Now()},
		{MachineID: "CNC-02", Reason: "Setup", Factory: "Igarassu", Timestamp: time.Now()},
		{MachineID: "CNC-01", Reason: "Quebra de ferramenta", Factory: "Vinhedo", Timestamp: time.Now()},
	}

	spec := All()
	spec.Machine = "cnc-01"

	out := Losses(losses, spec)
	assert.Len(t, out, 2)

	spec.Reason = "quebra"
	out = Losses(losses, spec)
	assert.Len(t, out, 1)
	assert.Equal(t, "Vinhedo", out[0].Factory)
}

func TestOperators_ByOperatorPrefix(t *testing.T) {
	entries := []storage.OperatorProduction{
		{OperatorID: "OP-100", Factory: "Suape", Timestamp: time.Now()},
		{OperatorID: "OP-200", Factory: "Suape", Timestamp: time.Now()},
	}

	spec := All()
	spec.Operator = "OP-1"

	out := Operators(entries, spec)
	assert.Len(t, out, 1)
	assert.Equal(t, "OP-100", out[0].OperatorID)
}
