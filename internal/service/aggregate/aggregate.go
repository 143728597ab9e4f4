package aggregate

import (
	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/storage"
)

type FactoryHours struct {
	Factory     string  `json:"factory"`
	Centro      float64 `json:"centro"`
	Torno       float64 `json:"torno"`
	Programacao float64 `json:"programacao"`
	Total       float64 `json:"total"`
}

type StatusHours struct {
	Status string  `json:"status"`
	Hours  float64 `json:"hours"`
}

type TechnologyTotals struct {
	Centro      float64 `json:"centro"`
	Torno       float64 `json:"torno"`
	Programacao float64 `json:"programacao"`
}

type SummaryCounts struct {
	Records           int     `json:"records"`
	DistinctRequests  int     `json:"distinct_requests"`
	DistinctParts     int     `json:"distinct_parts"`
	DistinctMaterials int     `json:"distinct_materials"`
	MeanManufacturing float64 `json:"mean_manufacturing_time"`
}

// ByFactory soma horas por fábrica solicitante. As oito fábricas do roster
// sempre aparecem, zeradas se preciso, para o eixo dos gráficos ficar estável;
// fábrica fora do roster entra depois, na ordem em que surge.
func ByFactory(records []storage.ProductionRecord) []FactoryHours {
	index := make(map[string]int, len(constants.FactoryRoster))
	out := make([]FactoryHours, 0, len(constants.FactoryRoster))

	for _, name := range constants.FactoryRoster {
		index[name] = len(out)
		out = append(out, FactoryHours{Factory: name})
	}

	for _, rec := range records {
		i, ok := index[rec.RequestingFactory]
		if !ok {
			i = len(out)
			index[rec.RequestingFactory] = i
			out = append(out, FactoryHours{Factory: rec.RequestingFactory})
		}
		out[i].Centro += rec.CentroTime
		out[i].Torno += rec.TornoTime
		out[i].Programacao += rec.ProgramacaoTime
		out[i].Total += rec.CentroTime + rec.TornoTime + rec.ProgramacaoTime
	}

	return out
}

// ByStatus soma horas combinadas por status. Status não reconhecido acumula
// em "Outro" em vez de sumir do gráfico.
func ByStatus(records []storage.ProductionRecord) []StatusHours {
	totals := make(map[string]float64, len(constants.StatusOrder))

	for _, rec := range records {
		status := rec.Status
		if !constants.RecognizedStatus[status] {
			status = constants.StatusOutro
		}
		totals[status] += rec.ManufacturingTime
	}

	out := make([]StatusHours, 0, len(constants.StatusOrder))
	for _, status := range constants.StatusOrder {
		out = append(out, StatusHours{Status: status, Hours: totals[status]})
	}
	return out
}

func ByTechnology(records []storage.ProductionRecord) TechnologyTotals {
	var t TechnologyTotals
	for _, rec := range records {
		t.Centro += rec.CentroTime
		t.Torno += rec.TornoTime
		t.Programacao += rec.ProgramacaoTime
	}
	return t
}

// Counts devolve os distintos e a média, com divisor protegido:
// coleção vazia tem média zero, nunca NaN.
func Counts(records []storage.ProductionRecord) SummaryCounts {
	requests := make(map[int]bool)
	parts := make(map[string]bool)
	materials := make(map[string]bool)

	var totalTime float64
	for _, rec := range records {
		if rec.RequestID != 0 {
			requests[rec.RequestID] = true
		}
		parts[rec.PartName] = true
		materials[rec.Material] = true
		totalTime += rec.ManufacturingTime
	}

	mean := 0.0
	if len(records) > 0 {
		mean = totalTime / float64(len(records))
	}

	return SummaryCounts{
		Records:           len(records),
		DistinctRequests:  len(requests),
		DistinctParts:     len(parts),
		DistinctMaterials: len(materials),
		MeanManufacturing: mean,
	}
}

// DeriveOEE calcula OEE como produto dos três fatores em frações decimais,
// expresso em percentual. Valor pré-calculado do nó externo passa direto.
func DeriveOEE(m storage.MachineOEE) storage.MachineOEE {
	if m.OEE == 0 && m.Availability > 0 && m.Performance > 0 && m.Quality > 0 {
		m.OEE = m.Availability * m.Performance * m.Quality / 10000
	}
	return m
}

type Utilization struct {
	Budget         float64 `json:"budget"`
	Used           float64 `json:"used"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
}

// MonthlyUtilization: sobra nunca negativa e percentual protegido
// contra orçamento zero.
func MonthlyUtilization(budget, used float64) Utilization {
	remaining := budget - used
	if remaining < 0 {
		remaining = 0
	}

	pct := 0.0
	if budget > 0 {
		pct = used / budget * 100
	}

	return Utilization{Budget: budget, Used: used, Remaining: remaining, PercentageUsed: pct}
}

// UsedHoursByMachine soma horas produzidas por máquina a partir dos
// apontamentos de operador (segundos → horas).
func UsedHoursByMachine(entries []storage.OperatorProduction) map[string]float64 {
	used := make(map[string]float64)
	for _, e := range entries {
		used[e.MachineID] += float64(e.ProductionTimeSeconds) / 3600
	}
	return used
}

func UsedHoursByOperator(entries []storage.OperatorProduction) map[string]float64 {
	used := make(map[string]float64)
	for _, e := range entries {
		used[e.OperatorID] += float64(e.ProductionTimeSeconds) / 3600
	}
	return used
}
