package filter

import (
	"strings"
	"time"

	"usinagem-golang/internal/storage"
)

// AllPeriods é o valor "todos" dos filtros de ano e mês.
const AllPeriods = -1

// Spec é a seleção do usuário. Dimensão vazia ou "todos" aceita qualquer
// registro; o conjunto final é o E lógico das dimensões configuradas.
type Spec struct {
	Factories map[string]bool
	Year      int // AllPeriods ou ano calendário
	Month     int // AllPeriods ou 0-11, casando com a tabela de meses
	FreeText  string
	Operator  string
	Machine   string
	Reason    string
}

// All é o filtro identidade.
func All() Spec {
	return Spec{Year: AllPeriods, Month: AllPeriods}
}

// Records devolve um slice novo; a entrada nunca é alterada.
func Records(records []storage.ProductionRecord, spec Spec) []storage.ProductionRecord {
	out := make([]storage.ProductionRecord, 0, len(records))
	for _, rec := range records {
		if !spec.matchFactory(rec.RequestingFactory) {
			continue
		}
		if !spec.matchPeriod(rec.Date) {
			continue
		}
		if !spec.matchFreeText(rec.RequestingFactory, rec.PartName, rec.Material, rec.Status) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func Losses(losses []storage.ProductionLoss, spec Spec) []storage.ProductionLoss {
	out := make([]storage.ProductionLoss, 0, len(losses))
	for _, loss := range losses {
		if !spec.matchFactory(loss.Factory) {
			continue
		}
		if !spec.matchPeriod(loss.Timestamp) {
			continue
		}
		if !containsFold(loss.OperatorID, spec.Operator) {
			continue
		}
		if !containsFold(loss.MachineID, spec.Machine) {
			continue
		}
		if !containsFold(loss.Reason, spec.Reason) {
			continue
		}
		out = append(out, loss)
	}
	return out
}

func Operators(entries []storage.OperatorProduction, spec Spec) []storage.OperatorProduction {
	out := make([]storage.OperatorProduction, 0, len(entries))
	for _, entry := range entries {
		if !spec.matchFactory(entry.Factory) {
			continue
		}
		if !spec.matchPeriod(entry.Timestamp) {
			continue
		}
		if !containsFold(entry.OperatorID, spec.Operator) {
			continue
		}
		if !containsFold(entry.MachineID, spec.Machine) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (s Spec) matchFactory(factory string) bool {
	if len(s.Factories) == 0 {
		return true
	}
	return s.Factories[factory]
}

// matchPeriod usa os campos de calendário locais, os mesmos da exibição.
func (s Spec) matchPeriod(t time.Time) bool {
	if s.Year != AllPeriods && t.Year() != s.Year {
		return false
	}
	if s.Month != AllPeriods && int(t.Month())-1 != s.Month {
		return false
	}
	return true
}

func (s Spec) matchFreeText(fields ...string) bool {
	if s.FreeText == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, s.FreeText) {
			return true
		}
	}
	return false
}

func containsFold(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}
