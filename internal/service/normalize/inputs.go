package normalize

import (
	"sort"

	"usinagem-golang/internal/storage"
)

// As linhas de perda e de apontamento de operador são escritas pelo próprio
// backend, mas voltam do banco como linhas cruas iguais às demais; a coerção
// segue a mesma política total de defaults.

func CoerceLoss(key string, raw storage.RawRow) storage.ProductionLoss {
	timestamp, _ := parseDate(fieldString(raw["timestamp"]))
	return storage.ProductionLoss{
		ID:              key,
		OperatorID:      fieldString(raw["operator_id"]),
		Factory:         fieldString(raw["factory"]),
		MachineID:       fieldString(raw["machine_id"]),
		QuantityLost:    parseCount(fieldString(raw["quantity_lost"])),
		Reason:          fieldString(raw["reason"]),
		TimeLostMinutes: parseCount(fieldString(raw["time_lost_minutes"])),
		Timestamp:       timestamp,
	}
}

func CoerceLossBatch(rows map[string]storage.RawRow) []storage.ProductionLoss {
	out := make([]storage.ProductionLoss, 0, len(rows))
	for key, raw := range rows {
		out = append(out, CoerceLoss(key, raw))
	}
	sortByTimestamp(out, func(l storage.ProductionLoss) (string, int64) { return l.ID, l.Timestamp.UnixNano() })
	return out
}

func CoerceOperator(key string, raw storage.RawRow) storage.OperatorProduction {
	timestamp, _ := parseDate(fieldString(raw["timestamp"]))
	return storage.OperatorProduction{
		ID:                    key,
		OperatorID:            fieldString(raw["operator_id"]),
		MachineID:             fieldString(raw["machine_id"]),
		QuantityProduced:      parseCount(fieldString(raw["quantity_produced"])),
		ProductionTimeSeconds: parseCount(fieldString(raw["production_time_seconds"])),
		Timestamp:             timestamp,
		FormsNumber:           fieldString(raw["forms_number"]),
		Factory:               fieldString(raw["factory"]),
		OperationCount:        parseCount(fieldString(raw["operation_count"])),
		Status:                fieldString(raw["status"]),
	}
}

func CoerceOperatorBatch(rows map[string]storage.RawRow) []storage.OperatorProduction {
	out := make([]storage.OperatorProduction, 0, len(rows))
	for key, raw := range rows {
		out = append(out, CoerceOperator(key, raw))
	}
	sortByTimestamp(out, func(o storage.OperatorProduction) (string, int64) { return o.ID, o.Timestamp.UnixNano() })
	return out
}

// CoerceOEE aceita tanto o OEE pré-calculado quanto só os três fatores.
func CoerceOEE(key string, raw storage.RawRow) storage.MachineOEE {
	machineID := fieldString(raw["machine_id"])
	if machineID == "" {
		machineID = key
	}
	return storage.MachineOEE{
		MachineID:    machineID,
		OEE:          parsePercent(fieldString(raw["oee"])),
		Availability: parsePercent(fieldString(raw["availability"])),
		Performance:  parsePercent(fieldString(raw["performance"])),
		Quality:      parsePercent(fieldString(raw["quality"])),
	}
}

func CoerceOEEBatch(rows map[string]storage.RawRow) []storage.MachineOEE {
	out := make([]storage.MachineOEE, 0, len(rows))
	for key, raw := range rows {
		out = append(out, CoerceOEE(key, raw))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out
}

func parsePercent(s string) float64 {
	v := parseFloat(s)
	if v > 100 {
		return 100
	}
	return v
}

// mais recente primeiro, chave como desempate
func sortByTimestamp[T any](items []T, key func(T) (string, int64)) {
	sort.Slice(items, func(i, j int) bool {
		idI, tsI := key(items[i])
		idJ, tsJ := key(items[j])
		if tsI != tsJ {
			return tsI > tsJ
		}
		return idI < idJ
	})
}
