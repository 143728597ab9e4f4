package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/storage"
)

// Formatos aceitos pelo fallback genérico de data, na ordem de tentativa.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CoerceRow transforma uma linha crua num registro canônico. Função total:
// campo quebrado vira default documentado (0, "N/A", agora) e o lote segue.
func CoerceRow(key string, raw storage.RawRow) storage.ProductionRecord {
	row := make(map[string]string, len(raw))
	for field, value := range raw {
		row[ToCanonicalHeader(field)] = fieldString(value)
	}

	centro := parseMinutes(row[constants.HeaderCentro])
	torno := parseMinutes(row[constants.HeaderTorno])
	programacao := parseMinutes(row[constants.HeaderProgramacao])

	date, parseFailed := parseDate(row[constants.HeaderData])

	return storage.ProductionRecord{
		ID:                key,
		RequestingFactory: stringOrNA(row[constants.HeaderSite]),
		PartName:          stringOrNA(row[constants.HeaderPeca]),
		Material:          stringOrNA(row[constants.HeaderMaterial]),
		ManufacturingTime: centro + torno + programacao,
		Date:              date,
		Quantity:          parseCount(row[constants.HeaderQuantidade]),
		CentroTime:        centro,
		TornoTime:         torno,
		ProgramacaoTime:   programacao,
		Status:            row[constants.HeaderStatus],
		RequestID:         parseCount(row[constants.HeaderRequisicao]),
		DateParseFailed:   parseFailed,
	}
}

// CoerceBatch converte um nó inteiro e devolve na ordem canônica de consumo:
// data decrescente, chave como desempate para o resultado ser estável.
func CoerceBatch(rows map[string]storage.RawRow) []storage.ProductionRecord {
	records := make([]storage.ProductionRecord, 0, len(rows))
	for key, raw := range rows {
		records = append(records, CoerceRow(key, raw))
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})

	return records
}

func fieldString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	default:
		return ""
	}
}

// parseDate tenta DD/MM/AAAA primeiro (formato dos apontamentos), depois os
// formatos genéricos. Sem parse válido, devolve o agora com a flag ligada —
// comportamento herdado da planilha, ver nota no DESIGN.md.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		// "2/1/2006" aceita dia e mês com ou sem zero à esquerda
		if t, err := time.ParseInLocation("2/1/2006", s, time.Local); err == nil {
			return t, false
		}
	} else {
		for _, layout := range fallbackDateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, false
			}
		}
	}

	return time.Now(), true
}

func parseMinutes(s string) float64 {
	return parseFloat(s) / 60
}

func parseFloat(s string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseCount aceita "10" e "10.0"; negativo é truncado em zero porque
// contagem nunca é negativa no modelo. Vale para quantidades e para o
// número de requisição, as duas contagens seguem a mesma política.
func parseCount(s string) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value)
}

func stringOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
