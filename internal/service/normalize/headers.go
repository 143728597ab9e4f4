package normalize

import (
	"strings"

	"usinagem-golang/internal/constants"
)

// rawHeader é o inverso de constants.CanonicalHeader, montado uma vez
// para a política de nomes não se espalhar por call site (era if/else no front).
var rawHeader = func() map[string]string {
	m := make(map[string]string, len(constants.CanonicalHeader))
	for raw, canonical := range constants.CanonicalHeader {
		m[canonical] = raw
	}
	return m
}()

// ToCanonicalHeader traduz um nome de coluna histórico para o canônico.
// Coluna desconhecida passa direto.
func ToCanonicalHeader(raw string) string {
	if canonical, ok := constants.CanonicalHeader[raw]; ok {
		return canonical
	}
	return raw
}

// ToRawField é o caminho de escrita: canônico de volta para o nome cru
// que o nó externo espera.
func ToRawField(canonical string) string {
	if raw, ok := rawHeader[canonical]; ok {
		return raw
	}
	if cut, ok := strings.CutSuffix(canonical, " (minutos)"); ok {
		return cut
	}
	return canonical
}

// OrderHeaders aplica a ordem preferida aos cabeçalhos descobertos e anexa
// o resto na ordem de descoberta, sem o campo interno de identidade.
func OrderHeaders(discovered []string) []string {
	seen := make(map[string]bool, len(discovered))
	for _, h := range discovered {
		seen[h] = true
	}

	ordered := make([]string, 0, len(discovered))
	for _, h := range constants.PreferredHeaderOrder {
		if seen[h] {
			ordered = append(ordered, h)
			seen[h] = false
		}
	}
	for _, h := range discovered {
		if seen[h] && h != constants.RowKeyField {
			ordered = append(ordered, h)
			seen[h] = false
		}
	}
	return ordered
}
