package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// FromQuery lê a seleção de filtros da query string dos handlers.
// Dimensão ausente ou "all" vira o valor identidade daquela dimensão.
func FromQuery(query url.Values) Spec {
	spec := All()

	if factories := query.Get("factories"); factories != "" {
		spec.Factories = make(map[string]bool)
		for _, f := range strings.Split(factories, ",") {
			if f = strings.TrimSpace(f); f != "" {
				spec.Factories[f] = true
			}
		}
	}

	spec.Year = parsePeriod(query.Get("year"))
	spec.Month = parsePeriod(query.Get("month"))
	spec.FreeText = query.Get("search")
	spec.Operator = query.Get("operator")
	spec.Machine = query.Get("machine")
	spec.Reason = query.Get("reason")

	return spec
}

func parsePeriod(s string) int {
	if s == "" || s == "all" {
		return AllPeriods
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return AllPeriods
	}
	return value
}
