package aggregate

import "usinagem-golang/internal/storage"

type LossGroup struct {
	Key      string `json:"key"`
	Quantity int    `json:"quantity"`
}

// LossesByReason agrupa na ordem em que cada motivo aparece na coleção,
// o que mantém o desempate do "principal motivo" determinístico.
func LossesByReason(losses []storage.ProductionLoss) []LossGroup {
	return groupLosses(losses, func(l storage.ProductionLoss) string { return l.Reason })
}

func LossesByFactory(losses []storage.ProductionLoss) []LossGroup {
	return groupLosses(losses, func(l storage.ProductionLoss) string { return l.Factory })
}

func groupLosses(losses []storage.ProductionLoss, key func(storage.ProductionLoss) string) []LossGroup {
	index := make(map[string]int, len(losses))
	out := make([]LossGroup, 0, len(losses))

	for _, loss := range losses {
		k := key(loss)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, LossGroup{Key: k})
		}
		out[i].Quantity += loss.QuantityLost
	}

	return out
}

// TopLoss devolve o grupo de maior quantidade. Empate fica com o primeiro
// visto — comportamento herdado, ver nota no DESIGN.md.
func TopLoss(groups []LossGroup) (LossGroup, bool) {
	if len(groups) == 0 {
		return LossGroup{}, false
	}

	top := groups[0]
	for _, g := range groups[1:] {
		if g.Quantity > top.Quantity {
			top = g
		}
	}
	return top, true
}
