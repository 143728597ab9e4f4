package dashboard

import (
	"context"
	"fmt"
	"sync"

	"usinagem-golang/internal/service/normalize"
	"usinagem-golang/internal/storage"
)

// Watcher mantém o último snapshot do nó de produção entregue pela inscrição
// no banco externo. Cada leitura recalcula os registros canônicos do snapshot;
// nenhum estado derivado sobrevive entre chamadas.
type Watcher struct {
	mu     sync.RWMutex
	latest map[string]storage.RawRow
	cancel func()
}

func NewWatcher(ctx context.Context, sub storage.Subscriber, path string) (*Watcher, error) {
	const op = "service.dashboard.NewWatcher"

	w := &Watcher{}

	cancel, err := sub.Subscribe(ctx, path, func(rows map[string]storage.RawRow) {
		w.mu.Lock()
		w.latest = rows
		w.mu.Unlock()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.cancel = cancel
	return w, nil
}

// Records coage o snapshot corrente. Antes do primeiro valor chegar,
// devolve vazio — o dashboard renderiza parcial enquanto carrega.
func (w *Watcher) Records() []storage.ProductionRecord {
	w.mu.RLock()
	rows := w.latest
	w.mu.RUnlock()

	return normalize.CoerceBatch(rows)
}

// Close cancela a inscrição. Obrigatório no teardown.
func (w *Watcher) Close() {
	if w.cancel != nil {
		w.cancel()
	}
}
