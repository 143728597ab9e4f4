package storage

import (
	"context"
	"errors"
)

var (
	// ErrStoreUnavailable cobre falha de leitura/escrita no banco externo.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound: o caminho existe na árvore mas não tem valor.
	ErrNotFound = errors.New("not found")
	// ErrAIService cobre falha ou resposta fora de esquema do serviço de IA.
	ErrAIService = errors.New("ai service error")
)

// Store é a árvore de documentos endereçada por caminho (ex.: "producao/igarassu").
// Get devolve nil sem erro quando o caminho não existe; Patch mescla campos na
// linha sem substituir o restante.
type Store interface {
	Get(ctx context.Context, path string) (map[string]RawRow, error)
	Patch(ctx context.Context, path string, fields map[string]any) error
	Put(ctx context.Context, path string, value any) error
}

// Subscriber registra um callback chamado no valor inicial e em cada mudança.
// O cancel devolvido encerra a inscrição; depois dele o callback não roda mais.
type Subscriber interface {
	Subscribe(ctx context.Context, path string, fn func(map[string]RawRow)) (cancel func(), err error)
}
