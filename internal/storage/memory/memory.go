// Package memory é o repositório injetável usado em teste e desenvolvimento
// local: mesma interface do banco externo, sem rede.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"usinagem-golang/internal/storage"
)

type Store struct {
	mu     sync.RWMutex
	trees  map[string]map[string]storage.RawRow
	values map[string]any
	subs   map[string][]func(map[string]storage.RawRow)
}

func New() *Store {
	return &Store{
		trees:  make(map[string]map[string]storage.RawRow),
		values: make(map[string]any),
		subs:   make(map[string][]func(map[string]storage.RawRow)),
	}
}

func (s *Store) Get(_ context.Context, path string) (map[string]storage.RawRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.trees[path]
	if !ok {
		return nil, nil
	}

	out := make(map[string]storage.RawRow, len(tree))
	for key, row := range tree {
		copied := make(storage.RawRow, len(row))
		for f, v := range row {
			copied[f] = v
		}
		out[key] = copied
	}
	return out, nil
}

// Add insere uma linha nova num nó; usado pelos fixtures e pelos handlers
// de apontamento em modo local.
func (s *Store) Add(path, key string, row storage.RawRow) {
	s.mu.Lock()
	if s.trees[path] == nil {
		s.trees[path] = make(map[string]storage.RawRow)
	}
	s.trees[path][key] = row
	s.mu.Unlock()

	s.notify(path)
}

// Patch segue a semântica do banco externo: o caminho termina na linha
// ("nó/chave") e os campos são mesclados, nunca substituem a linha inteira.
func (s *Store) Patch(_ context.Context, path string, fields map[string]any) error {
	node, key, ok := splitRowPath(path)
	if !ok {
		return fmt.Errorf("storage.memory.Patch: caminho sem linha: %q", path)
	}

	s.mu.Lock()
	if s.trees[node] == nil {
		s.trees[node] = make(map[string]storage.RawRow)
	}
	if s.trees[node][key] == nil {
		s.trees[node][key] = make(storage.RawRow)
	}
	for f, v := range fields {
		s.trees[node][key][f] = v
	}
	s.mu.Unlock()

	s.notify(node)
	return nil
}

// Put segue o banco externo: caminho "nó/chave" com valor objeto vira uma
// linha do nó (e os inscritos são avisados); o resto vai para o plano de
// valores avulsos, lido por GetValue.
func (s *Store) Put(_ context.Context, path string, value any) error {
	if node, key, ok := splitRowPath(path); ok {
		if row, err := toRawRow(value); err == nil {
			s.mu.Lock()
			if s.trees[node] == nil {
				s.trees[node] = make(map[string]storage.RawRow)
			}
			s.trees[node][key] = row
			s.mu.Unlock()

			s.notify(node)
			return nil
		}
	}

	s.mu.Lock()
	s.values[path] = value
	s.mu.Unlock()
	return nil
}

func (s *Store) GetValue(_ context.Context, path string, out any) error {
	s.mu.RLock()
	value, ok := s.values[path]
	if !ok {
		if node, key, split := splitRowPath(path); split {
			if row, has := s.trees[node][key]; has {
				value, ok = row, true
			}
		}
	}
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("storage.memory.GetValue: %w", storage.ErrNotFound)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage.memory.GetValue: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("storage.memory.GetValue: %w", err)
	}
	return nil
}

// toRawRow achata o valor no mesmo formato que o banco externo devolve
// ao ler o nó; só objetos viram linha.
func toRawRow(value any) (storage.RawRow, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var row storage.RawRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Store) Subscribe(_ context.Context, path string, fn func(map[string]storage.RawRow)) (func(), error) {
	s.mu.Lock()
	s.subs[path] = append(s.subs[path], fn)
	index := len(s.subs[path]) - 1
	s.mu.Unlock()

	// valor inicial, como o banco externo faz
	snapshot, _ := s.Get(context.Background(), path)
	fn(snapshot)

	cancel := func() {
		s.mu.Lock()
		if index < len(s.subs[path]) {
			s.subs[path][index] = nil
		}
		s.mu.Unlock()
	}
	return cancel, nil
}

func (s *Store) notify(path string) {
	snapshot, _ := s.Get(context.Background(), path)

	s.mu.RLock()
	subs := append([]func(map[string]storage.RawRow){}, s.subs[path]...)
	s.mu.RUnlock()

	for _, fn := range subs {
		if fn != nil {
			fn(snapshot)
		}
	}
}

func splitRowPath(path string) (node, key string, ok bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:], i > 0 && i < len(path)-1
		}
	}
	return "", "", false
}
