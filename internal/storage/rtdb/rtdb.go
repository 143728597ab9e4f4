package rtdb

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"usinagem-golang/internal/storage"
)

// Client fala com o banco de documentos externo via REST: cada caminho da
// árvore é um recurso JSON. Escrita parcial usa PATCH, que mescla campos na
// linha sem substituir o resto.
type Client struct {
	baseURL    string
	authSecret string
	httpClient *http.Client
}

func New(baseURL, authSecret string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authSecret: authSecret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) url(path string) string {
	u := c.baseURL + "/" + strings.Trim(path, "/") + ".json"
	if c.authSecret != "" {
		u += "?auth=" + c.authSecret
	}
	return u
}

// Get devolve o nó como mapa id → linha crua. Caminho inexistente vem como
// JSON null do servidor e vira (nil, nil); quem consome trata os dois formatos.
func (c *Client) Get(ctx context.Context, path string) (map[string]storage.RawRow, error) {
	const op = "storage.rtdb.Get"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: status %d", op, storage.ErrStoreUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}

	return decodeTree(body)
}

// GetValue lê um caminho que guarda um valor único (config, orçamentos)
// em vez de uma tabela de linhas. Caminho inexistente devolve ErrNotFound.
func (c *Client) GetValue(ctx context.Context, path string, out any) error {
	const op = "storage.rtdb.GetValue"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: status %d", op, storage.ErrStoreUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Patch mescla os campos na linha do caminho dado.
func (c *Client) Patch(ctx context.Context, path string, fields map[string]any) error {
	const op = "storage.rtdb.Patch"
	return c.write(ctx, op, http.MethodPatch, path, fields)
}

// Put substitui o valor do caminho inteiro.
func (c *Client) Put(ctx context.Context, path string, value any) error {
	const op = "storage.rtdb.Put"
	return c.write(ctx, op, http.MethodPut, path, value)
}

func (c *Client) write(ctx context.Context, op, method, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: status %d", op, storage.ErrStoreUnavailable, resp.StatusCode)
	}
	return nil
}

// Subscribe abre um stream SSE no caminho e chama fn no valor inicial e em
// cada mudança até o cancel. Evento parcial dispara releitura do nó inteiro;
// o normalizador recalcula tudo do snapshot de qualquer forma.
func (c *Client) Subscribe(ctx context.Context, path string, fn func(map[string]storage.RawRow)) (func(), error) {
	const op = "storage.rtdb.Subscribe"

	streamCtx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, c.url(path), nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "text/event-stream")

	stream := &http.Client{} // sem timeout: conexão de longa duração
	resp, err := stream.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrStoreUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%s: %w: status %d", op, storage.ErrStoreUnavailable, resp.StatusCode)
	}

	go func() {
		defer resp.Body.Close()
		c.readEvents(streamCtx, resp.Body, path, fn)
	}()

	return cancel, nil
}

type streamEvent struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) readEvents(ctx context.Context, body io.Reader, path string, fn func(map[string]storage.RawRow)) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var eventName string
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if eventName != "put" && eventName != "patch" {
				continue
			}

			var ev streamEvent
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &ev); err != nil {
				continue
			}

			if eventName == "put" && ev.Path == "/" {
				if rows, err := decodeTree(ev.Data); err == nil {
					fn(rows)
				}
				continue
			}

			// mudança em sub-caminho: relê o nó para entregar o snapshot inteiro
			readCtx, cancelRead := context.WithTimeout(ctx, 10*time.Second)
			rows, err := c.Get(readCtx, path)
			cancelRead()
			if err == nil {
				fn(rows)
			}
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func decodeTree(body []byte) (map[string]storage.RawRow, error) {
	const op = "storage.rtdb.decodeTree"

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var tree map[string]map[string]any
	if err := json.Unmarshal(trimmed, &tree); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make(map[string]storage.RawRow, len(tree))
	for key, fields := range tree {
		rows[key] = storage.RawRow(fields)
	}
	return rows, nil
}
