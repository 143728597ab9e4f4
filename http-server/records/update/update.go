package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/service/normalize"
)

type StorePatcher interface {
	Patch(ctx context.Context, path string, fields map[string]any) error
}

type Request struct {
	Field string `json:"field"` // nome canônico da coluna
	Value string `json:"value"`
}

// UpdateRecordCell grava a edição de uma célula: o nome canônico volta para
// o nome cru do nó e só aquele campo é mesclado na linha, nunca a linha inteira.
func UpdateRecordCell(log *slog.Logger, store StorePatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.records.update.UpdateRecordCell"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		node := chi.URLParam(r, "node")
		rowID := chi.URLParam(r, "id")
		if node == "" || rowID == "" {
			http.Error(w, "Missing node or row id", http.StatusBadRequest)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Field == "" {
			http.Error(w, "field is required", http.StatusBadRequest)
			return
		}

		rawField := normalize.ToRawField(req.Field)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := store.Patch(ctx, "apontamentos/"+node+"/"+rowID, map[string]any{rawField: req.Value})
		if err != nil {
			log.Error("falha ao gravar célula", slog.String("error", err.Error()),
				slog.String("node", node), slog.String("row", rowID))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]any{
			"status": "success",
			"field":  rawField,
		})
	}
}
