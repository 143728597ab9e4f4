package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"usinagem-golang/internal/storage"
)

type StorePutter interface {
	Put(ctx context.Context, path string, value any) error
}

type Request struct {
	OperatorID            string `json:"operator_id"`
	MachineID             string `json:"machine_id"`
	QuantityProduced      int    `json:"quantity_produced"`
	ProductionTimeSeconds int    `json:"production_time_seconds"`
	FormsNumber           string `json:"forms_number,omitempty"`
	Factory               string `json:"factory"`
	OperationCount        int    `json:"operation_count,omitempty"`
	Status                string `json:"status"`
}

func (r Request) validate() map[string]string {
	problems := make(map[string]string)
	if r.OperatorID == "" {
		problems["operator_id"] = "operador é obrigatório"
	}
	if r.MachineID == "" {
		problems["machine_id"] = "máquina é obrigatória"
	}
	if r.QuantityProduced <= 0 {
		problems["quantity_produced"] = "quantidade produzida deve ser positiva"
	}
	if r.ProductionTimeSeconds < 0 {
		problems["production_time_seconds"] = "tempo de produção não pode ser negativo"
	}
	if r.Factory == "" {
		problems["factory"] = "fábrica é obrigatória"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// SaveProduction grava um apontamento de produção do operador. Validação
// reprova por campo e bloqueia a submissão inteira.
func SaveProduction(log *slog.Logger, store StorePutter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.operator.save.SaveProduction"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if problems := req.validate(); problems != nil {
			log.Warn("apontamento de produção reprovado na validação", slog.Any("problems", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"status": "invalid", "problems": problems})
			return
		}

		entry := storage.OperatorProduction{
			ID:                    uuid.NewString(),
			OperatorID:            req.OperatorID,
			MachineID:             req.MachineID,
			QuantityProduced:      req.QuantityProduced,
			ProductionTimeSeconds: req.ProductionTimeSeconds,
			Timestamp:             time.Now(),
			FormsNumber:           req.FormsNumber,
			Factory:               req.Factory,
			OperationCount:        req.OperationCount,
			Status:                req.Status,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.Put(ctx, "apontamentos/operadores/"+entry.ID, entry); err != nil {
			log.Error("falha ao gravar apontamento", slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]any{
			"status": "success",
			"id":     entry.ID,
		})
	}
}
