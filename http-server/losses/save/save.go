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
	OperatorID      string `json:"operator_id"`
	Factory         string `json:"factory"`
	MachineID       string `json:"machine_id"`
	QuantityLost    int    `json:"quantity_lost"`
	Reason          string `json:"reason"`
	TimeLostMinutes int    `json:"time_lost_minutes"`
}

// validate devolve problema por campo; qualquer entrada bloqueia a gravação
// inteira, nunca sai escrita parcial.
func (r Request) validate() map[string]string {
	problems := make(map[string]string)
	if r.OperatorID == "" {
		problems["operator_id"] = "operador é obrigatório"
	}
	if r.Factory == "" {
		problems["factory"] = "fábrica é obrigatória"
	}
	if r.MachineID == "" {
		problems["machine_id"] = "máquina é obrigatória"
	}
	if r.QuantityLost < 0 {
		problems["quantity_lost"] = "quantidade perdida não pode ser negativa"
	}
	if r.Reason == "" {
		problems["reason"] = "motivo é obrigatório"
	}
	if r.TimeLostMinutes < 0 {
		problems["time_lost_minutes"] = "tempo perdido não pode ser negativo"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

func SaveLoss(log *slog.Logger, store StorePutter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.losses.save.SaveLoss"

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
			log.Warn("apontamento de perda reprovado na validação", slog.Any("problems", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"status": "invalid", "problems": problems})
			return
		}

		loss := storage.ProductionLoss{
			ID:              uuid.NewString(),
			OperatorID:      req.OperatorID,
			Factory:         req.Factory,
			MachineID:       req.MachineID,
			QuantityLost:    req.QuantityLost,
			Reason:          req.Reason,
			TimeLostMinutes: req.TimeLostMinutes,
			Timestamp:       time.Now(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.Put(ctx, "apontamentos/perdas/"+loss.ID, loss); err != nil {
			log.Error("falha ao gravar perda", slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("perda registrada", slog.String("id", loss.ID), slog.String("reason", loss.Reason))

		render.JSON(w, r, map[string]any{
			"status": "success",
			"id":     loss.ID,
		})
	}
}
