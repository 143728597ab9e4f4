package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"usinagem-golang/internal/storage"
)

const budgetsPath = "config/orcamentos"

type ValueWriter interface {
	Put(ctx context.Context, path string, value any) error
}

// UpdateBudgetsAdmin grava os orçamentos mensais usados como denominador
// nos percentuais de utilização.
func UpdateBudgetsAdmin(log *slog.Logger, store ValueWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.update.UpdateBudgetsAdmin"

		var budgets storage.HourBudgets
		if err := json.NewDecoder(r.Body).Decode(&budgets); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if budgets.MachineMonthlyHours <= 0 || budgets.OperatorMonthlyHours <= 0 {
			http.Error(w, "budgets must be positive", http.StatusUnprocessableEntity)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.Put(ctx, budgetsPath, budgets); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("falha ao gravar orçamentos")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "success"})
	}
}
