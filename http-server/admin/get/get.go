package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/storage"
)

const budgetsPath = "config/orcamentos"

type ValueReader interface {
	GetValue(ctx context.Context, path string, out any) error
}

// GetBudgetsAdmin devolve os orçamentos mensais de horas. Sem valor gravado,
// valem os padrões de 270 h/máquina e 135 h/operador.
func GetBudgetsAdmin(log *slog.Logger, store ValueReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.get.GetBudgetsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		budgets := storage.HourBudgets{
			MachineMonthlyHours:  constants.MachineMonthlyHourBudget,
			OperatorMonthlyHours: constants.OperatorMonthlyHourBudget,
		}

		err := store.GetValue(ctx, budgetsPath, &budgets)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("falha ao ler orçamentos")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, budgets)
	}
}
