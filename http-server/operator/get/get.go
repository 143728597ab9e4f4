package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/service/dashboard"
	"usinagem-golang/internal/service/filter"
)

type ResponseUtilization struct {
	Machines  []dashboard.MachineUtilization  `json:"machines"`
	Operators []dashboard.OperatorUtilization `json:"operators"`
	Status    string                          `json:"status"`
	Error     string                          `json:"error,omitempty"`
}

type UtilizationReader interface {
	MachineUtilization(ctx context.Context, spec filter.Spec) ([]dashboard.MachineUtilization, error)
	OperatorUtilization(ctx context.Context, spec filter.Spec) ([]dashboard.OperatorUtilization, error)
}

// GetUtilization devolve horas usadas contra os orçamentos mensais fixos
// (270 h por máquina, 135 h por operador), só para exibição de percentual.
func GetUtilization(log *slog.Logger, reader UtilizationReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.operator.get.GetUtilization"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		spec := filter.FromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		machines, err := reader.MachineUtilization(ctx, spec)
		if err != nil {
			log.Error("falha ao calcular utilização de máquinas", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseUtilization{Error: "Não foi possível calcular a utilização"})
			return
		}

		operators, err := reader.OperatorUtilization(ctx, spec)
		if err != nil {
			log.Error("falha ao calcular utilização de operadores", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseUtilization{Error: "Não foi possível calcular a utilização"})
			return
		}

		render.JSON(w, r, ResponseUtilization{
			Machines:  machines,
			Operators: operators,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}
