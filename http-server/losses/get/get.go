package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/service/aggregate"
	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/storage"
)

type ResponseLosses struct {
	Losses    []storage.ProductionLoss `json:"losses"`
	ByReason  []aggregate.LossGroup    `json:"by_reason"`
	ByFactory []aggregate.LossGroup    `json:"by_factory"`
	TopReason *aggregate.LossGroup     `json:"top_reason,omitempty"`
	Status    string                   `json:"status"`
	Error     string                   `json:"error,omitempty"`
}

type LossLister interface {
	Losses(ctx context.Context, spec filter.Spec) ([]storage.ProductionLoss, error)
}

// GetLossInsights lista as perdas filtradas com os agrupamentos por motivo
// e por fábrica e o principal motivo do período.
func GetLossInsights(log *slog.Logger, lister LossLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.losses.get.GetLossInsights"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		spec := filter.FromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		losses, err := lister.Losses(ctx, spec)
		if err != nil {
			log.Error("falha ao ler perdas do banco externo", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseLosses{Error: "Não foi possível carregar as perdas"})
			return
		}

		resp := ResponseLosses{
			Losses:    losses,
			ByReason:  aggregate.LossesByReason(losses),
			ByFactory: aggregate.LossesByFactory(losses),
			Status:    strconv.Itoa(http.StatusOK),
		}
		if top, ok := aggregate.TopLoss(resp.ByReason); ok {
			resp.TopReason = &top
		}

		render.JSON(w, r, resp)
	}
}
