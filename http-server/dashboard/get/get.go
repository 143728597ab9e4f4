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

type ResponseSummary struct {
	Summary *dashboard.Summary `json:"summary,omitempty"`
	Status  string             `json:"status"`
	Error   string             `json:"error,omitempty"`
}

type Summarizer interface {
	Summary(ctx context.Context, spec filter.Spec) (dashboard.Summary, error)
}

// GetDashboardSummary devolve o agregado completo das telas: horas por
// fábrica, por status e por tecnologia, contagens, perdas e OEE.
func GetDashboardSummary(log *slog.Logger, summarizer Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.dashboard.get.GetDashboardSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		spec := filter.FromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := summarizer.Summary(ctx, spec)
		if err != nil {
			log.Error("falha ao montar resumo do dashboard", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseSummary{Error: "Não foi possível montar o resumo"})
			return
		}

		render.JSON(w, r, ResponseSummary{
			Summary: &summary,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
