package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/storage"
)

type ResponseRecords struct {
	Records []storage.ProductionRecord `json:"records"`
	Status  string                     `json:"status"`
	Error   string                     `json:"error,omitempty"`
}

type RecordLister interface {
	Records(ctx context.Context, spec filter.Spec) ([]storage.ProductionRecord, error)
}

// GetRecordsFilter devolve os registros canônicos do nó de produção já
// filtrados pela seleção da query (?year=&month=&search=&factories=).
func GetRecordsFilter(log *slog.Logger, lister RecordLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.records.get.GetRecordsFilter"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		spec := filter.FromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		records, err := lister.Records(ctx, spec)
		if err != nil {
			log.Error("falha ao ler apontamentos do banco externo", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseRecords{Error: "Não foi possível carregar os apontamentos"})
			return
		}

		render.JSON(w, r, ResponseRecords{
			Records: records,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
