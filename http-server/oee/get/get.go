package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/storage"
)

type ResponseOEE struct {
	Machines []storage.MachineOEE `json:"machines"`
	Status   string               `json:"status"`
	Error    string               `json:"error,omitempty"`
}

type MachineReader interface {
	Machines(ctx context.Context) ([]storage.MachineOEE, error)
}

// GetMachinesOEE devolve o OEE por máquina: pré-calculado quando o nó externo
// já traz, derivado dos três fatores quando não.
func GetMachinesOEE(log *slog.Logger, reader MachineReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.oee.get.GetMachinesOEE"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		machines, err := reader.Machines(ctx)
		if err != nil {
			log.Error("falha ao ler OEE das máquinas", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseOEE{Error: "Não foi possível carregar o OEE"})
			return
		}

		render.JSON(w, r, ResponseOEE{
			Machines: machines,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
