package estimate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"usinagem-golang/internal/service/ai"
)

type Estimator interface {
	EstimateMachiningTime(ctx context.Context, req ai.MachiningTimeRequest) (ai.MachiningTimeEstimate, error)
	SuggestCuttingParameters(ctx context.Context, req ai.CuttingParametersRequest) (ai.CuttingParameters, error)
}

type timeRequest struct {
	DrawingBase64  string `json:"drawing_base64"`
	DrawingMIME    string `json:"drawing_mime"`
	MachineType    string `json:"machine_type"`
	OperationFocus string `json:"operation_focus,omitempty"`
}

// MachiningTime estima o tempo de usinagem a partir do desenho técnico.
// Erro do serviço de IA vira mensagem genérica; o detalhe fica só no log.
func MachiningTime(log *slog.Logger, estimator Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.ai.estimate.MachiningTime"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var body timeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Error("JSON inválido", slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		drawing, err := base64.StdEncoding.DecodeString(body.DrawingBase64)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"status": "invalid", "problems": map[string]string{
				"drawing_base64": "imagem não é base64 válido",
			}})
			return
		}

		req := ai.MachiningTimeRequest{
			Drawing:        drawing,
			DrawingMIME:    body.DrawingMIME,
			MachineType:    body.MachineType,
			OperationFocus: body.OperationFocus,
		}
		if problems := req.Validate(); problems != nil {
			log.Warn("estimativa reprovada na validação", slog.Any("problems", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"status": "invalid", "problems": problems})
			return
		}

		// chamada ao modelo é lenta; timeout maior que o padrão dos handlers
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		estimate, err := estimator.EstimateMachiningTime(ctx, req)
		if err != nil {
			log.Error("falha na estimativa de tempo", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, map[string]any{"error": "O serviço de estimativa está indisponível, tente novamente"})
			return
		}

		render.JSON(w, r, estimate)
	}
}

// CuttingParameters sugere parâmetros de corte a partir da geometria.
func CuttingParameters(log *slog.Logger, estimator Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.ai.estimate.CuttingParameters"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req ai.CuttingParametersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if problems := req.Validate(); problems != nil {
			log.Warn("parâmetros reprovados na validação", slog.Any("problems", problems))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"status": "invalid", "problems": problems})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		params, err := estimator.SuggestCuttingParameters(ctx, req)
		if err != nil {
			log.Error("falha na sugestão de parâmetros", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, map[string]any{"error": "O serviço de estimativa está indisponível, tente novamente"})
			return
		}

		render.JSON(w, r, params)
	}
}
