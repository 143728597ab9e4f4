package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"usinagem-golang/internal/service/filter"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, spec filter.Spec) ([]byte, error)
}

// GenerateReportExcel baixa a planilha dos apontamentos filtrados,
// com os mesmos parâmetros de query das telas.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		spec := filter.FromQuery(r.URL.Query())

		// planilha pode demorar mais que os handlers comuns
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, spec)
		if err != nil {
			log.Error("falha ao gerar planilha", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Apontamentos_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
