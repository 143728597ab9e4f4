package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	getadmin "usinagem-golang/http-server/admin/get"
	upadmin "usinagem-golang/http-server/admin/update"
	aiestimate "usinagem-golang/http-server/ai/estimate"
	getdash "usinagem-golang/http-server/dashboard/get"
	generate_excel "usinagem-golang/http-server/generate-report/generate-excel"
	getlosses "usinagem-golang/http-server/losses/get"
	savelosses "usinagem-golang/http-server/losses/save"
	getoee "usinagem-golang/http-server/oee/get"
	getoperator "usinagem-golang/http-server/operator/get"
	saveoperator "usinagem-golang/http-server/operator/save"
	getrecords "usinagem-golang/http-server/records/get"
	uprecords "usinagem-golang/http-server/records/update"
	"usinagem-golang/internal/config"
	"usinagem-golang/internal/middleware/auth"
	"usinagem-golang/internal/service/ai"
	"usinagem-golang/internal/service/dashboard"
	genexcel "usinagem-golang/internal/service/generate-excel"
	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/storage/rtdb"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	store *rtdb.Client,
	dashService *dashboard.Service,
	genService *genexcel.GenerateExcelService,
	promptService *ai.PromptService,
	watcher *dashboard.Watcher,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// apontamentos de produção (registros canônicos, filtrados)
	router.Get("/api/records", getrecords.GetRecordsFilter(log, dashService))
	router.Put("/api/records/{node}/{id}", uprecords.UpdateRecordCell(log, store))

	// snapshot mantido pela inscrição no banco externo
	if watcher != nil {
		router.Get("/api/records/live", func(w http.ResponseWriter, r *http.Request) {
			spec := filter.FromQuery(r.URL.Query())
			render.JSON(w, r, getrecords.ResponseRecords{
				Records: filter.Records(watcher.Records(), spec),
				Status:  "200",
			})
		})
	}

	// resumo agregado das telas de supervisão
	router.Get("/api/dashboard", getdash.GetDashboardSummary(log, dashService))

	// perdas e refugo
	router.Get("/api/losses", getlosses.GetLossInsights(log, dashService))
	router.Post("/api/losses", savelosses.SaveLoss(log, store))

	// apontamento do operador e utilização contra orçamento mensal
	router.Post("/api/operator", saveoperator.SaveProduction(log, store))
	router.Get("/api/utilization", getoperator.GetUtilization(log, dashService))

	// OEE por máquina
	router.Get("/api/oee", getoee.GetMachinesOEE(log, dashService))

	// estimativas com IA (desligadas sem chave de API)
	if promptService != nil {
		router.Post("/api/ai/machining-time", aiestimate.MachiningTime(log, promptService))
		router.Post("/api/ai/cutting-parameters", aiestimate.CuttingParameters(log, promptService))
	}

	// exportação em planilha
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, genService))

	// área de supervisão
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/budgets", getadmin.GetBudgetsAdmin(log, store))
	adminRouter.Put("/budgets/update", upadmin.UpdateBudgetsAdmin(log, store))
	router.Mount("/api/admin", adminRouter)

	// estática do front (SPA)
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("pasta do frontend não encontrada, servindo só a API", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: arquivo existente é servido, o resto cai no index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
