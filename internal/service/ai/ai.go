package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"usinagem-golang/internal/storage"
)

const defaultModel = "gemini-2.5-flash"

// generator isola a chamada ao modelo para os testes não dependerem da API.
type generator interface {
	generate(ctx context.Context, parts []*genai.Part) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("resposta vazia do modelo")
	}
	return text, nil
}

// PromptService responde as duas estimativas do dashboard: tempo de usinagem
// a partir do desenho técnico e parâmetros de corte a partir da geometria.
// Toda resposta passa por validação de esquema antes de chegar ao handler.
type PromptService struct {
	gen generator
}

func NewPromptService(ctx context.Context, apiKey, model string) (*PromptService, error) {
	const op = "service.ai.NewPromptService"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key vazia", op)
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PromptService{gen: &genaiGenerator{client: client, model: model}}, nil
}

var machineTypes = map[string]bool{
	"centro": true,
	"torno":  true,
}

type MachiningTimeRequest struct {
	Drawing        []byte `json:"-"`
	DrawingMIME    string `json:"drawing_mime"`
	MachineType    string `json:"machine_type"`
	OperationFocus string `json:"operation_focus,omitempty"`
}

func (r MachiningTimeRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if len(r.Drawing) == 0 {
		problems["drawing"] = "desenho técnico é obrigatório"
	}
	if r.DrawingMIME != "image/png" && r.DrawingMIME != "image/jpeg" {
		problems["drawing_mime"] = "formato deve ser image/png ou image/jpeg"
	}
	if !machineTypes[r.MachineType] {
		problems["machine_type"] = "tipo de máquina deve ser centro ou torno"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

type MachiningTimeEstimate struct {
	SetupMinutes     float64 `json:"setup_minutes"`
	MachiningMinutes float64 `json:"machining_minutes"`
	FinishingMinutes float64 `json:"finishing_minutes"`
	TotalMinutes     float64 `json:"total_minutes"`
	Justification    string  `json:"justification"`
}

// EstimateMachiningTime monta o prompt com a imagem do desenho e valida a
// resposta contra o esquema fixo. Erro do modelo ou resposta fora do esquema
// viram ErrAIService; o detalhe fica no log do handler, nunca na tela.
func (s *PromptService) EstimateMachiningTime(ctx context.Context, req MachiningTimeRequest) (MachiningTimeEstimate, error) {
	const op = "service.ai.EstimateMachiningTime"

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Você é um processista de usinagem CNC. Analise o desenho técnico anexo e estime o tempo de usinagem em uma máquina do tipo %q.\n", req.MachineType)
	if req.OperationFocus != "" {
		fmt.Fprintf(&prompt, "Concentre a análise na operação: %s.\n", req.OperationFocus)
	}
	prompt.WriteString(`Responda somente JSON com os campos: setup_minutes, machining_minutes, finishing_minutes, total_minutes (números, minutos) e justification (texto).`)

	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Drawing, req.DrawingMIME),
		genai.NewPartFromText(prompt.String()),
	}

	text, err := s.gen.generate(ctx, parts)
	if err != nil {
		return MachiningTimeEstimate{}, fmt.Errorf("%s: %w: %s", op, storage.ErrAIService, err)
	}

	var estimate MachiningTimeEstimate
	if err := json.Unmarshal([]byte(text), &estimate); err != nil {
		return MachiningTimeEstimate{}, fmt.Errorf("%s: %w: resposta fora do esquema: %s", op, storage.ErrAIService, err)
	}
	if err := estimate.checkSchema(); err != nil {
		return MachiningTimeEstimate{}, fmt.Errorf("%s: %w: %s", op, storage.ErrAIService, err)
	}

	return estimate, nil
}

func (e MachiningTimeEstimate) checkSchema() error {
	if e.SetupMinutes < 0 || e.MachiningMinutes < 0 || e.FinishingMinutes < 0 {
		return fmt.Errorf("minutos negativos na estimativa")
	}
	if e.TotalMinutes <= 0 {
		return fmt.Errorf("total_minutes deve ser positivo")
	}
	if strings.TrimSpace(e.Justification) == "" {
		return fmt.Errorf("justification vazia")
	}
	return nil
}

type CuttingParametersRequest struct {
	Geometry       string   `json:"geometry"`
	Operations     []string `json:"operations"`
	Material       string   `json:"material"`
	PiecesPerCycle int      `json:"pieces_per_cycle"`
}

func (r CuttingParametersRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if strings.TrimSpace(r.Geometry) == "" {
		problems["geometry"] = "geometria é obrigatória"
	}
	if len(r.Operations) == 0 {
		problems["operations"] = "informe ao menos uma operação"
	}
	if strings.TrimSpace(r.Material) == "" {
		problems["material"] = "material é obrigatório"
	}
	if r.PiecesPerCycle < 1 {
		problems["pieces_per_cycle"] = "peças por ciclo deve ser ao menos 1"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

type CuttingParameters struct {
	SpindleRPM               float64  `json:"spindle_rpm"`
	FeedRateMMPerMin         float64  `json:"feed_rate_mm_per_min"`
	CutDepthMM               float64  `json:"cut_depth_mm"`
	PassCount                int      `json:"pass_count"`
	EstimatedMinutesPerPiece float64  `json:"estimated_minutes_per_piece"`
	Recommendations          []string `json:"recommendations"`
}

func (s *PromptService) SuggestCuttingParameters(ctx context.Context, req CuttingParametersRequest) (CuttingParameters, error) {
	const op = "service.ai.SuggestCuttingParameters"

	var prompt strings.Builder
	prompt.WriteString("Você é um processista de usinagem CNC. Sugira parâmetros de corte para a peça abaixo.\n")
	fmt.Fprintf(&prompt, "Geometria: %s\nMaterial: %s\nOperações: %s\nPeças por ciclo: %d\n",
		req.Geometry, req.Material, strings.Join(req.Operations, ", "), req.PiecesPerCycle)
	prompt.WriteString(`Responda somente JSON com: spindle_rpm, feed_rate_mm_per_min, cut_depth_mm (números), pass_count (inteiro), estimated_minutes_per_piece (número) e recommendations (lista de textos).`)

	parts := []*genai.Part{genai.NewPartFromText(prompt.String())}

	text, err := s.gen.generate(ctx, parts)
	if err != nil {
		return CuttingParameters{}, fmt.Errorf("%s: %w: %s", op, storage.ErrAIService, err)
	}

	var params CuttingParameters
	if err := json.Unmarshal([]byte(text), &params); err != nil {
		return CuttingParameters{}, fmt.Errorf("%s: %w: resposta fora do esquema: %s", op, storage.ErrAIService, err)
	}
	if params.SpindleRPM <= 0 || params.FeedRateMMPerMin <= 0 || params.PassCount < 1 {
		return CuttingParameters{}, fmt.Errorf("%s: %w: parâmetros fora de faixa", op, storage.ErrAIService)
	}

	return params, nil
}
