package dashboard

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/service/aggregate"
	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/service/normalize"
	"usinagem-golang/internal/storage"
)

// Paths são os nós da árvore externa que alimentam o dashboard.
type Paths struct {
	Production string
	Losses     string
	Operators  string
	OEE        string
}

func DefaultPaths() Paths {
	return Paths{
		Production: "apontamentos/producao",
		Losses:     "apontamentos/perdas",
		Operators:  "apontamentos/operadores",
		OEE:        "oee/maquinas",
	}
}

type Service struct {
	store storage.Store
	paths Paths
}

func NewService(store storage.Store, paths Paths) *Service {
	return &Service{store: store, paths: paths}
}

// Summary é o agregado único que as telas consomem.
type Summary struct {
	Factories       []aggregate.FactoryHours   `json:"factories"`
	Statuses        []aggregate.StatusHours    `json:"statuses"`
	Technology      aggregate.TechnologyTotals `json:"technology"`
	Counts          aggregate.SummaryCounts    `json:"counts"`
	LossesByReason  []aggregate.LossGroup      `json:"losses_by_reason"`
	LossesByFactory []aggregate.LossGroup      `json:"losses_by_factory"`
	TopLossReason   *aggregate.LossGroup       `json:"top_loss_reason,omitempty"`
	TopLossFactory  *aggregate.LossGroup       `json:"top_loss_factory,omitempty"`
	Machines        []storage.MachineOEE       `json:"machines"`
}

// Records relê o nó de produção e devolve os registros canônicos filtrados,
// na ordem de data decrescente. O banco externo é a única fonte: nada
// canônico fica persistido entre chamadas.
func (s *Service) Records(ctx context.Context, spec filter.Spec) ([]storage.ProductionRecord, error) {
	const op = "service.dashboard.Records"

	rows, err := s.store.Get(ctx, s.paths.Production)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return filter.Records(normalize.CoerceBatch(rows), spec), nil
}

// Summary busca produção, perdas e OEE em paralelo e agrega tudo de uma vez.
func (s *Service) Summary(ctx context.Context, spec filter.Spec) (Summary, error) {
	const op = "service.dashboard.Summary"

	var (
		production map[string]storage.RawRow
		losses     map[string]storage.RawRow
		oee        map[string]storage.RawRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		production, err = s.store.Get(gCtx, s.paths.Production)
		if err != nil {
			return fmt.Errorf("producao: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		losses, err = s.store.Get(gCtx, s.paths.Losses)
		if err != nil {
			return fmt.Errorf("perdas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		oee, err = s.store.Get(gCtx, s.paths.OEE)
		if err != nil {
			return fmt.Errorf("oee: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	records := filter.Records(normalize.CoerceBatch(production), spec)
	filteredLosses := filter.Losses(normalize.CoerceLossBatch(losses), spec)

	machines := make([]storage.MachineOEE, 0, len(oee))
	for _, m := range normalize.CoerceOEEBatch(oee) {
		machines = append(machines, aggregate.DeriveOEE(m))
	}

	summary := Summary{
		Factories:       aggregate.ByFactory(records),
		Statuses:        aggregate.ByStatus(records),
		Technology:      aggregate.ByTechnology(records),
		Counts:          aggregate.Counts(records),
		LossesByReason:  aggregate.LossesByReason(filteredLosses),
		LossesByFactory: aggregate.LossesByFactory(filteredLosses),
		Machines:        machines,
	}

	if top, ok := aggregate.TopLoss(summary.LossesByReason); ok {
		summary.TopLossReason = &top
	}
	if top, ok := aggregate.TopLoss(summary.LossesByFactory); ok {
		summary.TopLossFactory = &top
	}

	return summary, nil
}

type MachineUtilization struct {
	MachineID string `json:"machine_id"`
	aggregate.Utilization
}

type OperatorUtilization struct {
	OperatorID string `json:"operator_id"`
	aggregate.Utilization
}

// MachineUtilization calcula horas usadas contra o orçamento mensal fixo
// de 270 h por máquina.
func (s *Service) MachineUtilization(ctx context.Context, spec filter.Spec) ([]MachineUtilization, error) {
	const op = "service.dashboard.MachineUtilization"

	entries, err := s.operatorEntries(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	used := aggregate.UsedHoursByMachine(entries)
	out := make([]MachineUtilization, 0, len(used))
	for machineID, hours := range used {
		out = append(out, MachineUtilization{
			MachineID:   machineID,
			Utilization: aggregate.MonthlyUtilization(constants.MachineMonthlyHourBudget, hours),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out, nil
}

// OperatorUtilization idem, com 135 h por operador.
func (s *Service) OperatorUtilization(ctx context.Context, spec filter.Spec) ([]OperatorUtilization, error) {
	const op = "service.dashboard.OperatorUtilization"

	entries, err := s.operatorEntries(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	used := aggregate.UsedHoursByOperator(entries)
	out := make([]OperatorUtilization, 0, len(used))
	for operatorID, hours := range used {
		out = append(out, OperatorUtilization{
			OperatorID:  operatorID,
			Utilization: aggregate.MonthlyUtilization(constants.OperatorMonthlyHourBudget, hours),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OperatorID < out[j].OperatorID })
	return out, nil
}

func (s *Service) Losses(ctx context.Context, spec filter.Spec) ([]storage.ProductionLoss, error) {
	const op = "service.dashboard.Losses"

	rows, err := s.store.Get(ctx, s.paths.Losses)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return filter.Losses(normalize.CoerceLossBatch(rows), spec), nil
}

func (s *Service) Machines(ctx context.Context) ([]storage.MachineOEE, error) {
	const op = "service.dashboard.Machines"

	rows, err := s.store.Get(ctx, s.paths.OEE)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	machines := normalize.CoerceOEEBatch(rows)
	for i := range machines {
		machines[i] = aggregate.DeriveOEE(machines[i])
	}
	return machines, nil
}

func (s *Service) operatorEntries(ctx context.Context, spec filter.Spec) ([]storage.OperatorProduction, error) {
	rows, err := s.store.Get(ctx, s.paths.Operators)
	if err != nil {
		return nil, err
	}
	return filter.Operators(normalize.CoerceOperatorBatch(rows), spec), nil
}
