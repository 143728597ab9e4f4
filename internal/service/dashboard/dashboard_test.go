package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"usinagem-golang/internal/constants"
	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/storage"
	"usinagem-golang/internal/storage/memory"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, path string) (map[string]storage.RawRow, error) {
	args := m.Called(ctx, path)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	rows, ok := args.Get(0).(map[string]storage.RawRow)
	if !ok {
		return nil, fmt.Errorf("expected map[string]storage.RawRow, got %T", args.Get(0))
	}
	return rows, args.Error(1)
}

func (m *MockStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	args := m.Called(ctx, path, fields)
	return args.Error(0)
}

func (m *MockStore) Put(ctx context.Context, path string, value any) error {
	args := m.Called(ctx, path, value)
	return args.Error(0)
}

func productionRows() map[string]storage.RawRow {
	return map[string]storage.RawRow{
		"r1": {"Centro": "120", "Torno (minutos)": "30", "Site": "Igarassu", "Quantidade": "10", "Data": "20/07/2024", "Status": "Em produção"},
		"r2": {"Centro": "60", "Site": "Vinhedo", "Quantidade": "5", "Data": "15/07/2024", "Status": "Encerrado"},
	}
}

func lossRows() map[string]storage.RawRow {
	return map[string]storage.RawRow{
		"l1": {"reason": "Falta de material", "quantity_lost": "5", "factory": "Igarassu", "timestamp": "2024-07-20"},
		"l2": {"reason": "Setup", "quantity_lost": "12", "factory": "Vinhedo", "timestamp": "2024-07-21"},
		"l3": {"reason": "Falta de material", "quantity_lost": "3", "factory": "Igarassu", "timestamp": "2024-07-22"},
	}
}

func TestSummary(t *testing.T) {
	mockStore := new(MockStore)
	paths := DefaultPaths()

	mockStore.On("Get", mock.Anything, paths.Production).Return(productionRows(), nil)
	mockStore.On("Get", mock.Anything, paths.Losses).Return(lossRows(), nil)
	mockStore.On("Get", mock.Anything, paths.OEE).Return(map[string]storage.RawRow{
		"CNC-01": {"availability": "90", "performance": "95", "quality": "99"},
	}, nil)

	service := NewService(mockStore, paths)

	summary, err := service.Summary(context.Background(), filter.All())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Counts.Records)
	assert.InDelta(t, 2.5+1.0, summary.Technology.Centro+summary.Technology.Torno+summary.Technology.Programacao, 1e-9)

	// roster inteiro presente mesmo com só duas fábricas apontadas
	assert.Len(t, summary.Factories, len(constants.FactoryRoster))

	require.NotNil(t, summary.TopLossReason)
	assert.Equal(t, "Setup", summary.TopLossReason.Key)
	assert.Equal(t, 12, summary.TopLossReason.Quantity)

	require.NotNil(t, summary.TopLossFactory)
	assert.Equal(t, "Vinhedo", summary.TopLossFactory.Key)

	require.Len(t, summary.Machines, 1)
	assert.InDelta(t, 84.645, summary.Machines[0].OEE, 1e-3)
}

func TestSummary_StoreUnavailable(t *testing.T) {
	mockStore := new(MockStore)
	paths := DefaultPaths()

	storeErr := fmt.Errorf("get: %w", storage.ErrStoreUnavailable)
	mockStore.On("Get", mock.Anything, mock.Anything).Return(nil, storeErr)

	service := NewService(mockStore, paths)

	_, err := service.Summary(context.Background(), filter.All())
	assert.True(t, errors.Is(err, storage.ErrStoreUnavailable))
}

// Nó ausente devolve nil do banco; o resumo sai vazio mas consistente.
func TestSummary_EmptySnapshot(t *testing.T) {
	mockStore := new(MockStore)
	paths := DefaultPaths()

	mockStore.On("Get", mock.Anything, mock.Anything).Return(map[string]storage.RawRow(nil), nil)

	service := NewService(mockStore, paths)

	summary, err := service.Summary(context.Background(), filter.All())
	require.NoError(t, err)

	assert.Zero(t, summary.Counts.Records)
	assert.Len(t, summary.Factories, len(constants.FactoryRoster))
	assert.Nil(t, summary.TopLossReason)
}

func TestRecords_FilterApplied(t *testing.T) {
	mockStore := new(MockStore)
	paths := DefaultPaths()
	mockStore.On("Get", mock.Anything, paths.Production).Return(productionRows(), nil)

	service := NewService(mockStore, paths)

	spec := filter.All()
	spec.Factories = map[string]bool{"Igarassu": true}

	records, err := service.Records(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Igarassu", records[0].RequestingFactory)
}

func TestMachineUtilization(t *testing.T) {
	mockStore := new(MockStore)
	paths := DefaultPaths()
	mockStore.On("Get", mock.Anything, paths.Operators).Return(map[string]storage.RawRow{
		"o1": {"machine_id": "CNC-01", "operator_id": "OP-1", "production_time_seconds": "972000", "timestamp": "2024-07-01"},
	}, nil)

	service := NewService(mockStore, paths)

	out, err := service.MachineUtilization(context.Background(), filter.All())
	require.NoError(t, err)
	require.Len(t, out, 1)

	// 972000 s = 270 h: orçamento todo consumido
	assert.Equal(t, "CNC-01", out[0].MachineID)
	assert.InDelta(t, 100.0, out[0].PercentageUsed, 1e-9)
	assert.Zero(t, out[0].Remaining)
}

func TestWatcher_TracksSnapshot(t *testing.T) {
	store := memory.New()
	store.Add("apontamentos/producao", "r1", storage.RawRow{"Centro": "60", "Data": "01/07/2024"})

	watcher, err := NewWatcher(context.Background(), store, "apontamentos/producao")
	require.NoError(t, err)
	defer watcher.Close()

	records := watcher.Records()
	require.Len(t, records, 1)
	assert.InDelta(t, 1.0, records[0].CentroTime, 1e-9)

	// mudança no nó aparece na próxima leitura
	store.Add("apontamentos/producao", "r2", storage.RawRow{"Centro": "30", "Data": "02/07/2024"})
	assert.Len(t, watcher.Records(), 2)

	watcher.Close()
	store.Add("apontamentos/producao", "r3", storage.RawRow{"Centro": "15"})
	assert.Len(t, watcher.Records(), 2, "depois do Close o snapshot congela")
}
