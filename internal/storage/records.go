package storage

import "time"

// RawRow é uma linha crua do nó externo: nome de coluna → valor escalar.
// As colunas variam entre nós (idioma misturado, "columnA"...), então tudo
// passa pelo normalizador antes de virar registro canônico.
type RawRow map[string]any

type ProductionRecord struct {
	ID                string    `json:"id"`
	RequestingFactory string    `json:"requesting_factory"`
	PartName          string    `json:"part_name"`
	Material          string    `json:"material"`
	ManufacturingTime float64   `json:"manufacturing_time"`
	Date              time.Time `json:"date"`
	Quantity          int       `json:"quantity"`
	CentroTime        float64   `json:"centro_time"`
	TornoTime         float64   `json:"torno_time"`
	ProgramacaoTime   float64   `json:"programacao_time"`
	Status            string    `json:"status"`
	RequestID         int       `json:"request_id,omitempty"`

	// Marcado quando a data crua não parseou e caiu no "agora".
	DateParseFailed bool `json:"date_parse_failed,omitempty"`
}

type ProductionLoss struct {
	ID              string    `json:"id"`
	OperatorID      string    `json:"operator_id"`
	Factory         string    `json:"factory"`
	MachineID       string    `json:"machine_id"`
	QuantityLost    int       `json:"quantity_lost"`
	Reason          string    `json:"reason"`
	TimeLostMinutes int       `json:"time_lost_minutes"`
	Timestamp       time.Time `json:"timestamp"`
}

type OperatorProduction struct {
	ID                    string    `json:"id"`
	OperatorID            string    `json:"operator_id"`
	MachineID             string    `json:"machine_id"`
	QuantityProduced      int       `json:"quantity_produced"`
	ProductionTimeSeconds int       `json:"production_time_seconds"`
	Timestamp             time.Time `json:"timestamp"`
	FormsNumber           string    `json:"forms_number,omitempty"`
	Factory               string    `json:"factory"`
	OperationCount        int       `json:"operation_count,omitempty"`
	Status                string    `json:"status"`
}

// MachineOEE chega pronto do nó externo ou é derivado dos três fatores.
// Todos os campos são percentuais em [0,100].
type MachineOEE struct {
	MachineID    string  `json:"machine_id"`
	OEE          float64 `json:"oee"`
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
}

type HourBudgets struct {
	MachineMonthlyHours  float64 `json:"machine_monthly_hours"`
	OperatorMonthlyHours float64 `json:"operator_monthly_hours"`
}
