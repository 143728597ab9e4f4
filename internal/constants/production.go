package constants

// Fábricas que sempre aparecem nos gráficos, mesmo zeradas,
// para o eixo não pular de tamanho entre filtros.
var FactoryRoster = []string{
	"Igarassu",
	"Belo Jardim",
	"Vinhedo",
	"Itapetininga",
	"Extrema",
	"Sorocaba",
	"Camaçari",
	"Suape",
}

const StatusOutro = "Outro"

// Ordem fixa dos status reconhecidos (mesma ordem da paleta do dashboard).
// Qualquer status fora da lista acumula em "Outro", nunca é descartado.
var StatusOrder = []string{
	"Fila de produção",
	"Em produção",
	"Encerrado",
	"Rejeitado",
	"Enviado",
	StatusOutro,
}

var RecognizedStatus = map[string]bool{
	"Fila de produção": true,
	"Em produção":      true,
	"Encerrado":        true,
	"Rejeitado":        true,
	"Enviado":          true,
}

// Meses indexados de 0 a 11, casando com o filtro de mês do front.
var MonthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Orçamentos mensais de horas usados só como denominador de percentual.
const (
	MachineMonthlyHourBudget  = 270.0
	OperatorMonthlyHourBudget = 135.0
)

// Nomes canônicos de coluna.
const (
	HeaderSite        = "Site"
	HeaderData        = "Data"
	HeaderPeca        = "Peça"
	HeaderMaterial    = "Material"
	HeaderQuantidade  = "Quantidade"
	HeaderCentro      = "Centro (minutos)"
	HeaderTorno       = "Torno (minutos)"
	HeaderProgramacao = "Programação (minutos)"
	HeaderStatus      = "Status"
	HeaderRequisicao  = "Requisição"
)

// Coluna histórica → canônica. O que não está aqui passa direto.
var CanonicalHeader = map[string]string{
	"Centro":      HeaderCentro,
	"Torno":       HeaderTorno,
	"Programação": HeaderProgramacao,
	"columnA":     HeaderSite,
	"columnB":     HeaderData,
}

// Ordem preferida ao apresentar cabeçalhos descobertos num nó;
// o resto entra depois, na ordem de descoberta.
var PreferredHeaderOrder = []string{
	HeaderSite,
	HeaderData,
	HeaderPeca,
	HeaderMaterial,
	HeaderQuantidade,
	HeaderCentro,
	HeaderTorno,
	HeaderProgramacao,
	HeaderStatus,
	HeaderRequisicao,
}

// Campo interno de identidade da linha, nunca exposto como cabeçalho.
const RowKeyField = "_key"
