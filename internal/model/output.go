package model

// Output column headers. Names and order are consumed downstream and must not change.
const (
	ColumnPeriod         = "Mes"
	ColumnSaleDate       = "Fecha Venta"
	ColumnClient         = "Cliente"
	ColumnShipment       = "Envio"
	ColumnBestMatch      = "Destinatario Más Similar"
	ColumnSimilarity     = "Similitud"
	ColumnWaybillDate    = "Fecha Guia"
	ColumnReference1     = "Referencia 1"
	ColumnReference2     = "Referencia 2"
	ColumnStatus         = "Estado"
	ColumnDate           = "Fecha"
	ColumnShipmentName   = "Nombre Envio"
	ColumnClassification = "Clasificación"
	ColumnShipmentDate   = "Fecha envio"
)

// PeriodColumns is the header of the multi-month comparison table.
var PeriodColumns = []string{
	ColumnPeriod,
	ColumnSaleDate,
	ColumnClient,
	ColumnShipment,
	ColumnBestMatch,
	ColumnSimilarity,
	ColumnWaybillDate,
	ColumnReference1,
	ColumnReference2,
	ColumnStatus,
}

// ComparisonColumns is the header of the single-sheet comparison table.
var ComparisonColumns = []string{
	ColumnDate,
	ColumnShipmentName,
	ColumnClassification,
	ColumnBestMatch,
	ColumnSimilarity,
	ColumnReference1,
	ColumnReference2,
	ColumnStatus,
	ColumnShipmentDate,
}

// MatchColumns holds the reference-side cells shared by both row types.
// Every field is nil when the source record was not matched.
type MatchColumns struct {
	Recipient  any
	Similarity any
	Date       any
	Reference1 any
	Reference2 any
	Status     any
}

// PeriodRow is one output row of the multi-month mode.
type PeriodRow struct {
	Match    MatchColumns
	SaleDate any
	Client   string
	Shipment any
	Period   string
}

// Values returns the row cells in PeriodColumns order.
func (r PeriodRow) Values() []any {
	return []any{
		r.Period,
		r.SaleDate,
		r.Client,
		r.Shipment,
		r.Match.Recipient,
		r.Match.Similarity,
		r.Match.Date,
		r.Match.Reference1,
		r.Match.Reference2,
		r.Match.Status,
	}
}

// ComparisonRow is one output row of the single-sheet mode.
type ComparisonRow struct {
	Match        MatchColumns
	Date         any
	ShipmentName any
	Label        Label
}

// Values returns the row cells in ComparisonColumns order.
func (r ComparisonRow) Values() []any {
	return []any{
		r.Date,
		r.ShipmentName,
		string(r.Label),
		r.Match.Recipient,
		r.Match.Similarity,
		r.Match.Reference1,
		r.Match.Reference2,
		r.Match.Status,
		r.Match.Date,
	}
}
