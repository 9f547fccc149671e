package model

// Label is the shipment-type classification of a source record.
type Label string

// Classification labels. LabelUnknown is the catch-all.
const (
	LabelForza     Label = "Forza"
	LabelMensajero Label = "Mensajero"
	LabelCargo     Label = "Cargo"
	LabelUnknown   Label = "Unknown"
)

// Labels lists every label in rule order.
func Labels() []Label {
	return []Label{LabelForza, LabelMensajero, LabelCargo, LabelUnknown}
}

// IsValid reports whether l is one of the defined labels.
func (l Label) IsValid() bool {
	switch l {
	case LabelForza, LabelMensajero, LabelCargo, LabelUnknown:
		return true
	}
	return false
}
