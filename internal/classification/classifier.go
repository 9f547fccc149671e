// Package classification labels sales records with a shipment type.
package classification

import (
	"github.com/Veraticus/waybill-match/internal/model"
)

// Default field names and sentinel used by the dispatch ledger.
const (
	DefaultCarrierField    = "CO"
	DefaultCarrierSentinel = "F"
	DefaultSurchargeField  = "Recargo 4%"
)

// Rules names the fields the classifier reads.
type Rules struct {
	CarrierField    string
	CarrierSentinel string
	SurchargeField  string
}

// DefaultRules returns the rules used by the dispatch ledger.
func DefaultRules() Rules {
	return Rules{
		CarrierField:    DefaultCarrierField,
		CarrierSentinel: DefaultCarrierSentinel,
		SurchargeField:  DefaultSurchargeField,
	}
}

// Classifier derives a label from a record's raw fields.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier. Empty rule fields fall back to the defaults.
func NewClassifier(rules Rules) *Classifier {
	def := DefaultRules()
	if rules.CarrierField == "" {
		rules.CarrierField = def.CarrierField
	}
	if rules.CarrierSentinel == "" {
		rules.CarrierSentinel = def.CarrierSentinel
	}
	if rules.SurchargeField == "" {
		rules.SurchargeField = def.SurchargeField
	}
	return &Classifier{rules: rules}
}

// Rules returns the effective rules.
func (c *Classifier) Rules() Rules {
	return c.rules
}

// Classify evaluates the rules top to bottom; the first match wins.
//
// A present carrier code other than the sentinel never reaches the
// surcharge rules, so it is always Unknown.
func (c *Classifier) Classify(fields map[string]model.Value) model.Label {
	carrier := fields[c.rules.CarrierField]
	surcharge := fields[c.rules.SurchargeField]

	if carrier.Valid && carrier.Text == c.rules.CarrierSentinel {
		return model.LabelForza
	}
	if carrier.Valid {
		return model.LabelUnknown
	}

	if !surcharge.Valid {
		return model.LabelMensajero
	}
	amount, ok := surcharge.Float()
	switch {
	case !ok:
		return model.LabelUnknown
	case amount == 0:
		return model.LabelMensajero
	case amount > 0:
		return model.LabelCargo
	}
	return model.LabelUnknown
}

// Tally counts labels over a run.
type Tally map[model.Label]int

// Add records one label.
func (t Tally) Add(l model.Label) {
	t[l]++
}

// Total returns the number of labels recorded.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}
