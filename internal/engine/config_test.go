package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	months := func(periods ...string) Config {
		c := DefaultConfig(ModeMonths)
		c.Periods = periods
		return c
	}
	withThreshold := func(c Config, th float64) Config {
		c.Threshold = th
		return c
	}

	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{name: "months with periods", config: months("2024-12", "2025-01")},
		{name: "sheet needs no periods", config: DefaultConfig(ModeSheet)},
		{name: "months without periods", config: months(), wantErr: ErrNoPeriods},
		{name: "bad month", config: months("2024-13"), wantErr: ErrInvalidPeriod},
		{name: "short month", config: months("2024-1"), wantErr: ErrInvalidPeriod},
		{name: "full date", config: months("2024-12-01"), wantErr: ErrInvalidPeriod},
		{name: "unknown mode", config: Config{Mode: "weekly", Threshold: 0.6}, wantErr: ErrInvalidMode},
		{name: "zero threshold", config: withThreshold(DefaultConfig(ModeSheet), 0), wantErr: ErrInvalidThreshold},
		{name: "threshold above one", config: withThreshold(DefaultConfig(ModeSheet), 1.2), wantErr: ErrInvalidThreshold},
		{name: "threshold of one", config: withThreshold(DefaultConfig(ModeSheet), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	months := DefaultConfig(ModeMonths)
	assert.Equal(t, 0.6, months.Threshold)
	assert.Equal(t, "Cliente", months.Source.Key)
	assert.Equal(t, "Envio", months.Source.Shipment)

	sheet := DefaultConfig(ModeSheet)
	assert.Equal(t, "Nombre Envio", sheet.Source.Key)
	assert.Equal(t, "CO", sheet.Rules.CarrierField)
	assert.Equal(t, "Destinatario", sheet.Reference.Recipient)
}
