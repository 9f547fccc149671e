package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/waybill-match/internal/common"
	"github.com/Veraticus/waybill-match/internal/engine"
	"github.com/Veraticus/waybill-match/internal/matcher"
)

// Viper keys.
const (
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"

	KeyThreshold = "matching.threshold"
	KeyWorkers   = "matching.workers"

	KeyCarrierField    = "classification.carrier_field"
	KeyCarrierSentinel = "classification.carrier_sentinel"
	KeySurchargeField  = "classification.surcharge_field"

	KeySalesDate     = "columns.sales.date"
	KeySalesKey      = "columns.sales.key"
	KeySalesShipment = "columns.sales.shipment"

	KeyWaybillRecipient  = "columns.waybills.recipient"
	KeyWaybillDate       = "columns.waybills.date"
	KeyWaybillReference1 = "columns.waybills.reference_1"
	KeyWaybillReference2 = "columns.waybills.reference_2"
	KeyWaybillStatus     = "columns.waybills.status"

	KeyPeriodSheet     = "output.period_sheet"
	KeyEchoSheet       = "output.echo_sheet"
	KeyComparisonSheet = "output.comparison_sheet"

	KeyArchiveEnabled = "archive.enabled"
	KeyArchivePath    = "archive.path"

	KeyProgress = "progress"
)

// SetDefaults registers the mode-independent defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, common.FormatConsole)
	v.SetDefault(KeyThreshold, matcher.DefaultThreshold)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyArchiveEnabled, false)
	v.SetDefault(KeyArchivePath, DefaultArchivePath())
	v.SetDefault(KeyProgress, true)
}

// Settings is everything a run command needs from configuration.
type Settings struct {
	ArchivePath string
	Engine      engine.Config
	Archive     bool
	Progress    bool
}

// Load builds validated settings for a mode. Keys left empty keep the mode's
// defaults; periods are supplied by the caller.
func Load(v *viper.Viper, mode engine.Mode, periods []string) (*Settings, error) {
	cfg := engine.DefaultConfig(mode)
	cfg.Periods = periods
	cfg.Threshold = v.GetFloat64(KeyThreshold)
	cfg.Workers = v.GetInt(KeyWorkers)

	override(v, KeyCarrierField, &cfg.Rules.CarrierField)
	override(v, KeyCarrierSentinel, &cfg.Rules.CarrierSentinel)
	override(v, KeySurchargeField, &cfg.Rules.SurchargeField)

	override(v, KeySalesDate, &cfg.Source.Date)
	override(v, KeySalesKey, &cfg.Source.Key)
	override(v, KeySalesShipment, &cfg.Source.Shipment)

	override(v, KeyWaybillRecipient, &cfg.Reference.Recipient)
	override(v, KeyWaybillDate, &cfg.Reference.Date)
	override(v, KeyWaybillReference1, &cfg.Reference.Reference1)
	override(v, KeyWaybillReference2, &cfg.Reference.Reference2)
	override(v, KeyWaybillStatus, &cfg.Reference.Status)

	override(v, KeyPeriodSheet, &cfg.PeriodSheet)
	override(v, KeyEchoSheet, &cfg.EchoSheet)
	override(v, KeyComparisonSheet, &cfg.ComparisonSheet)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if cfg.Mode == engine.ModeSheet && cfg.EchoSheet == cfg.ComparisonSheet {
		return nil, fmt.Errorf("%w: echo and comparison sheets share the name %q",
			common.ErrInvalidConfig, cfg.EchoSheet)
	}

	s := &Settings{
		Engine:      cfg,
		Archive:     v.GetBool(KeyArchiveEnabled),
		ArchivePath: ExpandPath(v.GetString(KeyArchivePath)),
		Progress:    v.GetBool(KeyProgress),
	}
	if s.Archive && s.ArchivePath == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyArchivePath)
	}
	return s, nil
}

func override(v *viper.Viper, key string, dst *string) {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		*dst = s
	}
}
