package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig holds the operational billing knobs. The service fee
// fraction is the portion of every gross charge retained as the platform
// service amount; the remainder is the lot operator's net amount.
type BillingConfig struct {
	ServiceFeeFraction float64 `mapstructure:"serviceFeeFraction"`
	Currency           string  `mapstructure:"currency"`
	InvoiceLookback    int     `mapstructure:"invoiceLookback"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		ServiceFeeFraction: 0.10,
		Currency:           "CAD",
		InvoiceLookback:    3,
	}
}

// BillingConfigHolder provides hot-reloadable access to BillingConfig.
type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/parkline/config") // Volume-mounted config
	v.AddConfigPath("/etc/parkline")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("PARKLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultBillingConfig()
		v.SetDefault("billing.serviceFeeFraction", defaults.ServiceFeeFraction)
		v.SetDefault("billing.currency", defaults.Currency)
		v.SetDefault("billing.invoiceLookback", defaults.InvoiceLookback)
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticBillingConfigHolder returns a holder pinned to cfg. Tests use it
// to avoid touching the filesystem.
func NewStaticBillingConfigHolder(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.ServiceFeeFraction < 0 || cfg.ServiceFeeFraction > 1 {
		return errors.New("billing.serviceFeeFraction must be between 0 and 1")
	}
	if cfg.InvoiceLookback <= 0 {
		return errors.New("billing.invoiceLookback must be positive")
	}
	return nil
}
