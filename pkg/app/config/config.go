package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read once from the environment with the STOREFRONT_ prefix.
// Razorpay credentials and the AMQP URL are optional: their absence is a
// supported configuration, not a startup failure.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	AMQPURL string `envconfig:"AMQP_URL"`

	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET"`

	TokenSecret string        `envconfig:"TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"72h"`

	ShippingFeeCents int64 `envconfig:"SHIPPING_FEE_CENTS" default:"500"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("storefront", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PaymentsEnabled reports whether real provider credentials were supplied.
func (c *Config) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}
