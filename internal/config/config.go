package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
}

type WebhookConfig struct {
	URL          string
	Secret       string
	SecretHeader string
	Timeout      time.Duration
	EncodeLimit  int
}

type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	SweepInterval time.Duration
}

// VariantConfig overrides the regional preset of one locale.
type VariantConfig struct {
	PhoneCode string
	Consent   bool
	CityInput string
}

type QuotationConfig struct {
	DefaultLocale     string
	ReferenceDataPath string
	French            VariantConfig
	English           VariantConfig
}

type Config struct {
	Environment string
	LogLevel    string
	SentryDSN   string
	HTTP        HTTPConfig
	Webhook     WebhookConfig
	Session     SessionConfig
	Quotation   QuotationConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7089)
	v.SetDefault("UPLOAD_MAX_BYTES", 20<<20)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("WEBHOOK_SECRET_HEADER", "x-flow-secret")
	v.SetDefault("WEBHOOK_TIMEOUT", "30s")
	v.SetDefault("WEBHOOK_ENCODE_CONCURRENCY", 4)
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")
	v.SetDefault("DEFAULT_LOCALE", "fr")
	v.SetDefault("VARIANT_FR_PHONE_CODE", "+33")
	v.SetDefault("VARIANT_FR_CONSENT", true)
	v.SetDefault("VARIANT_FR_CITY_INPUT", "free")
	v.SetDefault("VARIANT_EN_PHONE_CODE", "+44")
	v.SetDefault("VARIANT_EN_CONSENT", false)
	v.SetDefault("VARIANT_EN_CITY_INPUT", "list")
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		SentryDSN:   v.GetString("SENTRY_DSN"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MaxUploadBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
			TrustedProxies: parseList(v.GetString("HTTP_TRUSTED_PROXIES")),
		},
		Webhook: WebhookConfig{
			URL:          v.GetString("WEBHOOK_URL"),
			Secret:       v.GetString("FLOW_SECRET"),
			SecretHeader: v.GetString("WEBHOOK_SECRET_HEADER"),
			Timeout:      v.GetDuration("WEBHOOK_TIMEOUT"),
			EncodeLimit:  v.GetInt("WEBHOOK_ENCODE_CONCURRENCY"),
		},
		Session: SessionConfig{
			Secret:        v.GetString("SESSION_SECRET"),
			TTL:           v.GetDuration("SESSION_TTL"),
			SweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
		},
		Quotation: QuotationConfig{
			DefaultLocale:     strings.ToLower(v.GetString("DEFAULT_LOCALE")),
			ReferenceDataPath: v.GetString("REFERENCE_DATA_PATH"),
			French: VariantConfig{
				PhoneCode: v.GetString("VARIANT_FR_PHONE_CODE"),
				Consent:   v.GetBool("VARIANT_FR_CONSENT"),
				CityInput: strings.ToLower(v.GetString("VARIANT_FR_CITY_INPUT")),
			},
			English: VariantConfig{
				PhoneCode: v.GetString("VARIANT_EN_PHONE_CODE"),
				Consent:   v.GetBool("VARIANT_EN_CONSENT"),
				CityInput: strings.ToLower(v.GetString("VARIANT_EN_CITY_INPUT")),
			},
		},
	}

	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func validate(cfg *Config) error {
	if cfg.Webhook.URL == "" {
		return fmt.Errorf("WEBHOOK_URL is required")
	}
	if cfg.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if cfg.Webhook.Timeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive")
	}
	if cfg.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	for name, variant := range map[string]VariantConfig{"VARIANT_FR": cfg.Quotation.French, "VARIANT_EN": cfg.Quotation.English} {
		if variant.CityInput != "free" && variant.CityInput != "list" {
			return fmt.Errorf("%s_CITY_INPUT must be free or list, got %q", name, variant.CityInput)
		}
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
