package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	Form   FormConfig
	Wizard WizardConfig
	Redis  RedisConfig
	Audit  AuditConfig
	DB     DBConfig
	JWT    JWTConfig
}

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	Env      string
	Timezone string `validate:"required"`
}

type LogConfig struct {
	Level string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	File  string
}

type FormConfig struct {
	// OptionsFile points at a YAML option catalog.  Empty uses the embedded one.
	OptionsFile   string
	StrictOptions bool
}

type WizardConfig struct {
	Store string        `validate:"required,oneof=memory redis"`
	TTL   time.Duration `validate:"gt=0"`
}

type RedisConfig struct {
	Host     string `validate:"required_if=Enabled true"`
	Port     string `validate:"required_if=Enabled true"`
	Password string
	DB       int `validate:"gte=0"`
	Enabled  bool
}

type AuditConfig struct {
	Enabled bool
}

type DBConfig struct {
	Host     string `validate:"required_if=Enabled true"`
	Port     string `validate:"required_if=Enabled true"`
	User     string `validate:"required_if=Enabled true"`
	Password string
	Name     string `validate:"required_if=Enabled true"`
	Enabled  bool
}

type JWTConfig struct {
	Secret       string        `validate:"required,min=16"`
	AccessExpiry time.Duration `validate:"gt=0"`
}

// Location resolves App.Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DRAFT_STORE", DraftStoreMemory)
	viper.SetDefault("WIZARD_TTL", "2h")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AUDIT_ENABLED", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("WIZARD_TOKEN_EXPIRY", "2h")
	viper.SetDefault("FORM_STRICT_OPTIONS", false)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// The .env file is optional, plain environment variables are enough.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	wizardTTL, err := time.ParseDuration(viper.GetString("WIZARD_TTL"))
	if err != nil {
		wizardTTL = 2 * time.Hour
	}

	tokenExpiry, err := time.ParseDuration(viper.GetString("WIZARD_TOKEN_EXPIRY"))
	if err != nil {
		tokenExpiry = wizardTTL
	}

	store := viper.GetString("DRAFT_STORE")
	auditEnabled := viper.GetBool("AUDIT_ENABLED")

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
			File:  viper.GetString("LOG_FILE"),
		},
		Form: FormConfig{
			OptionsFile:   viper.GetString("OPTIONS_FILE"),
			StrictOptions: viper.GetBool("FORM_STRICT_OPTIONS"),
		},
		Wizard: WizardConfig{
			Store: store,
			TTL:   wizardTTL,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  store == DraftStoreRedis,
		},
		Audit: AuditConfig{
			Enabled: auditEnabled,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			Enabled:  auditEnabled,
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: tokenExpiry,
		},
	}

	if err := Validate(config); err != nil {
		return nil, err
	}
	if _, err := config.Location(); err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", config.App.Timezone, err)
	}

	return config, nil
}

var structValidator = validator.New()

// Validate checks a Config against its struct tags.
func Validate(c *Config) error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DSN renders the postgres connection string for DB.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

// URL renders DB as a postgres:// URL, the form golang-migrate expects.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
