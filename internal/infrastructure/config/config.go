package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Crypto   sharedConfig.CryptoConfig   `mapstructure:"crypto"`
	Email    sharedConfig.EmailConfig    `mapstructure:"email"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Telegram sharedConfig.TelegramConfig `mapstructure:"telegram"`
	Payments sharedConfig.PaymentsConfig `mapstructure:"payments"`
	Storage  sharedConfig.StorageConfig  `mapstructure:"storage"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	// Load single config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	// Set environment variable prefix and replacer
	viper.SetEnvPrefix("AKHMADS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects a config that is missing keys the platform cannot run
// without. Startup aborts rather than limping along with empty secrets.
func (c *Config) Validate() error {
	required := []struct {
		value string
		key   string
	}{
		{c.Auth.JWT.Secret, "auth.jwt.secret"},
		{c.Crypto.EncryptionKey, "crypto.encryption_key"},
		{c.Crypto.EncryptionIV, "crypto.encryption_iv"},
		{c.Database.Host, "database.host"},
		{c.Database.Database, "database.database"},
		{c.Redis.Host, "redis.host"},
		{c.Server.BaseURL, "server.base_url"},
		{c.Storage.Endpoint, "storage.endpoint"},
		{c.Telegram.BotToken, "telegram.bot_token"},
		{c.Payments.UsdUzsRate, "payments.usd_uzs_rate"},
		{c.Payments.Payme.MerchantID, "payments.payme.merchant_id"},
		{c.Payments.Payme.Key, "payments.payme.key"},
		{c.Payments.Click.ServiceID, "payments.click.service_id"},
		{c.Payments.Click.SecretKey, "payments.click.secret_key"},
		{c.Payments.Cryptopay.IPNSecret, "payments.cryptopay.ipn_secret"},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "akhmads_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt.issuer", "akhmads.net")
	viper.SetDefault("auth.jwt.access_exp_hours", 48)
	viper.SetDefault("auth.jwt.admin_access_exp_hours", 24)
	viper.SetDefault("auth.jwt.refresh_exp_days", 7)
	viper.SetDefault("auth.login.session_ttl_minutes", 5)
	viper.SetDefault("auth.login.code_count", 4)

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@akhmads.net")
	viper.SetDefault("email.from_name", "Akhmads Ads")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Telegram defaults
	viper.SetDefault("telegram.enabled", true)
	viper.SetDefault("telegram.bot_username", "akhmads_login_bot")

	// Storage defaults
	viper.SetDefault("storage.bucket", "ad-media")
}
