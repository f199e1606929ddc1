package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret              string `mapstructure:"secret"`
	Issuer              string `mapstructure:"issuer"`
	AccessExpHours      int    `mapstructure:"access_exp_hours"`
	AdminAccessExpHours int    `mapstructure:"admin_access_exp_hours"`
	RefreshExpDays      int    `mapstructure:"refresh_exp_days"`
}

type LoginConfig struct {
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes"`
	CodeCount         int `mapstructure:"code_count"`
}

type AuthConfig struct {
	JWT   JWTConfig   `mapstructure:"jwt"`
	Login LoginConfig `mapstructure:"login"`
}

// CryptoConfig carries the AES material for bot token encryption at rest.
type CryptoConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
	EncryptionIV  string `mapstructure:"encryption_iv"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminAddress string `mapstructure:"admin_address"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	BotUsername string `mapstructure:"bot_username"`
	Enabled     bool   `mapstructure:"enabled"`
}

type PaymeConfig struct {
	MerchantID string `mapstructure:"merchant_id"`
	Key        string `mapstructure:"key"`
	TestKey    string `mapstructure:"test_key"`
}

type ClickConfig struct {
	ServiceID      string `mapstructure:"service_id"`
	MerchantID     string `mapstructure:"merchant_id"`
	MerchantUserID string `mapstructure:"merchant_user_id"`
	SecretKey      string `mapstructure:"secret_key"`
}

type CryptopayConfig struct {
	IPNSecret string `mapstructure:"ipn_secret"`
	APIKey    string `mapstructure:"api_key"`
}

// PaymentsConfig groups the gateway credentials and the fiat conversion rate.
// UsdUzsRate is kept as a string so it can be parsed into a fixed-point
// decimal; monetary values never pass through float64.
type PaymentsConfig struct {
	UsdUzsRate string          `mapstructure:"usd_uzs_rate"`
	Payme      PaymeConfig     `mapstructure:"payme"`
	Click      ClickConfig     `mapstructure:"click"`
	Cryptopay  CryptopayConfig `mapstructure:"cryptopay"`
}

// StorageConfig points at the S3-compatible public bucket serving ad media.
// The backend only validates and rewrites URLs under this endpoint; uploads
// happen through a separate signing service.
type StorageConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Bucket   string `mapstructure:"bucket"`
}

func (s *StorageConfig) PublicBaseURL() string {
	return fmt.Sprintf("%s/%s", s.Endpoint, s.Bucket)
}
