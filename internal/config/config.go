package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/EgorLis/doc-gateway/internal/domain"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	APIBase string `mapstructure:"API_BASE"` // внешний адрес для ссылок цитат

	// --- Auth ---
	AuthJWTSecret     string `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer        string `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTLMin   int    `mapstructure:"AUTH_TOKEN_TTL_MIN"`
	BootstrapLogin    string `mapstructure:"AUTH_BOOTSTRAP_LOGIN"`
	BootstrapPassword string `mapstructure:"AUTH_BOOTSTRAP_PASSWORD"`
	BootstrapRole     string `mapstructure:"AUTH_BOOTSTRAP_ROLE"`

	// --- Postgres ---
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	// --- Redis ---
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- S3 ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	// Креды хранилища: четыре взаимоисключающих набора, выбор по
	// приоритету (см. infra/storage/s3). Заполняется только нужный.
	S3AccessKey   string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey   string `mapstructure:"S3_SECRET_KEY"`
	S3RoleARN     string `mapstructure:"S3_ROLE_ARN"`
	S3SessionName string `mapstructure:"S3_SESSION_NAME"`
	S3UseIAM      bool   `mapstructure:"S3_USE_IAM"`

	// --- Search (индекс документов) ---
	SearchHost   string `mapstructure:"SEARCH_HOST"`
	SearchAPIKey string `mapstructure:"SEARCH_API_KEY"`
	SearchIndex  string `mapstructure:"SEARCH_INDEX"`

	// --- Прочее ---
	BlobPathTTLSec  int    `mapstructure:"BLOBPATH_CACHE_TTL_SEC"`
	AccessRulesFile string `mapstructure:"ACCESS_RULES_FILE"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  APIBase: %s\n", c.APIBase))
	sb.WriteString(fmt.Sprintf("  AuthIssuer: %s\n", c.AuthIssuer))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTLMin: %d\n", c.AuthTokenTTLMin))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))
	sb.WriteString(fmt.Sprintf("  S3RoleARN: %s\n", c.S3RoleARN))
	sb.WriteString(fmt.Sprintf("  S3UseIAM: %v\n", c.S3UseIAM))
	sb.WriteString(fmt.Sprintf("  SearchHost: %s\n", c.SearchHost))
	sb.WriteString(fmt.Sprintf("  SearchIndex: %s\n", c.SearchIndex))
	sb.WriteString(fmt.Sprintf("  AccessRulesFile: %s\n", c.AccessRulesFile))

	// секреты маскируем
	writeSecret(&sb, "DBPassword", c.DBPassword)
	writeSecret(&sb, "RedisPassword", c.RedisPassword)
	writeSecret(&sb, "AuthJWTSecret", c.AuthJWTSecret)
	writeSecret(&sb, "S3AccessKey", c.S3AccessKey)
	writeSecret(&sb, "S3SecretKey", c.S3SecretKey)
	writeSecret(&sb, "SearchAPIKey", c.SearchAPIKey)

	return sb.String()
}

func writeSecret(sb *strings.Builder, name, val string) {
	if val != "" {
		sb.WriteString(fmt.Sprintf("  %s: ********\n", name))
	} else {
		sb.WriteString(fmt.Sprintf("  %s: (empty)\n", name))
	}
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT", "API_BASE",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL_MIN",
		"AUTH_BOOTSTRAP_LOGIN", "AUTH_BOOTSTRAP_PASSWORD", "AUTH_BOOTSTRAP_ROLE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_USE_SSL", "S3_PATH_STYLE",
		"S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_ROLE_ARN", "S3_SESSION_NAME", "S3_USE_IAM",
		"SEARCH_HOST", "SEARCH_API_KEY", "SEARCH_INDEX",
		"BLOBPATH_CACHE_TTL_SEC", "ACCESS_RULES_FILE",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AuthTokenTTLMin <= 0 {
		c.AuthTokenTTLMin = 30
	}
	if c.AuthIssuer == "" {
		c.AuthIssuer = "doc-gateway"
	}
	if c.BlobPathTTLSec <= 0 {
		c.BlobPathTTLSec = 300
	}
	if c.DBScheme == "" {
		c.DBScheme = "public"
	}
}

// Validate проверяет обязательный минимум. Ошибка здесь фатальна:
// сервис не стартует с неполной конфигурацией.
func (c *Config) Validate() error {
	var missing []string
	if c.AppPort == "" {
		missing = append(missing, "APP_PORT")
	}
	if c.AuthJWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if c.S3Endpoint == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if c.SearchHost == "" {
		missing = append(missing, "SEARCH_HOST")
	}
	if c.SearchIndex == "" {
		missing = append(missing, "SEARCH_INDEX")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AuthTokenTTLMin) * time.Minute
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// LoadAccessRules читает YAML вида:
//
//	roles:
//	  analyst: ["reports/", "public/"]
//	  admin: ["*"]
//
// Отсутствие файла — не ошибка: ограничение по ролям опционально.
func (c *Config) LoadAccessRules() (domain.AccessRules, error) {
	if c.AccessRulesFile == "" {
		return domain.AccessRules{}, nil
	}

	v := viper.New()
	v.SetConfigFile(c.AccessRulesFile)
	if err := v.ReadInConfig(); err != nil {
		return domain.AccessRules{}, fmt.Errorf("read access rules: %w", err)
	}

	var out struct {
		Roles map[string][]string `mapstructure:"roles"`
	}
	if err := v.Unmarshal(&out); err != nil {
		return domain.AccessRules{}, fmt.Errorf("decode access rules: %w", err)
	}
	return domain.AccessRules{Roles: out.Roles}, nil
}
