package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
)

// カートの保存先
type CartStore string

const (
	CartStoreMemory   CartStore = "memory"
	CartStoreFile     CartStore = "file"
	CartStoreSQLite   CartStore = "sqlite"
	CartStorePostgres CartStore = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（:8080）

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	CatalogPath string // カタログファイル（空なら埋め込みのシード）

	CartStore   CartStore // カートの保存先
	CartKey     string    // 保存キー（cart）
	CartFileDir string    // fileストアのディレクトリ
	SQLitePath  string    // sqliteストアのファイル

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	TaxRate decimal.Decimal // 注文サマリーの税率（0.10）
}

// Loadは環境変数から設定を読む。未設定の項目はデフォルト値。
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	taxRate, err := decimalOr("TAX_RATE", decimal.RequireFromString("0.10"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: normalizePort(getenv("PORT", "8080")),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		CatalogPath: os.Getenv("CATALOG_PATH"),

		CartStore:   CartStore(strings.ToLower(getenv("CART_STORE", string(CartStoreFile)))),
		CartKey:     getenv("CART_KEY", "cart"),
		CartFileDir: getenv("CART_FILE_DIR", "./data"),
		SQLitePath:  getenv("SQLITE_PATH", "./data/storefront.db"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		TaxRate: taxRate,
	}

	//値チェック
	switch cfg.GoEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod: %q", cfg.GoEnv)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL is invalid: %q", cfg.LogLevel)
	}
	switch cfg.CartStore {
	case CartStoreMemory, CartStoreFile, CartStoreSQLite, CartStorePostgres:
	default:
		return Config{}, fmt.Errorf("CART_STORE must be memory, file, sqlite or postgres: %q", cfg.CartStore)
	}
	if strings.TrimSpace(cfg.CartKey) == "" {
		return Config{}, fmt.Errorf("CART_KEY is required")
	}
	if cfg.TaxRate.IsNegative() {
		return Config{}, fmt.Errorf("TAX_RATE must be >= 0")
	}

	return cfg, nil
}

// DATABASE_URLが無ければPOSTGRES_*から組み立てる
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func decimalOr(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be number: %w", key, err)
	}
	return d, nil
}

// "8080" も ":8080" も受け付ける
func normalizePort(v string) string {
	if v[0] != ':' {
		return ":" + v
	}
	return v
}
