package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	Storage   StorageConfig
	DB        DBConfig
	Wallet    WalletConfig
	OTP       OTPConfig
	RateLimit RateLimitConfig
	Docs      DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StorageConfig selecciona dónde viven las pólizas mutables y de dónde sale la semilla.
type StorageConfig struct {
	Driver   string // memory | postgres
	SeedFile string // vacío = semilla embebida
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	PreferIPv4      bool // marca tcp4 en el dial (hosts sin ruta IPv6)
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// WalletConfig proveedor de billetera (puente JSON-RPC) y parámetros de pago.
type WalletConfig struct {
	RPCURL        string // vacío = no hay billetera instalada
	Timeout       time.Duration
	Destination   string          // dirección que recibe las primas
	ETHUSDRate    decimal.Decimal // USD por 1 ETH (tasa fija)
	ExplorerTxURL string          // plantilla con %s para el hash
}

// OTPConfig verificación de la solicitud.
type OTPConfig struct {
	Bypass bool // acepta cualquier código de 6 caracteres
	TTL    time.Duration
}

// RateLimitConfig límite de intentos de login por IP.
type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

// DocsConfig documentación Swagger.
type DocsConfig struct {
	SwaggerFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, WALLET_RPC_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := getString(v, "APP_ENV", "development")

	rate, err := decimal.NewFromString(getString(v, "ETH_USD_RATE", "2000"))
	if err != nil {
		return nil, fmt.Errorf("config: ETH_USD_RATE inválido: %w", err)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("config: ETH_USD_RATE debe ser mayor que 0")
	}

	cfg := &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "bancassurance-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "bancassurance-api"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString(v, "STORAGE_DRIVER", StorageMemory)),
			SeedFile: getString(v, "SEED_FILE", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bancassurance"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),

			MaxConns:        int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:        int32(getInt(v, "DB_MIN_CONNS", 1)),
			MaxConnLifetime: time.Duration(getInt(v, "DB_MAX_CONN_LIFETIME_MINUTES", 60)) * time.Minute,
			MaxConnIdleTime: time.Duration(getInt(v, "DB_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute,
			PreferIPv4:      getBool(v, "DB_PREFER_IPV4", false),
		},
		Wallet: WalletConfig{
			RPCURL:        getString(v, "WALLET_RPC_URL", ""),
			Timeout:       time.Duration(getInt(v, "WALLET_TIMEOUT_SECONDS", 120)) * time.Second,
			Destination:   getString(v, "WALLET_DESTINATION", "0x2345678901234567890123456789012345678901"),
			ETHUSDRate:    rate,
			ExplorerTxURL: getString(v, "EXPLORER_TX_URL", "https://etherscan.io/tx/%s"),
		},
		OTP: OTPConfig{
			Bypass: getBool(v, "OTP_BYPASS", false),
			TTL:    time.Duration(getInt(v, "OTP_TTL_MINUTES", 10)) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: getFloat(v, "LOGIN_RATE_PER_SECOND", 5),
			LoginBurst:     getInt(v, "LOGIN_RATE_BURST", 10),
		},
		Docs: DocsConfig{
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	// En desarrollo se permite un secreto por defecto; en otros entornos es obligatorio.
	if cfg.JWT.Secret == "" {
		if env != "development" {
			return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en %s", env)
		}
		cfg.JWT.Secret = "development-only-secret"
	}
	if cfg.Storage.Driver != StorageMemory && cfg.Storage.Driver != StoragePostgres {
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}
	if cfg.DB.MaxConns < 1 || cfg.DB.MinConns < 0 || cfg.DB.MinConns > cfg.DB.MaxConns {
		return nil, fmt.Errorf("config: DB_MIN_CONNS/DB_MAX_CONNS inválidos (%d/%d)", cfg.DB.MinConns, cfg.DB.MaxConns)
	}
	if !strings.Contains(cfg.Wallet.ExplorerTxURL, "%s") {
		return nil, fmt.Errorf("config: EXPLORER_TX_URL debe contener %%s")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
