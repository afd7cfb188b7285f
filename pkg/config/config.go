package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Store  StoreConfig
	Table  TableConfig
	Notify NotifyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string // lista separada por comas para CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig usuario de demostración de la pantalla de login.
type AuthConfig struct {
	DemoUserID   string
	DemoEmail    string
	DemoPassword string
	DemoName     string
}

// StoreConfig latencias del backend simulado.
type StoreConfig struct {
	FetchLatency  time.Duration
	AddLatency    time.Duration
	UpdateLatency time.Duration
	DeleteLatency time.Duration
}

// TableConfig valores iniciales de la tabla.
type TableConfig struct {
	DefaultPageSize int
}

// NotifyConfig tamaño de la cola de avisos de cada sesión.
type NotifyConfig struct {
	FeedSize int
}

// allowedPageSizes debe coincidir con el selector "Rows per page" de la tabla.
var allowedPageSizes = []int{5, 10, 15, 20, 30, 50}

// devSecret solo se acepta con APP_ENV=development.
const devSecret = "dev-secret-change-me"

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, STORE_ADD_LATENCY_MS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := getString(v, "APP_ENV", "development")
	secret := getString(v, "JWT_SECRET", "")
	if secret == "" && env == "development" {
		secret = devSecret
	}

	cfg := &Config{
		App: AppConfig{
			Env:  env,
			Name: getString(v, "APP_NAME", "bsgoods-inventory"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			AllowOrigins: getString(v, "ALLOW_ORIGINS", "*"),
		},
		JWT: JWTConfig{
			Secret:     secret,
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "bsgoods-inventory"),
		},
		Auth: AuthConfig{
			DemoUserID:   getString(v, "AUTH_DEMO_USER_ID", "1"),
			DemoEmail:    getString(v, "AUTH_DEMO_EMAIL", "test@example.com"),
			DemoPassword: getString(v, "AUTH_DEMO_PASSWORD", "password123"),
			DemoName:     getString(v, "AUTH_DEMO_NAME", "Test User"),
		},
		Store: StoreConfig{
			FetchLatency:  getMillis(v, "STORE_FETCH_LATENCY_MS", 1200),
			AddLatency:    getMillis(v, "STORE_ADD_LATENCY_MS", 789),
			UpdateLatency: getMillis(v, "STORE_UPDATE_LATENCY_MS", 1500),
			DeleteLatency: getMillis(v, "STORE_DELETE_LATENCY_MS", 1500),
		},
		Table: TableConfig{
			DefaultPageSize: getInt(v, "TABLE_DEFAULT_PAGE_SIZE", 10),
		},
		Notify: NotifyConfig{
			FeedSize: getInt(v, "NOTIFY_FEED_SIZE", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa los valores que harían fallar el arranque más adelante.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
	}
	if !slices.Contains(allowedPageSizes, c.Table.DefaultPageSize) {
		return fmt.Errorf("config: TABLE_DEFAULT_PAGE_SIZE=%d no permitido (use %v)", c.Table.DefaultPageSize, allowedPageSizes)
	}
	if c.Notify.FeedSize < 1 {
		return fmt.Errorf("config: NOTIFY_FEED_SIZE debe ser mayor que 0")
	}
	for _, d := range []time.Duration{c.Store.FetchLatency, c.Store.AddLatency, c.Store.UpdateLatency, c.Store.DeleteLatency} {
		if d < 0 {
			return fmt.Errorf("config: las latencias STORE_*_LATENCY_MS no pueden ser negativas")
		}
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

// getMillis lee un entero en milisegundos.
func getMillis(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Millisecond
}
