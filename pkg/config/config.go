package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Store StoreConfig
	JWT   JWTConfig
	Auth  AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// Drivers de persistencia soportados.
const (
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StoreConfig selección y parámetros del almacén durable.
// El driver por defecto es el libro xlsx de dos hojas (stock + sorties).
type StoreConfig struct {
	Driver      string // xlsx | postgres | sqlite
	XLSXPath    string // ruta del libro, driver xlsx
	SQLitePath  string // ruta del fichero .db, driver sqlite
	DatabaseURL string // DSN completo PostgreSQL, driver postgres
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig cuentas de operador aprovisionadas al arrancar.
// Users tiene el formato "username:password:nombre:rol" separado por comas,
// ej. "brahim:s3cret:Brahim A.:admin,fatima:pass:Fatima Z.:technicien".
type AuthConfig struct {
	Users string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "gmao-stock"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver:      getString(v, "STORE_DRIVER", DriverXLSX),
			XLSXPath:    getString(v, "STORE_XLSX_PATH", "./data/stock_campus.xlsx"),
			SQLitePath:  getString(v, "STORE_SQLITE_PATH", "./data/stock_campus.db"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gmao-stock"),
		},
		Auth: AuthConfig{
			Users: getString(v, "AUTH_USERS", ""),
		},
	}

	switch cfg.Store.Driver {
	case DriverXLSX, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("config: STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == DriverPostgres && cfg.Store.DatabaseURL == "" {
		return nil, fmt.Errorf("config: driver postgres requiere DATABASE_URL")
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
