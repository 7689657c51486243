package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Sandbox SandboxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// APIConfig configuración del cliente REST hacia el backend de bodegas.
type APIConfig struct {
	BaseURL string // ej. http://localhost:8080/api (sin barra final)
	Timeout time.Duration
}

// SessionConfig ubicación del almacenamiento persistente de la sesión (token, username, rol).
type SessionConfig struct {
	File string
}

// JWTConfig configuración de JWT (solo la usa el sandbox; el cliente nunca conoce el secret).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP del sandbox.
type HTTPConfig struct {
	Host string
	Port int
}

// SandboxConfig datos de demostración del backend en memoria.
type SandboxConfig struct {
	Password   string // contraseña de los usuarios sembrados
	BcryptCost int    // 0 = bcrypt.DefaultCost
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, SESSION_FILE, JWT_SECRET, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	baseURL := strings.TrimRight(getString(v, "API_URL", "http://localhost:8080/api"), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("config: API_URL vacío")
	}
	timeout := getInt(v, "HTTP_TIMEOUT_SECONDS", 15)
	if timeout <= 0 {
		return nil, fmt.Errorf("config: HTTP_TIMEOUT_SECONDS debe ser positivo (%d)", timeout)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestion-bodegas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: time.Duration(timeout) * time.Second,
		},
		Session: SessionConfig{
			File: getString(v, "SESSION_FILE", defaultSessionFile()),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "gestion-bodegas"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Sandbox: SandboxConfig{
			Password:   getString(v, "SANDBOX_PASSWORD", "secret"),
			BcryptCost: getInt(v, "SANDBOX_BCRYPT_COST", 0),
		},
	}
	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", ".gestion-bodegas", "session.json")
	}
	return filepath.Join(home, ".gestion-bodegas", "session.json")
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
