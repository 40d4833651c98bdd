package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del watcher.
type Config struct {
	Watcher WatcherConfig `yaml:"watcher"`
	Notify  NotifyConfig  `yaml:"notify"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// WatcherConfig controla qué traders se vigilan y cómo.
type WatcherConfig struct {
	Traders             []string `yaml:"traders"`
	PollIntervalSeconds float64  `yaml:"poll_interval_seconds"` // base, el jitter se suma aparte
	LookbackMinutes     int      `yaml:"lookback_minutes"`      // ventana inicial del watermark
	PageSize            int      `yaml:"page_size"`
	MinUSDC             *float64 `yaml:"min_usdc"` // nil = default; 0 notifica todo
	MaxSeen             int      `yaml:"max_seen"` // 0 = set de hashes sin límite
	RestartDelaySeconds int      `yaml:"restart_delay_seconds"`
	StartupMessage      string   `yaml:"startup_message"`
}

// NotifyConfig contiene el destino de las notificaciones.
type NotifyConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// APIConfig contiene los base URLs de las APIs.
type APIConfig struct {
	DataBase  string `yaml:"data_base"`
	GammaBase string `yaml:"gamma_base"`
}

// StorageConfig controla dónde se guarda el histórico de alertas.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben los valores del YAML.
// Un path vacío o inexistente no es error: se usan env + defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)
	normalizeTraders(&cfg)

	return &cfg, nil
}

// PollInterval devuelve el intervalo base de polling como time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watcher.PollIntervalSeconds * float64(time.Second))
}

// Lookback devuelve la ventana inicial del watermark.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.Watcher.LookbackMinutes) * time.Minute
}

// RestartDelay devuelve la espera antes de relanzar un poller caído.
func (c *Config) RestartDelay() time.Duration {
	return time.Duration(c.Watcher.RestartDelaySeconds) * time.Second
}

// MinUSDC devuelve el importe mínimo a notificar.
func (c *Config) MinUSDC() float64 {
	if c.Watcher.MinUSDC == nil {
		return 0
	}
	return *c.Watcher.MinUSDC
}

// Validate comprueba que la configuración permite arrancar.
// El webhook solo es obligatorio si requireWebhook (no dry-run).
func (c *Config) Validate(requireWebhook bool) error {
	if len(c.Watcher.Traders) == 0 {
		return errors.New("at least one trader is required (watcher.traders or TRADERS_TO_WATCH)")
	}
	for _, t := range c.Watcher.Traders {
		if !common.IsHexAddress(t) {
			return fmt.Errorf("invalid trader address %q", t)
		}
	}
	if c.Watcher.PollIntervalSeconds <= 0 {
		return errors.New("watcher.poll_interval_seconds must be positive")
	}
	if c.MinUSDC() < 0 {
		return errors.New("watcher.min_usdc must not be negative")
	}
	if c.Watcher.PageSize < 1 || c.Watcher.PageSize > 500 {
		return errors.New("watcher.page_size must be between 1 and 500")
	}
	if requireWebhook && c.Notify.WebhookURL == "" {
		return errors.New("notify.webhook_url (or DISCORD_WEBHOOK) is required")
	}
	return nil
}

// MaskedWebhook devuelve el webhook con la mayoría de caracteres ocultos para logs.
func (c *Config) MaskedWebhook() string {
	s := c.Notify.WebhookURL
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DISCORD_WEBHOOK"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("TRADERS_TO_WATCH"); v != "" {
		cfg.Watcher.Traders = splitList(v)
	}
	if v := os.Getenv("POLL_INTERVAL_SECONDS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("POLL_INTERVAL_SECONDS: %w", err)
		}
		cfg.Watcher.PollIntervalSeconds = f
	}
	if v := os.Getenv("MIN_USDC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MIN_USDC: %w", err)
		}
		cfg.Watcher.MinUSDC = &f
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Watcher.PollIntervalSeconds <= 0 {
		cfg.Watcher.PollIntervalSeconds = 1
	}
	if cfg.Watcher.LookbackMinutes <= 0 {
		cfg.Watcher.LookbackMinutes = 60
	}
	if cfg.Watcher.PageSize <= 0 {
		cfg.Watcher.PageSize = 20
	}
	if cfg.Watcher.MinUSDC == nil {
		v := 5.0
		cfg.Watcher.MinUSDC = &v
	}
	if cfg.Watcher.RestartDelaySeconds <= 0 {
		cfg.Watcher.RestartDelaySeconds = 5
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polywatch.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// normalizeTraders quita espacios, pasa a minúsculas y elimina duplicados
// conservando el orden.
func normalizeTraders(cfg *Config) {
	seen := make(map[string]bool, len(cfg.Watcher.Traders))
	out := cfg.Watcher.Traders[:0]
	for _, t := range cfg.Watcher.Traders {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	cfg.Watcher.Traders = out
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n'
	})
	return parts
}
