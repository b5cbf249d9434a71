// Package config resolves runtime settings from defaults, an optional YAML or
// TOML file and TASKLIST_* environment variables. Flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage   string `yaml:"storage" toml:"storage"`
	DBPath    string `yaml:"db_path" toml:"db_path"`
	DataDir   string `yaml:"data_dir" toml:"data_dir"`
	Key       string `yaml:"key" toml:"key"`
	Filter    string `yaml:"filter" toml:"filter"`
	LogFile   string `yaml:"log_file" toml:"log_file"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Mouse     bool   `yaml:"mouse" toml:"mouse"`
	AltScreen bool   `yaml:"alt_screen" toml:"alt_screen"`
}

// Default roots every path under dataDir.
func Default(dataDir string) Config {
	return Config{
		Storage:   storage.DriverSQLite,
		DBPath:    filepath.Join(dataDir, "tasklist.db"),
		DataDir:   dataDir,
		Key:       "todos",
		Filter:    string(model.FilterAll),
		LogFile:   filepath.Join(dataDir, "tasklist.log"),
		LogLevel:  "info",
		Mouse:     true,
		AltScreen: true,
	}
}

// DefaultDataDir is <user config dir>/tasklist, or .tasklist when the user
// config dir is unknown.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tasklist")
	}
	return ".tasklist"
}

// FileNames are the config files looked up in the data dir, in order.
var FileNames = []string{"config.yaml", "config.yml", "config.toml"}

// LoadFile overlays the file at path onto base. A .toml extension selects
// TOML, anything else is read as YAML. Keys missing from the file keep
// base's values.
func LoadFile(base Config, path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	cfg := base
	if err := unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FindFile returns the first of FileNames present in dir, or "".
func FindFile(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadDotEnv exports the variables in <dir>/.env that are not already set.
// A missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKLIST_STORAGE"); ok {
		cfg.Storage = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKLIST_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKLIST_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("TASKLIST_KEY"); ok {
		cfg.Key = v
	}
	if v, ok := getEnvString("TASKLIST_FILTER"); ok {
		cfg.Filter = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvBool("TASKLIST_MOUSE"); ok {
		cfg.Mouse = v
	}
	if v, ok := getEnvBool("TASKLIST_ALT_SCREEN"); ok {
		cfg.AltScreen = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Storage {
	case storage.DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: db_path is required for sqlite storage")
		}
	case storage.DriverFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return errors.New("config: data_dir is required for file storage")
		}
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("config: key must not be empty")
	}
	if _, err := model.ParseFilter(c.Filter); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// StorageLocation is what storage.Open expects for the configured driver.
func (c Config) StorageLocation() string {
	if c.Storage == storage.DriverFile {
		return c.DataDir
	}
	return c.DBPath
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
