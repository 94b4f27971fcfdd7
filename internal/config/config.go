package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cardkit-labs/cardkit/internal/branding"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeySchemaVersion    = "schema_version"
	KeyMaxVersion       = "max_version"
	KeyStrict           = "strict"
	KeyDisabledElements = "disabled_elements"
	KeyDisabledActions  = "disabled_actions"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
)

// Settings is the typed view of the configuration.
type Settings struct {
	SchemaVersion    schemaver.Version
	MaxVersion       schemaver.Version
	Strict           bool
	DisabledElements []string
	DisabledActions  []string
	LogLevel         string
	LogFormat        string
}

// Dir returns the config directory: $CARDKIT_HOME if set, else ~/.cardkit/.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeySchemaVersion, schemaver.Oldest.String())
	viper.SetDefault(KeyMaxVersion, schemaver.Latest.String())
	viper.SetDefault(KeyStrict, false)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the typed settings. Load must have been called.
func Current() (Settings, error) {
	s := Settings{
		Strict:           viper.GetBool(KeyStrict),
		DisabledElements: stringList(KeyDisabledElements),
		DisabledActions:  stringList(KeyDisabledActions),
		LogLevel:         viper.GetString(KeyLogLevel),
		LogFormat:        viper.GetString(KeyLogFormat),
	}

	var err error
	if s.SchemaVersion, err = versionSetting(KeySchemaVersion, schemaver.Oldest); err != nil {
		return Settings{}, err
	}
	if s.MaxVersion, err = versionSetting(KeyMaxVersion, schemaver.Latest); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func versionSetting(key string, fallback schemaver.Version) (schemaver.Version, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := schemaver.Parse(raw)
	if err != nil {
		return schemaver.Version{}, fmt.Errorf("config key %s: %w", key, err)
	}
	return v, nil
}

// stringList reads a list setting given either as a YAML list or as a
// comma-separated string (the form env vars and `config set` produce).
func stringList(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
