package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DictionaryEntry is a user supplied dictionary rule.
// An empty Replacement marks matching tokens as noise.
type DictionaryEntry struct {
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
}

type Config struct {
	ImageExt     []string          `mapstructure:"image_extensions"`
	BestWord     string            `mapstructure:"best_word"`
	Signature    string            `mapstructure:"signature"`
	BestRating   int               `mapstructure:"best_rating"`
	PathKeywords bool              `mapstructure:"populate_path_keywords"`
	Normalize    bool              `mapstructure:"normalize"`
	KeywordBase  string            `mapstructure:"keyword_base"`
	Ignore       []string          `mapstructure:"ignore"`
	Dictionary   []DictionaryEntry `mapstructure:"dictionary"`
	ExifToolPath string            `mapstructure:"exiftool_path"`
	LogLevel     string            `mapstructure:"log_level"`
	LogFile      string            `mapstructure:"log_file"`
	JournalDir   string            `mapstructure:"journal_dir"`
	WatchSettle  time.Duration     `mapstructure:"watch_settle"`
}

// MinWatchSettle is the shortest accepted watch_settle.
const MinWatchSettle = 10 * time.Millisecond

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		ImageExt:     []string{".jpg", ".jpeg"},
		BestWord:     DefaultBestWord,
		Signature:    DefaultSignature,
		BestRating:   DefaultBestRating,
		PathKeywords: true,
		Normalize:    true,
		Ignore:       []string{"**/.*/**"},
		LogLevel:     "info",
		WatchSettle:  2 * time.Second,
	}
}

// LoadConfig reads phototag.toml from the user config dir, or from path when
// it is not empty. PHOTOTAG_* environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find user config dir: %w", err)
		}
		v.SetConfigName("phototag")
		v.AddConfigPath(filepath.Join(configDir, "phototag"))
	}

	v.SetEnvPrefix("phototag")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("image_extensions", def.ImageExt)
	v.SetDefault("best_word", def.BestWord)
	v.SetDefault("signature", def.Signature)
	v.SetDefault("best_rating", def.BestRating)
	v.SetDefault("populate_path_keywords", def.PathKeywords)
	v.SetDefault("normalize", def.Normalize)
	v.SetDefault("keyword_base", "")
	v.SetDefault("ignore", def.Ignore)
	v.SetDefault("exiftool_path", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("journal_dir", "")
	v.SetDefault("watch_settle", def.WatchSettle)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Config file not found; that's OK, just use defaults
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BestWord) == "" {
		return fmt.Errorf("invalid config: best_word must not be empty")
	}
	if strings.TrimSpace(c.Signature) == "" {
		return fmt.Errorf("invalid config: signature must not be empty")
	}
	if len(c.ImageExt) == 0 {
		return fmt.Errorf("invalid config: image_extensions must not be empty")
	}
	for i, e := range c.ImageExt {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		c.ImageExt[i] = e
	}
	if c.WatchSettle < MinWatchSettle {
		return fmt.Errorf("invalid config: watch_settle must be at least %s", MinWatchSettle)
	}
	if _, err := dictionaryRules(c.Dictionary); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// JournalDirectory returns the configured journal dir or the default one
// beneath the user config dir.
func (c *Config) JournalDirectory() (string, error) {
	if c.JournalDir != "" {
		return c.JournalDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find user config dir: %w", err)
	}
	return filepath.Join(configDir, "phototag", "runs"), nil
}
