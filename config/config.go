package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spance/capture-arbiter/constants"
	"github.com/spf13/viper"
)

const (
	ConsentPrompt = "prompt"
	ConsentAllow  = "allow"
	ConsentDeny   = "deny"
)

type Config struct {
	Lang               string   `mapstructure:"lang" json:"lang"`
	Debug              bool     `mapstructure:"debug" json:"debug"`
	CatalogFile        string   `mapstructure:"catalog_file" json:"catalog_file"`
	DefaultAudioDevice string   `mapstructure:"default_audio_device" json:"default_audio_device"`
	DefaultVideoDevice string   `mapstructure:"default_video_device" json:"default_video_device"`
	Hardware           bool     `mapstructure:"hardware" json:"hardware"`
	Watch              bool     `mapstructure:"watch" json:"watch"`
	Consent            string   `mapstructure:"consent" json:"consent"`
	AllowOrigins       []string `mapstructure:"allow_origins" json:"allow_origins"`
	BlockOrigins       []string `mapstructure:"block_origins" json:"block_origins"`
}

func Default() *Config {
	return &Config{
		Lang:    constants.LangCN,
		Consent: ConsentAllow,
	}
}

// Load reads cfgFile, or arbiter.yaml from the working directory or the user
// config dir when cfgFile is empty. Environment variables prefixed with
// CAPTURE_ARBITER_ override file values. A missing default file is not an error.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetDefault("lang", cfg.Lang)
	v.SetDefault("consent", cfg.Consent)
	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	for _, key := range []string{"catalog_file", "default_audio_device", "default_video_device"} {
		v.SetDefault(key, "")
	}
	for _, key := range []string{"debug", "hardware", "watch"} {
		v.SetDefault(key, false)
	}
	v.SetDefault("allow_origins", []string{})
	v.SetDefault("block_origins", []string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("arbiter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "capture-arbiter"))
		}
	}

	v.SetEnvPrefix("CAPTURE_ARBITER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Lang = strings.ToLower(c.Lang)
	if c.Lang != constants.LangCN && c.Lang != constants.LangEN {
		return fmt.Errorf("invalid language option: %s. Must be 'cn' or 'en'", c.Lang)
	}
	switch c.Consent {
	case ConsentPrompt, ConsentAllow, ConsentDeny:
	default:
		return fmt.Errorf("invalid consent mode: %s. Must be 'prompt', 'allow' or 'deny'", c.Consent)
	}
	if c.Watch && c.CatalogFile == "" {
		return fmt.Errorf("watch requires a catalog file")
	}
	return nil
}
