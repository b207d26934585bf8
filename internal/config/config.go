// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Data       DataConfig       `mapstructure:"data"`
	Categories CategoriesConfig `mapstructure:"categories"`
	Search     SearchConfig     `mapstructure:"search"`
	Report     ReportConfig     `mapstructure:"report"`
	Store      StoreConfig      `mapstructure:"store"`
	Export     ExportConfig     `mapstructure:"export"`
}

type DataConfig struct {
	// Language is the L1 language name; its slug keys the data resources.
	Language       string `mapstructure:"language" validate:"required"`
	Directory      string `mapstructure:"directory"`
	RemoteBaseURL  string `mapstructure:"remote_base_url" validate:"omitempty,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
	AudioDirectory string `mapstructure:"audio_directory"`
}

type CategoriesConfig struct {
	// AudioThreshold is the audio-coverage fraction at which the audio
	// pseudo-category is suppressed.
	AudioThreshold float64 `mapstructure:"audio_threshold" validate:"gt=0,lte=1"`
	ForceAudio     bool    `mapstructure:"force_audio"`
}

type SearchConfig struct {
	MaxEditDistance int `mapstructure:"max_edit_distance" validate:"gte=0"`
}

type ReportConfig struct {
	AllowedOrigins    []string   `mapstructure:"allowed_origins" validate:"dive,origin"`
	MaintainerAddress string     `mapstructure:"maintainer_address" validate:"omitempty,email"`
	FromAddress       string     `mapstructure:"from_address" validate:"omitempty,email"`
	SMTP              SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	TemplateFile string `mapstructure:"template_file"`
	OutputDir    string `mapstructure:"output_dir"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/talkingdict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.cache_directory", filepath.Join("data", "cache"))
	v.SetDefault("data.audio_directory", filepath.Join("data", "audio"))
	v.SetDefault("categories.audio_threshold", 0.75)
	v.SetDefault("search.max_edit_distance", 2)
	v.SetDefault("report.smtp.host", "localhost")
	v.SetDefault("report.smtp.port", 25)
	v.SetDefault("store.path", filepath.Join("data", "talkingdict.db"))
	v.SetDefault("export.output_dir", "exports")

	// The SMTP password never comes from the config file.
	if err := v.BindEnv("report.smtp.password", "SMTP_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind SMTP_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("report.smtp.username", "SMTP_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind SMTP_USERNAME environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
