package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/chriserin/define/internal/wiki"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Extract  ExtractConfig  `yaml:"extract"`

	// Empty lists fall back to the built-in vocabulary.
	Languages     []string           `yaml:"languages"       env:"DEFINE_LANGUAGES"       env-separator:","`
	PartsOfSpeech []string           `yaml:"parts_of_speech" env:"DEFINE_PARTS_OF_SPEECH" env-separator:","`
	Templates     wiki.TemplateTable `yaml:"templates"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DEFINE_DB_PATH" env-default:"define.db"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"DEFINE_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DEFINE_LOG_FORMAT" env-default:"text"`
}

type ExtractConfig struct {
	Workers       int `yaml:"workers"        env:"DEFINE_WORKERS"        env-default:"1"`
	ProgressEvery int `yaml:"progress_every" env:"DEFINE_PROGRESS_EVERY" env-default:"1000000"`
}

// Load reads configuration from a YAML file, if path is non-empty, and the
// environment. Priority: ENV > YAML > defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Extract.Workers < 1 {
		errs = append(errs, fmt.Errorf("extract.workers must be at least 1, got %d", c.Extract.Workers))
	}
	if c.Extract.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("extract.progress_every must not be negative, got %d", c.Extract.ProgressEvery))
	}
	for id, tc := range c.Templates {
		if tc.Language == "" && tc.PartOfSpeech == "" && !tc.Gendered {
			errs = append(errs, fmt.Errorf("templates.%s sets nothing", id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Vocabulary builds the interpreter vocabulary: configured lists or the
// built-in ones, and the built-in template table overlaid with configured
// templates.
func (c *Config) Vocabulary() *wiki.Vocabulary {
	languages := c.Languages
	if len(languages) == 0 {
		languages = wiki.DefaultLanguages()
	}
	partsOfSpeech := c.PartsOfSpeech
	if len(partsOfSpeech) == 0 {
		partsOfSpeech = wiki.DefaultPartsOfSpeech()
	}
	return wiki.NewVocabulary(languages, partsOfSpeech, wiki.DefaultTemplates().Merge(c.Templates))
}
