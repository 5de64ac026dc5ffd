package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logger      LoggerConfig
	Sources     []SourceConfig
	Output      OutputConfig
	Extractor   ExtractorConfig
	XML         XMLConfig
	Spreadsheet SpreadsheetConfig
}

type LoggerConfig struct {
	Env   string `mapstructure:"env"`
	Level string `mapstructure:"level"`
}

// SourceConfig is one test of the resulting database: a display name and the file its questions come from.
type SourceConfig struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

type OutputConfig struct {
	ScriptPath   string `mapstructure:"script_path"`
	DatabasePath string `mapstructure:"database_path"`
}

type ExtractorConfig struct {
	Tool         string `mapstructure:"tool"`
	ResourcePath string `mapstructure:"resource_path"`
	OutputSuffix string `mapstructure:"output_suffix"`
	Workers      int    `mapstructure:"workers"`
}

type XMLConfig struct {
	ArrayName      string `mapstructure:"array_name"`
	RecordWidth    int    `mapstructure:"record_width"`
	QuestionOffset int    `mapstructure:"question_offset"`
	AnswerOffset   int    `mapstructure:"answer_offset"`
}

type SpreadsheetConfig struct {
	QuestionHeader string `mapstructure:"question_header"`
	AnswerHeader   string `mapstructure:"answer_header"`
	AnswerColumn   int    `mapstructure:"answer_column"`
}

// DefaultTool returns the apktool launcher shipped next to the binary for the current OS.
func DefaultTool() string {
	if runtime.GOOS == "windows" {
		return `.\tools\apktool.bat`
	}
	return "./tools/apktool"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("output.script_path", "tests.sql")
	v.SetDefault("output.database_path", "tests.sqlite")

	v.SetDefault("extractor.tool", DefaultTool())
	v.SetDefault("extractor.resource_path", filepath.Join("res", "values", "arrays.xml"))
	v.SetDefault("extractor.output_suffix", ".arrays.xml")
	v.SetDefault("extractor.workers", 1)

	v.SetDefault("xml.array_name", "test")
	v.SetDefault("xml.record_width", 7)
	v.SetDefault("xml.question_offset", 0)
	v.SetDefault("xml.answer_offset", 2)

	v.SetDefault("spreadsheet.question_header", "Вопрос")
	v.SetDefault("spreadsheet.answer_header", "1")
	v.SetDefault("spreadsheet.answer_column", 1)
}

// LoadConfig reads the YAML configuration. An empty path means config.yaml in . or ./configs.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// MAKEDB_OUTPUT_DATABASE_PATH overrides output.database_path, etc.
	v.SetEnvPrefix("MAKEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Output: OutputConfig{
			ScriptPath:   v.GetString("output.script_path"),
			DatabasePath: v.GetString("output.database_path"),
		},
		Extractor: ExtractorConfig{
			Tool:         v.GetString("extractor.tool"),
			ResourcePath: v.GetString("extractor.resource_path"),
			OutputSuffix: v.GetString("extractor.output_suffix"),
			Workers:      v.GetInt("extractor.workers"),
		},
		XML: XMLConfig{
			ArrayName:      v.GetString("xml.array_name"),
			RecordWidth:    v.GetInt("xml.record_width"),
			QuestionOffset: v.GetInt("xml.question_offset"),
			AnswerOffset:   v.GetInt("xml.answer_offset"),
		},
		Spreadsheet: SpreadsheetConfig{
			QuestionHeader: v.GetString("spreadsheet.question_header"),
			AnswerHeader:   v.GetString("spreadsheet.answer_header"),
			AnswerColumn:   v.GetInt("spreadsheet.answer_column"),
		},
	}

	if err := v.UnmarshalKey("sources", &config.Sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	for i, s := range c.Sources {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("source #%d: name is required", i)
		}
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("source %q: path is required", s.Name)
		}
	}
	if c.Output.ScriptPath == "" || c.Output.DatabasePath == "" {
		return fmt.Errorf("output.script_path and output.database_path are required")
	}
	if c.Extractor.Workers < 1 {
		return fmt.Errorf("extractor.workers must be at least 1, got %d", c.Extractor.Workers)
	}
	if c.XML.RecordWidth < 1 {
		return fmt.Errorf("xml.record_width must be positive, got %d", c.XML.RecordWidth)
	}
	for _, off := range []int{c.XML.QuestionOffset, c.XML.AnswerOffset} {
		if off < 0 || off >= c.XML.RecordWidth {
			return fmt.Errorf("xml offset %d is outside a record of %d items", off, c.XML.RecordWidth)
		}
	}
	if c.Spreadsheet.QuestionHeader == "" {
		return fmt.Errorf("spreadsheet.question_header is required")
	}
	if c.Spreadsheet.AnswerColumn < 0 {
		return fmt.Errorf("spreadsheet.answer_column must not be negative")
	}
	return nil
}
