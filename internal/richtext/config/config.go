// Конфигурация утилиты richtext из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения по тегам struct.
//   - Значения по умолчанию для незаданных параметров.
//   - Валидация значений через go-playground/validator.
package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/go-playground/validator"
)

// Formats - поддерживаемые форматы вывода.
var Formats = []string{"html", "markdown", "text", "json", "editor"}

const (
	DefaultFormat        = "html"
	DefaultExcerptLength = 200
)

type Config struct {
	Format        string `env:"RICHTEXT_FORMAT" validate:"outputFormat"`
	HTMLSanitize  bool   `env:"RICHTEXT_HTML_SANITIZE"`
	HTMLMinify    bool   `env:"RICHTEXT_HTML_MINIFY"`
	ExcerptLength int    `env:"RICHTEXT_EXCERPT_LENGTH" validate:"min=1,max=100000"`
	Trace         bool   `env:"RICHTEXT_TRACE"`
}

// ReadConfig загружает конфигурацию из переменных окружения, подставляет значения по умолчанию и проверяет результат.
func ReadConfig() (*Config, error) {
	config := &Config{}

	envConfig("env", config)

	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.ExcerptLength == 0 {
		config.ExcerptLength = DefaultExcerptLength
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет значения конфигурации.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("outputFormat", outputFormatValidator); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func outputFormatValidator(fl validator.FieldLevel) bool {
	return slices.Contains(Formats, fl.Field().String())
}

// Присваивает полям в переданной структуре значения переменных. Название переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if fEnvTag == "" || !Exist(fEnvTag) {
			continue
		}

		value := GetEnv(fEnvTag)
		if value == "" {
			continue
		}

		slog.Debug("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", value),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(value)
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}
