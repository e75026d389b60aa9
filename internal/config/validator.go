package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the Config structure.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	// Register custom validation for directory path existence
	_ = validate.RegisterValidation("dirpath", func(fl validator.FieldLevel) bool {
		dirPath := fl.Field().String()
		if dirPath == "" {
			return false
		}
		info, err := os.Stat(dirPath)
		if err != nil {
			return false
		}
		return info.IsDir()
	})

	// Register custom validation for regular expression syntax
	_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		pattern := fl.Field().String()
		if pattern == "" {
			return true
		}
		_, err := regexp.Compile(pattern)
		return err == nil
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// formatValidationErrors converts validator errors into a readable message.
func formatValidationErrors(errs validator.ValidationErrors) error {
	var messages []string
	for _, fieldErr := range errs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation '%s' (value: '%v')",
			fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value(),
		))
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
}
