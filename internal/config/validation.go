package config

import (
	"time"

	"git.home.luguber.info/inful/doclinks/internal/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateExtensions(); err != nil {
		return err
	}
	if err := cv.validateModes(); err != nil {
		return err
	}
	return cv.validateWatch()
}

func (cv *configurationValidator) validateExtensions() error {
	if len(cv.config.SourceExtensions) == 0 {
		return errors.ValidationFailed("source_extensions", "at least one extension is required")
	}
	if len(cv.config.DocExtensions)+len(cv.config.ImageExtensions) == 0 {
		return errors.ValidationFailed("doc_extensions", "no probe extensions configured")
	}
	if cv.config.IndexName == "" {
		return errors.ValidationFailed("index_name", "must not be empty")
	}
	return nil
}

func (cv *configurationValidator) validateModes() error {
	switch cv.config.Extractor {
	case ExtractorPattern, ExtractorGoldmark:
	default:
		return errors.ValidationFailed("extractor", "unknown extractor "+string(cv.config.Extractor)+" (want pattern or goldmark)")
	}
	switch cv.config.Format {
	case FormatText, FormatJSON:
	default:
		return errors.ValidationFailed("format", "unknown format "+string(cv.config.Format)+" (want text or json)")
	}
	return nil
}

func (cv *configurationValidator) validateWatch() error {
	if _, err := time.ParseDuration(cv.config.Watch.Debounce); err != nil {
		return errors.ValidationFailed("watch.debounce", err.Error())
	}
	return nil
}
