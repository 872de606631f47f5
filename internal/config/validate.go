package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	validFormats         = []string{"m4a", "mp4", "mp3", "flac"}
	validQualities       = []string{"low", "medium", "high", "lossless"}
	validSubtitleFormats = []string{"vtt"}
	validLogFormats      = []string{"console", "json", "auto"}
	validLogLevels       = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Features.MoveFiles && c.Paths.ExportDir == "" {
		return errors.New("paths.export_dir must be set when features.move_files is true")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if !slices.Contains(validFormats, c.Download.Format) {
		return fmt.Errorf("download.format: unsupported value %q (want one of %v)", c.Download.Format, validFormats)
	}
	if !slices.Contains(validQualities, c.Download.Quality) {
		return fmt.Errorf("download.quality: unsupported value %q (want one of %v)", c.Download.Quality, validQualities)
	}
	if c.Download.SkipSubtitles {
		return nil
	}
	if len(c.Download.SubtitleLangs) == 0 {
		return errors.New("download.subtitle_langs must list at least one language unless download.skip_subtitles is true")
	}
	if !slices.Contains(validSubtitleFormats, c.Download.SubtitleFormat) {
		return fmt.Errorf("download.subtitle_format: unsupported value %q (only vtt can be converted to lyrics)", c.Download.SubtitleFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
