package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// ExportDir receives finished audio files when features.move_files is set.
	ExportDir string `toml:"export_dir" yaml:"export_dir"`

	// WorkDir is where downloads land before they are processed.
	WorkDir string `toml:"work_dir" yaml:"work_dir"`

	// LockDir holds per-file embed locks. Empty means the system temp dir.
	LockDir string `toml:"lock_dir" yaml:"lock_dir"`
}

// Features toggles individual pipeline steps.
type Features struct {
	EmbedCover       bool `toml:"embed_cover" yaml:"embed_cover"`
	EmbedLyrics      bool `toml:"embed_lyrics" yaml:"embed_lyrics"`
	ConvertThumbnail bool `toml:"convert_thumbnail" yaml:"convert_thumbnail"`
	MoveFiles        bool `toml:"move_files" yaml:"move_files"`
	Cleanup          bool `toml:"cleanup" yaml:"cleanup"`
	WriteLRC         bool `toml:"write_lrc" yaml:"write_lrc"`
}

// Download configures the yt-dlp collaborator.
type Download struct {
	Format         string   `toml:"format" yaml:"format"`
	Quality        string   `toml:"quality" yaml:"quality"`
	SubtitleLangs  []string `toml:"subtitle_langs" yaml:"subtitle_langs"`
	SubtitleFormat string   `toml:"subtitle_format" yaml:"subtitle_format"`
	SkipSubtitles  bool     `toml:"skip_subtitles" yaml:"skip_subtitles"`
	Binary         string   `toml:"binary" yaml:"binary"`
	AutoInstall    bool     `toml:"auto_install" yaml:"auto_install"`
}

// Logging configures the slog handler built by internal/logging.
type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Config is the full lyricsync configuration.
type Config struct {
	Paths    Paths    `toml:"paths" yaml:"paths"`
	Features Features `toml:"features" yaml:"features"`
	Download Download `toml:"download" yaml:"download"`
	Logging  Logging  `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the expanded default configuration file path.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyricsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second and third
// results report the resolved path and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolvedPath, data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	for _, name := range []string{"lyricsync.toml", "lyricsync.yaml", "lyricsync.yml"} {
		projectPath, err := filepath.Abs(name)
		if err != nil {
			return "", false, err
		}
		if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
			return projectPath, true, nil
		}
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir}
	if c.Features.MoveFiles {
		dirs = append(dirs, c.Paths.ExportDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath expands "~" and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
