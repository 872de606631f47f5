package config

const (
	defaultExportDir      = "~/Music/lyricsync"
	defaultWorkDir        = "~/.cache/lyricsync/work"
	defaultFormat         = "m4a"
	defaultQuality        = "medium"
	defaultSubtitleLang   = "en"
	defaultSubtitleFormat = "vtt"
	defaultYtDlpBinary    = "yt-dlp"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. Every feature
// is enabled, matching the behaviour of a plain "lyricsync fetch" run.
func Default() Config {
	return Config{
		Paths: Paths{
			ExportDir: defaultExportDir,
			WorkDir:   defaultWorkDir,
		},
		Features: Features{
			EmbedCover:       true,
			EmbedLyrics:      true,
			ConvertThumbnail: true,
			MoveFiles:        true,
			Cleanup:          true,
			WriteLRC:         true,
		},
		Download: Download{
			Format:         defaultFormat,
			Quality:        defaultQuality,
			SubtitleLangs:  []string{defaultSubtitleLang},
			SubtitleFormat: defaultSubtitleFormat,
			Binary:         defaultYtDlpBinary,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
