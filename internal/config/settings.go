package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings keys
const (
	KeyFFmpegPath       = "ffmpeg_path"
	KeyFFprobePath      = "ffprobe_path"
	KeyYTDLPPath        = "ytdlp_path"
	KeyAutoInstall      = "auto_install"
	KeyPreferencesPath  = "preferences_path"
	KeyThumbnailTimeout = "thumbnail_timeout"
	KeyPlaylistTimeout  = "playlist_timeout"
	KeyIconPath         = "icon_path"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyLogOutput        = "log.output"
)

// Default values
const (
	DefaultFFmpegPath       = "ffmpeg"
	DefaultFFprobePath      = "ffprobe"
	DefaultThumbnailTimeout = 15 * time.Second
	DefaultPlaylistTimeout  = 60 * time.Second
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultLogOutput        = "stderr"
	SettingsFileName        = "settings"
	EnvPrefix               = "YTAUDIO"
)

// LogSettings configures the zap logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Settings holds application configuration that is not user preference state
type Settings struct {
	FFmpegPath       string        `mapstructure:"ffmpeg_path"`
	FFprobePath      string        `mapstructure:"ffprobe_path"`
	YTDLPPath        string        `mapstructure:"ytdlp_path"` // empty: look up on PATH
	AutoInstall      bool          `mapstructure:"auto_install"`
	PreferencesPath  string        `mapstructure:"preferences_path"`
	ThumbnailTimeout time.Duration `mapstructure:"thumbnail_timeout"`
	PlaylistTimeout  time.Duration `mapstructure:"playlist_timeout"`
	IconPath         string        `mapstructure:"icon_path"`
	Log              LogSettings   `mapstructure:"log"`
}

// LoadSettings reads settings from configPath, or from settings.yaml in the user
// config directory when configPath is empty. A missing file is not an error.
// Environment variables prefixed with YTAUDIO_ override both.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppDirName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath != "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	settings.PreferencesPath = expandPath(settings.PreferencesPath)
	settings.IconPath = expandPath(settings.IconPath)
	if settings.Log.Output != "stdout" && settings.Log.Output != "stderr" {
		settings.Log.Output = expandPath(settings.Log.Output)
	}
	if settings.ThumbnailTimeout < 0 {
		settings.ThumbnailTimeout = DefaultThumbnailTimeout
	}
	if settings.PlaylistTimeout <= 0 {
		settings.PlaylistTimeout = DefaultPlaylistTimeout
	}

	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyFFmpegPath, DefaultFFmpegPath)
	v.SetDefault(KeyFFprobePath, DefaultFFprobePath)
	v.SetDefault(KeyYTDLPPath, "")
	v.SetDefault(KeyAutoInstall, false)
	v.SetDefault(KeyPreferencesPath, DefaultPreferencesPath())
	v.SetDefault(KeyThumbnailTimeout, DefaultThumbnailTimeout)
	v.SetDefault(KeyPlaylistTimeout, DefaultPlaylistTimeout)
	v.SetDefault(KeyIconPath, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyLogOutput, DefaultLogOutput)
}

// expandPath expands environment variables and a leading ~ in path
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
