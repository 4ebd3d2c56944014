// Package config loads server settings from an optional JSON file and
// the environment.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds everything the server needs to run. Every field has a
// default, so a bare start with no config file and no environment works.
type Settings struct {
	ListenAddr string `json:"listen_addr" env:"JUKEBOX_ADDR" env-default:":1809"`

	MusicDir  string `json:"music_dir" env:"JUKEBOX_MUSIC_DIR" env-default:"music"`
	ImageDir  string `json:"image_dir" env:"JUKEBOX_IMAGE_DIR" env-default:"img"`
	TempDir   string `json:"temp_dir" env:"JUKEBOX_TEMP_DIR" env-default:"temp"`
	PublicDir string `json:"public_dir" env:"JUKEBOX_PUBLIC_DIR" env-default:"public"`

	// ToolBinary is the downloader executable, resolved through PATH
	// unless given as an absolute path.
	ToolBinary string `json:"tool_binary" env:"JUKEBOX_TOOL" env-default:"yt-dlp"`

	HistorySize int `json:"history_size" env:"JUKEBOX_HISTORY_SIZE" env-default:"10"`
	SearchLimit int `json:"search_limit" env:"JUKEBOX_SEARCH_LIMIT" env-default:"20"`

	// TempSweepInterval is how often the temporary download directory
	// is emptied.
	TempSweepInterval time.Duration `json:"temp_sweep_interval" env:"JUKEBOX_TEMP_SWEEP_INTERVAL" env-default:"1h"`

	LogLevel string `json:"log_level" env:"JUKEBOX_LOG_LEVEL" env-default:"info"`
}

// Load reads settings from path, with environment variables taking
// precedence over the file. An empty path reads the environment alone.
func Load(path string) (*Settings, error) {
	var settings Settings
	if path == "" {
		if err := cleanenv.ReadEnv(&settings); err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err := cleanenv.ReadConfig(path, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
