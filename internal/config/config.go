package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsFileName = ".pibot_login.json"

// Config holds all configuration for one run of the bot.
type Config struct {
	// Username and Password authenticate with the PDS. Use an App Password.
	Username string
	Password string

	// WatchDID is the DID whose mentions trigger replies in streaming mode.
	WatchDID string

	// PDS is the AT Protocol service URL.
	PDS string

	// JetstreamURL is the Jetstream WebSocket endpoint.
	JetstreamURL string

	// SearchURL is the Pi search query endpoint. Empty means the public one.
	SearchURL string

	// Trigger is the token that marks a mentioning post as a search request.
	Trigger string

	// ZstdDictPath enables compressed Jetstream frames when set; it points
	// at the Jetstream zstd dictionary file.
	ZstdDictPath string
}

// credentialsFile is the on-disk shape of ~/.pibot_login.json.
type credentialsFile struct {
	Username string `json:"username"`
	Password string `json:"password"`
	WatchDID string `json:"watch_did"`
}

// Load reads credentials from the file in the user's home directory and
// applies environment variable overrides for everything else. WatchDID may
// be empty; commands that need it validate separately.
func Load() (*Config, error) {
	path := os.Getenv("PIBOT_CREDENTIALS")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, credentialsFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("credentials file %s must set username and password", path)
	}

	jetstreamURL := os.Getenv("PIBOT_JETSTREAM_URL")
	if jetstreamURL == "" {
		jetstreamURL = "wss://jetstream2.us-east.bsky.network/subscribe"
	}

	trigger := os.Getenv("PIBOT_TRIGGER")
	if trigger == "" {
		trigger = "@pisearch"
	}

	return &Config{
		Username:     creds.Username,
		Password:     creds.Password,
		WatchDID:     creds.WatchDID,
		PDS:          os.Getenv("PIBOT_PDS"),
		JetstreamURL: jetstreamURL,
		SearchURL:    os.Getenv("PIBOT_SEARCH_URL"),
		Trigger:      trigger,
		ZstdDictPath: os.Getenv("PIBOT_ZSTD_DICT"),
	}, nil
}
