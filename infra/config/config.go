package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	APIURL         string // e.g. "https://api.9gag.com"
	CommentURL     string // e.g. "https://comment-cdn.9gag.com"
	CommentAppID   string
	PageSize       int // Comments requested per page
	CommentLevel   int // Reply depth expanded inline by the server
	ProxyURL       string
	Fingerprint    bool
	RequestTimeout time.Duration
	SessionPath    string // Cached guest session
	UIStatePath    string
	LogPath        string
	Debug          bool
}

// Load reads an optional .env file and then environment variables.
//
//	GAGBOOK_API_URL          API host (default: https://api.9gag.com)
//	GAGBOOK_COMMENT_URL      comment host (default: https://comment-cdn.9gag.com)
//	GAGBOOK_COMMENT_APP_ID   comment CDN app id
//	GAGBOOK_PAGE_SIZE        comments per page (default: 10)
//	GAGBOOK_COMMENT_LEVEL    inline reply depth (default: 2)
//	GAGBOOK_PROXY            http(s):// or socks5:// proxy
//	GAGBOOK_FINGERPRINT      randomize the TLS ClientHello (default: false)
//	GAGBOOK_REQUEST_TIMEOUT  per request timeout (default: 30s)
//	GAGBOOK_CONFIG_DIR       session and UI state directory (default: ~/.config/gagbook)
//	GAGBOOK_LOG              log file (default: ~/.cache/gagbook/gagbook.log)
//	GAGBOOK_DEBUG            debug logging (default: false)
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	apiURL, err := httpsURL("GAGBOOK_API_URL", "https://api.9gag.com")
	if err != nil {
		return Config{}, err
	}
	commentURL, err := httpsURL("GAGBOOK_COMMENT_URL", "https://comment-cdn.9gag.com")
	if err != nil {
		return Config{}, err
	}

	pageSize := getEnvInt("GAGBOOK_PAGE_SIZE", 10)
	if pageSize <= 0 {
		return Config{}, fmt.Errorf("invalid GAGBOOK_PAGE_SIZE: must be positive")
	}
	level := getEnvInt("GAGBOOK_COMMENT_LEVEL", 2)
	if level <= 0 {
		return Config{}, fmt.Errorf("invalid GAGBOOK_COMMENT_LEVEL: must be positive")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	configDir := getEnv("GAGBOOK_CONFIG_DIR", filepath.Join(home, ".config", "gagbook"))

	return Config{
		APIURL:         apiURL,
		CommentURL:     commentURL,
		CommentAppID:   getEnv("GAGBOOK_COMMENT_APP_ID", ""),
		PageSize:       pageSize,
		CommentLevel:   level,
		ProxyURL:       strings.TrimSpace(os.Getenv("GAGBOOK_PROXY")),
		Fingerprint:    getEnvBool("GAGBOOK_FINGERPRINT", false),
		RequestTimeout: getEnvDuration("GAGBOOK_REQUEST_TIMEOUT", 30*time.Second),
		SessionPath:    filepath.Join(configDir, "session.json"),
		UIStatePath:    filepath.Join(configDir, "ui_state.json"),
		LogPath:        getEnv("GAGBOOK_LOG", filepath.Join(home, ".cache", "gagbook", "gagbook.log")),
		Debug:          getEnvBool("GAGBOOK_DEBUG", false),
	}, nil
}

func httpsURL(key, def string) (string, error) {
	raw := getEnv(key, def)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid %s: must be an absolute URL", key)
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid %s: only https is allowed", key)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
