package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all receptionist configuration
type Config struct {
	Presenter      string // "terminal" or "websocket"
	Port           int
	AllowedOrigins []string
	MaxDisplays    int

	RedisURL      string
	RedisPassword string

	GeminiAPIKey string
	GeminiModel  string

	DatabaseURL       string // Postgres primary directory; empty means SQLite only
	SQLitePath        string
	AttendanceBackend string // "memory", "sqlite" or "redis"
	SiteCatalog       string
	AppointmentsFile  string

	WakeWord          string
	MinFaceConfidence float64
	HistorySize       int

	IdleTimeout      time.Duration
	ListenTimeout    time.Duration
	RetryTimeout     time.Duration
	FollowUpTimeout  time.Duration
	IdentifyTimeout  time.Duration
	KnowledgeTimeout time.Duration
	DirectoryTimeout time.Duration
	NotifyTimeout    time.Duration

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioPhoneNumber  string
	DefaultCountryCode string
}

// TwilioEnabled reports whether SMS credentials are present.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	config := &Config{
		Presenter:          "terminal",
		Port:               8080,
		AllowedOrigins:     []string{"*"},
		MaxDisplays:        8,
		RedisURL:           "",
		GeminiModel:        "gemini-2.5-flash",
		SQLitePath:         "frontdesk.db",
		AttendanceBackend:  "sqlite",
		WakeWord:           "hello receptionist",
		MinFaceConfidence:  0.6,
		HistorySize:        50,
		IdleTimeout:        60 * time.Second,
		ListenTimeout:      8 * time.Second,
		RetryTimeout:       16 * time.Second,
		FollowUpTimeout:    8 * time.Second,
		IdentifyTimeout:    5 * time.Second,
		KnowledgeTimeout:   15 * time.Second,
		DirectoryTimeout:   5 * time.Second,
		NotifyTimeout:      10 * time.Second,
		DefaultCountryCode: "+91",
	}

	// Optional: PRESENTER ("terminal" or "websocket")
	if presenter := os.Getenv("PRESENTER"); presenter != "" {
		switch presenter {
		case "terminal", "websocket":
			config.Presenter = presenter
		default:
			return nil, fmt.Errorf("invalid PRESENTER: must be 'terminal' or 'websocket'")
		}
	}

	var err error
	if config.Port, err = intVar("PORT", config.Port); err != nil {
		return nil, err
	}
	if config.MaxDisplays, err = intVar("MAX_DISPLAYS", config.MaxDisplays); err != nil {
		return nil, err
	}
	if config.HistorySize, err = intVar("HISTORY_SIZE", config.HistorySize); err != nil {
		return nil, err
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, o)
			}
		}
	}

	stringVar("REDIS_URL", &config.RedisURL)
	stringVar("REDIS_PASSWORD", &config.RedisPassword)
	stringVar("GEMINI_API_KEY", &config.GeminiAPIKey)
	stringVar("GEMINI_MODEL", &config.GeminiModel)
	stringVar("DATABASE_URL", &config.DatabaseURL)
	stringVar("SQLITE_PATH", &config.SQLitePath)
	stringVar("SITE_CATALOG", &config.SiteCatalog)
	stringVar("APPOINTMENTS_FILE", &config.AppointmentsFile)
	stringVar("WAKE_WORD", &config.WakeWord)
	stringVar("TWILIO_ACCOUNT_SID", &config.TwilioAccountSID)
	stringVar("TWILIO_AUTH_TOKEN", &config.TwilioAuthToken)
	stringVar("TWILIO_PHONE_NUMBER", &config.TwilioPhoneNumber)
	stringVar("DEFAULT_COUNTRY_CODE", &config.DefaultCountryCode)
	config.WakeWord = strings.ToLower(strings.TrimSpace(config.WakeWord))

	// Optional: ATTENDANCE_BACKEND ("memory", "sqlite" or "redis")
	if backend := os.Getenv("ATTENDANCE_BACKEND"); backend != "" {
		switch backend {
		case "memory", "sqlite", "redis":
			config.AttendanceBackend = backend
		default:
			return nil, fmt.Errorf("invalid ATTENDANCE_BACKEND: must be 'memory', 'sqlite' or 'redis'")
		}
	}
	if config.AttendanceBackend == "redis" && config.RedisURL == "" {
		return nil, fmt.Errorf("ATTENDANCE_BACKEND=redis requires REDIS_URL")
	}

	// Optional: MIN_FACE_CONFIDENCE (0..1)
	if conf := os.Getenv("MIN_FACE_CONFIDENCE"); conf != "" {
		c, err := strconv.ParseFloat(conf, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_FACE_CONFIDENCE: %w", err)
		}
		if c < 0 || c > 1 {
			return nil, fmt.Errorf("invalid MIN_FACE_CONFIDENCE: %v is outside 0..1", c)
		}
		config.MinFaceConfidence = c
	}

	timeouts := []struct {
		key string
		dst *time.Duration
	}{
		{"SESSION_TIMEOUT", &config.IdleTimeout},
		{"LISTEN_TIMEOUT", &config.ListenTimeout},
		{"LISTEN_RETRY_TIMEOUT", &config.RetryTimeout},
		{"FOLLOW_UP_TIMEOUT", &config.FollowUpTimeout},
		{"IDENTIFY_TIMEOUT", &config.IdentifyTimeout},
		{"KNOWLEDGE_TIMEOUT", &config.KnowledgeTimeout},
		{"DIRECTORY_TIMEOUT", &config.DirectoryTimeout},
		{"NOTIFY_TIMEOUT", &config.NotifyTimeout},
	}
	for _, t := range timeouts {
		if *t.dst, err = secondsVar(t.key, *t.dst); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func stringVar(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func intVar(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// secondsVar reads a duration in seconds. Fractions are allowed.
func secondsVar(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	s, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if s < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return time.Duration(s * float64(time.Second)), nil
}
