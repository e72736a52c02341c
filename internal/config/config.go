package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL  = "https://parcial2-back-jet.vercel.app/api"
	DefaultUser    = "anonimo"
	DefaultPort    = "8080"
	DefaultTimeout = 30 * time.Second
)

var ErrInvalidJournalDriver = errors.New("JOURNAL_DRIVER must be postgres, sqlite or empty")

// Settings holds everything read from the environment at startup.
type Settings struct {
	APIURL        string
	APITimeout    time.Duration
	UserName      string
	Port          string
	JournalDriver string
	DatabaseDSN   string
	LogLevel      string
	LogFormat     string
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		Logger.WithError(err).Warn("No se pudo leer el archivo .env")
	}

	s := &Settings{
		APIURL:        firstEnv(DefaultAPIURL, "QUIZ_API_URL", "NEXT_PUBLIC_API_URL"),
		APITimeout:    durationEnv("QUIZ_API_TIMEOUT", DefaultTimeout),
		UserName:      firstEnv(DefaultUser, "QUIZ_USER"),
		Port:          firstEnv(DefaultPort, "PORT"),
		JournalDriver: strings.ToLower(strings.TrimSpace(os.Getenv("JOURNAL_DRIVER"))),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		LogLevel:      firstEnv("info", "LOG_LEVEL"),
		LogFormat:     firstEnv("text", "LOG_FORMAT"),
	}
	s.APIURL = strings.TrimRight(s.APIURL, "/")

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	switch s.JournalDriver {
	case "", "postgres", "sqlite":
	default:
		return ErrInvalidJournalDriver
	}
	if s.JournalDriver != "" && s.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required when JOURNAL_DRIVER is set")
	}
	return nil
}

func firstEnv(fallback string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return fallback
}

// durationEnv accepts Go durations ("15s") or plain seconds ("15").
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	Logger.Warnf("Valor inválido para %s: %q, se usa %s", key, raw, fallback)
	return fallback
}
