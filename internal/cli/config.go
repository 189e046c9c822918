package cli

import (
	"io"
	"log/slog"
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BUNNYHIT_SERVER", "http://localhost:8080"),
		Output:    "text",
		Verbose:   false,
	}
}

// Logger returns a logger honoring the verbose flag. Non-verbose runs keep
// engine logs out of the interactive terminal output.
func (c *Config) Logger() *slog.Logger {
	if c.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
