package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Documents
	Input    string `short:"i" long:"input" env:"FEED_INPUT" description:"YAML document describing the feed" required:"true"`
	Defaults string `long:"defaults" env:"FEED_DEFAULTS" default:"./config/feeds.yml" description:"YAML file with feed defaults (ignored when missing)"`

	// Output
	Format  string `short:"f" long:"format" env:"FEED_FORMAT" default:"both" choice:"atom" choice:"rss" choice:"both" description:"Output format"`
	AtomOut string `long:"atom-out" env:"FEED_ATOM_OUT" description:"Atom output file (default: stdout)"`
	RSSOut  string `long:"rss-out" env:"FEED_RSS_OUT" description:"RSS output file (default: stdout)"`
	Lax     bool   `long:"lax" env:"FEED_LAX" description:"Write nothing instead of failing when the feed is invalid"`

	// Rendering
	BaseURL  string `long:"base-url" env:"BASE_URL" description:"Base URL relative links resolve against (e.g., https://blog.example.com)"`
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for rendered dates (e.g., UTC, Europe/Berlin)"`

	// Logging
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
	LogFile  string `long:"log-file" env:"LOG_FILE" description:"Also write logs to this file (rotated)"`
}

// Load reads .env from the working directory, then parses flags and
// environment. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return parse(os.Args[1:], flags.Default)
}

func parse(args []string, options flags.Options) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, options)
	parser.Name = "feedbuild"

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Input:    raw.Input,
		Defaults: raw.Defaults,
		Format:   raw.Format,
		AtomOut:  raw.AtomOut,
		RSSOut:   raw.RSSOut,
		Lax:      raw.Lax,
		BaseURL:  raw.BaseURL,
		Timezone: raw.Timezone,
		LogLevel: raw.LogLevel,
		LogFile:  raw.LogFile,
		Version:  GetVersion(),
	}

	loc, err := applyTimezone(cfg.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid timezone '%s', using UTC: %v\n", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func applyTimezone(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}
