package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lysyi3m/feed-builder/app/cfg"
	"github.com/lysyi3m/feed-builder/app/config"
	"github.com/lysyi3m/feed-builder/app/feed"
	"github.com/lysyi3m/feed-builder/app/logger"
	"go.uber.org/zap"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	log, err := logger.New(logger.Config{Level: appCfg.LogLevel, File: appCfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(2)
	}
	defer log.Close()

	if err := run(appCfg, log.Logger, os.Stdout); err != nil {
		log.Error("Feed build failed", zap.Error(err))
		log.Close()
		os.Exit(1)
	}
}

// run builds the feed described by appCfg and writes the requested formats.
func run(appCfg *cfg.Cfg, log *zap.Logger, stdout io.Writer) error {
	log.Info("Building feed",
		zap.String("input", appCfg.Input),
		zap.String("format", appCfg.Format),
		zap.String("version", appCfg.Version))

	docs, err := config.NewLoader(log).Load(appCfg.Defaults, appCfg.Input)
	if err != nil {
		return err
	}

	f := docs.Feed()
	if f.Generator == "" {
		f.Generator = "feedbuild/" + appCfg.Version
	}

	builder := feed.NewBuilder(f,
		feed.WithLocation(appCfg.Location),
		feed.WithCanonicalizer(feed.NewURLCanonicalizer(appCfg.BaseURL)),
		feed.WithLogger(log))

	strict := !appCfg.Lax

	if appCfg.WantsAtom() {
		doc, err := builder.Atom(strict)
		if err != nil {
			return fmt.Errorf("failed to render Atom: %w", err)
		}
		if err := writeOutput(log, "atom", appCfg.AtomOut, doc, stdout); err != nil {
			return err
		}
	}

	if appCfg.WantsRSS() {
		doc, err := builder.RSS(strict)
		if err != nil {
			return fmt.Errorf("failed to render RSS: %w", err)
		}
		if err := writeOutput(log, "rss", appCfg.RSSOut, doc, stdout); err != nil {
			return err
		}
	}

	return nil
}

// writeOutput writes doc to path, or to stdout when path is empty. An empty
// doc comes from a lax render of an invalid feed and is not written.
func writeOutput(log *zap.Logger, format, path, doc string, stdout io.Writer) error {
	if doc == "" {
		log.Warn("Feed is invalid, nothing written", zap.String("format", format))
		return nil
	}

	if path == "" {
		if _, err := io.WriteString(stdout, doc); err != nil {
			return fmt.Errorf("failed to write %s to stdout: %w", format, err)
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info("Feed written", zap.String("format", format), zap.String("path", path), zap.Int("bytes", len(doc)))
	return nil
}
