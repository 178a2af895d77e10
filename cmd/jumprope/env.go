package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/platform/audio"
	"github.com/vovakirdan/jumprope/internal/registry"
	"github.com/vovakirdan/jumprope/internal/storage"
)

// env holds the process-wide collaborators shared by every command.
type env struct {
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
	prefs   core.Prefs
	results core.ResultSink
	speaker *audio.Speaker
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger writes to the log file; the terminal belongs to the game.
func newLogger() (*log.Logger, *os.File) {
	if flagLogFile == "" {
		return log.New(io.Discard), nil
	}
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumprope",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f
}

// openEnv sets up logging, storage and audio. A missing database or audio
// device degrades to in-memory prefs or silence.
func openEnv(withAudio bool) *env {
	e := &env{}
	e.logger, e.logFile = newLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		e.logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		e.prefs = storage.NewMemPrefs()
	} else {
		e.store = store
		e.prefs = storage.NewPrefs(store, "jumprope", e.logger)
		e.results = store
	}

	if withAudio && !flagMute {
		volume := 0.5
		if cfg, _, err := config.LoadJumpRope(flagConfig); err == nil {
			volume = cfg.Sound.Volume
		}
		sp := audio.NewSpeaker(volume)
		if err := sp.Init(); err != nil {
			e.logger.Warn("audio disabled", "error", err)
		} else {
			e.speaker = sp
		}
	}
	return e
}

// audioOut returns the speaker as a port, or nil when there is none.
func (e *env) audioOut() core.AudioOut {
	if e.speaker == nil {
		return nil
	}
	return e.speaker
}

func (e *env) close() {
	if e.speaker != nil {
		e.speaker.Close()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing scores database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func settings() registry.Settings {
	return registry.Settings{ConfigPath: flagConfig, Difficulty: flagDifficulty, Strict: flagStrict}
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
