package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Upper bound for loading a model at startup
const modelLoadTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration and model, then starts the selected surface.
func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	closeLog, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logrus.WithField("service", "funfact")

	ctx, cancel := context.WithTimeout(context.Background(), modelLoadTimeout)
	handle, err := OpenModel(ctx, cfg.APIKey, cfg.Models, log)
	cancel()
	if err != nil {
		return err
	}

	facts := NewFactGenerator(handle, log)

	if cfg.WebMode() {
		gin.SetMode(gin.ReleaseMode)
		log.WithField("addr", cfg.ListenAddr).Info("serving fun fact page")
		if err := SetupRouter(facts, facts.ModelName(), log).Run(cfg.ListenAddr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	p := tea.NewProgram(initialModel(facts, facts.ModelName()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}

// initLogging configures the global logrus logger. The terminal UI owns
// stdout, so in that mode logs go to the log file or nowhere.
func initLogging(cfg Config) (func(), error) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetLevel(cfg.LogLevel)

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logrus.SetOutput(f)
		return func() { f.Close() }, nil
	case cfg.WebMode():
		logrus.SetOutput(os.Stdout)
	default:
		logrus.SetOutput(io.Discard)
	}
	return func() {}, nil
}
