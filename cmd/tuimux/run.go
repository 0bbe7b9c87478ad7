package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/input"
	"github.com/Gaurav-Gosain/tuimux/internal/logging"
	"github.com/Gaurav-Gosain/tuimux/pkg/tuimux"
)

func runLocal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tuimux must be run in a terminal")
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		Shell:           shell,
		ScrollbackLines: scrollbackLines,
		BorderStyle:     borderStyle,
		ThemeName:       themeName,
		NoHeader:        noHeader,
		Debug:           debugMode,
	}, userConfig)

	logger, err := logging.Open(config.LogLevel)
	if err != nil {
		log.Warn("logging to memory only", "err", err)
		if logger, err = logging.New(nil, config.LogLevel); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Close() }()
	log.SetDefault(logger.Logger)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Warn("failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	app.SetInputHandler(input.HandleInput)

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting", "version", version, "config", configPath, "shell", config.PreferredShell)
	}

	mux := app.New(app.OptionsFromConfig(logger))

	p := tea.NewProgram(mux, append(tuimux.ProgramOptions(), tea.WithoutSignalHandler())...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	_, err = p.Run()
	mux.Quit()
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
