package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/deskos/deskos/internal/app"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/input"
	"github.com/deskos/deskos/internal/server"
	"github.com/deskos/deskos/internal/theme"
)

// filterMouseMotion drops idle mouse motion to keep the event loop cheap.
// Motion still flows during gestures and near the hover-reveal surfaces,
// which need enter and leave events to work.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}

	d, ok := model.(*app.Desktop)
	if !ok {
		return msg
	}

	if d.Gestures.Active() {
		return msg
	}
	if d.Config.Shell.DockAutoHide || d.State.StageManager {
		return msg
	}
	if d.InDockZone(motion.Mouse().Y) {
		return msg
	}

	return nil
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("Failed to load config, using defaults", "error", err)
	}
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}
	cfg.Apply()
	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		log.Warn("Failed to initialize theme", "theme", cfg.Appearance.Theme, "error", err)
	}
	return cfg
}

func runLocal() error {
	if debugMode {
		log.SetLevel(log.DebugLevel)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Warn("Failed to close CPU profile file", "error", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("deskos needs a terminal; use 'deskos ssh' to serve it remotely")
	}

	cfg := loadConfig()

	app.SetInputHandler(input.HandleInput)

	if debugMode {
		configPath, _ := config.Path()
		log.Debug("Configuration", "path", configPath)
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	desktop := app.NewDesktop(width, height, cfg, nil, nil)

	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	// Live config reload. The watcher dies with the program.
	watchDone := make(chan struct{})
	defer close(watchDone)
	if updates, err := config.Watch(watchDone); err != nil {
		log.Warn("Config watcher unavailable", "error", err)
	} else {
		go func() {
			for cfg := range updates {
				p.Send(app.ConfigReloadedMsg{Config: cfg})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	if debugMode {
		log.SetLevel(log.DebugLevel)
	}

	loadConfig()

	app.SetInputHandler(input.HandleInput)

	log.Info("Starting deskos SSH server", "host", sshHost, "port", sshPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Shutting down SSH server")
		cancel()
	}()

	if err := server.Start(ctx, &server.Config{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
	}); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
