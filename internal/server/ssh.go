// Package server exposes the desktop shell over SSH. Every connection gets
// its own desktop; nothing is shared between sessions.
package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/deskos/deskos/internal/app"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/input"
)

// Config holds the listen address and host key location for the SSH server.
type Config struct {
	Host    string
	Port    string
	KeyPath string
}

// Start runs the SSH server until the context is cancelled.
func Start(ctx context.Context, cfg *Config) error {
	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		hostKeyPath = filepath.Join(homeDir, ".ssh", "deskos_host_key")
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			// Reject connections without a PTY; the shell is useless over
			// a plain exec channel.
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	go func() {
		log.Info("Starting SSH server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			log.Error("SSH server error", "error", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down SSH server")
	return srv.Shutdown(ctx)
}

// teaHandler creates a fresh desktop for each SSH session.
func teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sshSession.Pty()
	if !active {
		return nil, nil
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warn("Failed to load config for SSH session, using defaults", "error", err)
	}
	cfg.Apply()

	app.SetInputHandler(input.HandleInput)

	desktop := app.NewDesktop(pty.Window.Width, pty.Window.Height, cfg, nil, nil)
	desktop.SSHSession = sshSession
	desktop.LogInfo("session started for %s", sshSession.User())

	return desktop, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		// The shell renders over the remote terminal, so the color profile
		// comes from the client's environment, not the server's.
		tea.WithColorProfile(colorprofile.Detect(sshSession, sshSession.Environ())),
	}
}
