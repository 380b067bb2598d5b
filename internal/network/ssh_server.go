// Package network serves the layout editor to remote terminals over SSH
package network

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/bnema/hyprmon/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"
)

// MonitorSource produces the monitor set a new session starts from.
// Every call must return a set the caller may mutate freely.
type MonitorSource func(ctx context.Context) ([]*display.Monitor, error)

// SSHOptions configures an SSHServer
type SSHOptions struct {
	Address            string
	HostKeyPath        string
	AuthorizedKeysPath string
	ConfigPath         string // monitors.conf edited by every session
	Editor             ui.EditorOptions
	Source             MonitorSource
}

// SSHServer runs one layout editor per SSH session
type SSHServer struct {
	opts      SSHOptions
	sshServer *ssh.Server

	// Serializes writes to ConfigPath across sessions
	saveMu sync.Mutex

	mu       sync.Mutex
	sessions map[string]string // sessionID -> remote addr

	// Receives the listener error when serving stops for any reason but Stop
	errc chan error

	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSSHServer creates a new SSH server
func NewSSHServer(opts SSHOptions) *SSHServer {
	return &SSHServer{
		opts:     opts,
		sessions: make(map[string]string),
		errc:     make(chan error, 1),
	}
}

// Start begins listening for SSH connections
func (s *SSHServer) Start(ctx context.Context) error {
	if s.opts.Source == nil {
		return errors.New("ssh server needs a monitor source")
	}

	hostKey, err := hyprconf.ExpandPath(s.opts.HostKeyPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(hostKey), 0700); err != nil {
		return fmt.Errorf("failed to create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(s.opts.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithPublicKeyAuth(s.publicKeyAuth),
		wish.WithMiddleware(
			bm.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.loggingMiddleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.sshServer = server

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		logger.Infof("SSH server listening on %s", s.opts.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Errorf("SSH server error: %v", err)
			s.errc <- fmt.Errorf("ssh server on %s: %w", s.opts.Address, err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop shuts down the SSH server and waits for the listener to exit
func (s *SSHServer) Stop() {
	s.stopOnce.Do(func() {
		if s.sshServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.sshServer.Shutdown(ctx)
		}
		s.wg.Wait()
	})
}

// Err delivers the error that made the listener exit. Nothing is sent
// after a clean Stop.
func (s *SSHServer) Err() <-chan error {
	return s.errc
}

// Wait blocks until the listener has exited
func (s *SSHServer) Wait() {
	s.wg.Wait()
}

// SessionCount returns the number of connected sessions
func (s *SSHServer) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// publicKeyAuth admits keys listed in the authorized_keys file
func (s *SSHServer) publicKeyAuth(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := gossh.FingerprintSHA256(key)
	logger.Infof("SSH authentication attempt addr=%s user=%s key=%s", ctx.RemoteAddr(), ctx.User(), fingerprint)

	if s.authorized(key) {
		logger.Infof("SSH key accepted key=%s", fingerprint)
		return true
	}
	logger.Infof("SSH key denied key=%s addr=%s", fingerprint, ctx.RemoteAddr())
	return false
}

// authorized re-reads the authorized_keys file so edits apply without a restart
func (s *SSHServer) authorized(key ssh.PublicKey) bool {
	keys, err := LoadAuthorizedKeys(s.opts.AuthorizedKeysPath)
	if err != nil {
		logger.Warnf("Cannot read authorized keys: %v", err)
		return false
	}
	for _, k := range keys {
		if ssh.KeysEqual(k, key) {
			return true
		}
	}
	return false
}

// LoadAuthorizedKeys parses an OpenSSH authorized_keys file.
// Lines that fail to parse are skipped.
func LoadAuthorizedKeys(path string) ([]ssh.PublicKey, error) {
	expanded, err := hyprconf.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", expanded, err)
	}

	var keys []ssh.PublicKey
	for len(content) > 0 {
		key, _, _, rest, err := gossh.ParseAuthorizedKey(content)
		if err != nil {
			// no key left in the remaining input
			break
		}
		keys = append(keys, key)
		content = rest
	}
	return keys, nil
}

// loggingMiddleware tracks sessions and logs their lifetime
func (s *SSHServer) loggingMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			id := sess.Context().SessionID()
			addr := sess.RemoteAddr().String()

			s.mu.Lock()
			s.sessions[id] = addr
			s.mu.Unlock()
			logger.Debugf("SSH session started: user=%s addr=%s", sess.User(), addr)

			h(sess)

			s.mu.Lock()
			delete(s.sessions, id)
			s.mu.Unlock()
			logger.Debugf("SSH session ended: addr=%s", addr)
		}
	}
}

// teaHandler builds the editor for one session
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	styles := ui.NewStyles(bm.MakeRenderer(sess))
	return s.newEditor(sess.Context(), &styles), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) newEditor(ctx context.Context, styles *ui.Styles) *ui.EditorModel {
	monitors, err := s.opts.Source(ctx)
	if err != nil {
		logger.Warnf("Monitor discovery failed for SSH session: %v", err)
		monitors = nil
	}

	opts := s.opts.Editor
	opts.ConfigPath = s.opts.ConfigPath
	opts.Save = s.save
	opts.Load = s.load
	opts.Styles = styles
	return ui.NewEditorModel(monitors, opts)
}

func (s *SSHServer) save(monitors []*display.Monitor) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return hyprconf.SaveFile(s.opts.ConfigPath, monitors)
}

func (s *SSHServer) load(monitors []*display.Monitor) (hyprconf.Report, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return hyprconf.LoadFile(s.opts.ConfigPath, monitors)
}
