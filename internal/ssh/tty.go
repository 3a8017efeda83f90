// Package ssh adapts SSH sessions to tcell so each client can drive its own
// game screen.
package ssh

import (
	"sync"

	"shadowcast-rogue/internal/logger"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
)

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window
	done    <-chan struct{}

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
}

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty.
// pty holds the initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    s.Context().Done(),
	}
}

// Read reads keyboard input from the session.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the session.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH session channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op; the channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the server handler owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH flushes writes immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers a callback invoked on every window change. The
// first call starts a goroutine that follows window changes until the
// session ends.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	first := t.cb == nil
	t.cb = cb
	t.mu.Unlock()

	if first {
		go t.watchResize()
	}
}

func (t *SessionTty) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()

			logger.Log.WithFields(logrus.Fields{
				"component": "ssh_tty",
				"width":     win.Width,
				"height":    win.Height,
			}).Debug("window resized")
			if cb != nil {
				cb()
			}
		}
	}
}
