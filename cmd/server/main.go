// shadowcast-server serves a private game to every SSH client. Build:
//
//	go build -o shadowcast-server ./cmd/server
//
// Usage:
//
//	./shadowcast-server [-port 2222] [-key server_host_key] [-radius 8] [-levels 5]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"shadowcast-rogue/internal/game"
	"shadowcast-rogue/internal/logger"
	internalssh "shadowcast-rogue/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	cfg := game.DefaultConfig()
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.IntVar(&cfg.ViewRadius, "radius", cfg.ViewRadius, "player view radius")
	flag.IntVar(&cfg.Levels, "levels", cfg.Levels, "number of levels")
	flag.IntVar(&cfg.StalkerCount, "stalkers", cfg.StalkerCount, "stalkers on the first level")
	flag.BoolVar(&cfg.SaveRunLog, "runlog", false, "append finished runs to the run log")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Log.WithField("component", "ssh_server")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	signer, err := loadOrCreateHostKey(*keyFile, log)
	if err != nil {
		log.WithError(err).Fatal("host key")
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, log)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	log.WithField("addr", srv.Addr).Info("listening")
	log.Fatal(srv.ListenAndServe())
}

// allowedTerms lists the TERM values accepted from clients. Anything else
// falls back to xterm-256color; the value ends up in the process
// environment and selects a terminfo entry.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// sessionTerm picks the terminal type from the session environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

// sanitizeName strips control characters from a client-supplied user name
// and truncates it to 16 bytes without splitting a rune, so it is safe to
// put in log lines.
func sanitizeName(name string) string {
	const maxBytes = 16
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if sb.Len()+len(string(r)) > maxBytes {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// termMu serialises os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession runs one game for one connection. It blocks until the game
// ends so the SSH session stays open.
func handleSession(s gossh.Session, cfg game.Config, log *logrus.Entry) {
	log = log.WithFields(logrus.Fields{
		"user":   sanitizeName(s.User()),
		"remote": s.RemoteAddr().String(),
	})

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", sessionTerm(s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		log.WithError(err).Warn("terminal setup failed")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Warn("screen init failed")
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}

	g, err := game.NewWithScreen(screen, cfg)
	if err != nil {
		screen.Fini()
		log.WithError(err).Error("game setup failed")
		return
	}
	log.Info("session started")
	g.Run()
	log.Info("session ended")
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *logrus.Entry) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "shadowcast server")
	if err != nil {
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		log.WithError(err).Warn("could not persist host key")
	}
	return signer, nil
}
