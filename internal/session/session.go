// Package session supplies the opaque user identifier every store path is
// keyed under. Identities are anonymous: a generated id persisted in the
// OS keyring, with a plain file under the config directory as fallback for
// systems without one.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"

	"github.com/sgoyal/zindagi/internal/logger"
)

const (
	keyringService = "zindagi"
	keyringUser    = "identity"
	identityFile   = "identity"
)

// ErrNoSession is returned when no identity has been established yet.
var ErrNoSession = errors.New("no active session")

type Manager struct {
	configDir string
}

func NewManager(configDir string) *Manager {
	return &Manager{configDir: configDir}
}

// CurrentUserID returns the stored identity, or ErrNoSession.
func (m *Manager) CurrentUserID() (string, error) {
	id, err := keyring.Get(keyringService, keyringUser)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && err != keyring.ErrNotFound {
		logger.Debug("keyring unavailable, checking identity file", "error", err)
	}

	data, err := os.ReadFile(m.identityPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read identity file: %w", err)
	}

	id = strings.TrimSpace(string(data))
	if id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// SignInAnonymously returns the existing identity if there is one, and
// otherwise generates and persists a fresh anonymous id.
func (m *Manager) SignInAnonymously() (string, error) {
	if id, err := m.CurrentUserID(); err == nil {
		return id, nil
	} else if !errors.Is(err, ErrNoSession) {
		return "", err
	}

	id := uuid.NewString()

	if err := keyring.Set(keyringService, keyringUser, id); err == nil {
		logger.Debug("anonymous identity stored in keyring")
		return id, nil
	} else {
		logger.Debug("keyring store failed, falling back to identity file", "error", err)
	}

	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.identityPath(), []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write identity file: %w", err)
	}

	return id, nil
}

// SignOut discards the stored identity. The next sign-in generates a new
// anonymous id.
func (m *Manager) SignOut() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil && err != keyring.ErrNotFound {
		logger.Debug("keyring delete failed", "error", err)
	}

	if err := os.Remove(m.identityPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove identity file: %w", err)
	}
	return nil
}

func (m *Manager) identityPath() string {
	return filepath.Join(m.configDir, identityFile)
}
