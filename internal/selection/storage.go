package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BodyDocument is an in-memory Document.
type BodyDocument struct {
	class string
}

// NewBodyDocument creates a document whose body starts with class.
func NewBodyDocument(class string) *BodyDocument {
	return &BodyDocument{class: class}
}

// BodyClass returns the current body class attribute.
func (d *BodyDocument) BodyClass() string { return d.class }

// SetBodyClass replaces the body class attribute.
func (d *BodyDocument) SetBodyClass(class string) { d.class = class }

// MemoryStorage is a Storage held in memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStorage persists values in a small JSON state file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage backed by path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStatePath returns the state file location, honouring XDG_STATE_HOME.
func DefaultStatePath() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "themeregistry", "state.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "state", "themeregistry", "state.json"), nil
}

// Path returns the backing file.
func (f *FileStorage) Path() string { return f.path }

// Get implements Storage. A missing file is an empty store.
func (f *FileStorage) Get(key string) (string, bool, error) {
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Storage.
func (f *FileStorage) Set(key, value string) error {
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(f.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (f *FileStorage) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", f.path, err)
	}
	return values, nil
}

// CookieStorage persists values as cookies on an HTTP exchange.
type CookieStorage struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration
	set    map[string]string
}

// NewCookieStorage creates a CookieStorage for one request/response pair.
func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w, maxAge: 365 * 24 * time.Hour, set: make(map[string]string)}
}

// Get implements Storage. Values set during this exchange take precedence.
func (c *CookieStorage) Get(key string) (string, bool, error) {
	if v, ok := c.set[key]; ok {
		return v, true, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", false, nil
		}
		return "", false, err
	}
	return cookie.Value, true, nil
}

// Set implements Storage.
func (c *CookieStorage) Set(key, value string) error {
	cookie := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if err := cookie.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}
	http.SetCookie(c.w, cookie)
	c.set[key] = value
	return nil
}
