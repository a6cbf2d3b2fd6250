package selection

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/theme"
)

// StorageKey is the key the selected theme is persisted under.
const StorageKey = "selectedTheme"

// Document is the surface the active theme class is applied to.
type Document interface {
	BodyClass() string
	SetBodyClass(class string)
}

// Storage persists the selection between sessions.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store holds the active theme identifier. It is not safe for concurrent use;
// create one per request or session.
type Store struct {
	catalog Catalog
	doc     Document
	storage Storage
	logger  hclog.Logger
	active  string
}

// NewStore creates a Store. A nil doc makes the store inert: SetTheme and
// LoadTheme return without effect. A nil storage disables persistence.
func NewStore(catalog Catalog, doc Document, storage Storage, logger hclog.Logger) *Store {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		catalog: catalog,
		doc:     doc,
		storage: storage,
		logger:  logger.Named("selection"),
		active:  catalog.Default().ID,
	}
}

// Active returns the current theme identifier.
func (s *Store) Active() string {
	return s.active
}

// Catalog returns the known themes.
func (s *Store) Catalog() Catalog {
	return s.catalog
}

// SetTheme selects id, substituting the default for unknown ids. The body
// class is replaced with the theme class (empty for the default theme) and
// the choice is persisted. Persistence failures are logged, never returned.
func (s *Store) SetTheme(id string) {
	if s.doc == nil {
		return
	}

	if !s.catalog.Contains(id) {
		fallback := s.catalog.Default().ID
		s.logger.Warn("theme not found, falling back to default", "theme", id, "default", fallback)
		id = fallback
	}

	s.active = id
	s.doc.SetBodyClass(s.classFor(id))
	s.persist(id)
}

// LoadTheme restores the selection: a persisted id wins, then a theme class
// already on the document, then the default.
func (s *Store) LoadTheme() {
	if s.doc == nil {
		return
	}

	if s.storage != nil {
		saved, ok, err := s.storage.Get(StorageKey)
		if err != nil {
			s.logger.Warn("failed to load theme from storage", "error", err)
		} else if ok && saved != "" {
			s.SetTheme(saved)
			return
		}
	}

	if id, ok := themeFromClass(s.doc.BodyClass()); ok {
		s.SetTheme(id)
		return
	}

	s.active = s.catalog.Default().ID
}

// GetThemeInfo returns the record for id, or the default record.
func (s *Store) GetThemeInfo(id string) ThemeInfo {
	if info, ok := s.catalog.Lookup(id); ok {
		return info
	}
	return s.catalog.Default()
}

func (s *Store) classFor(id string) string {
	if id == s.catalog.Default().ID {
		return ""
	}
	return theme.ClassName(id)
}

func (s *Store) persist(id string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(StorageKey, id); err != nil {
		s.logger.Warn("failed to save theme to storage", "theme", id, "error", err)
	}
}

// themeFromClass extracts the id from the first theme-<id> class.
func themeFromClass(class string) (string, bool) {
	prefix := theme.ClassName("")
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, prefix) && len(c) > len(prefix) {
			return strings.TrimPrefix(c, prefix), true
		}
	}
	return "", false
}
