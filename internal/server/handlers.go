package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jmylchreest/themeregistry/internal/selection"
)

// errorPayload is the body of error responses.
type errorPayload struct {
	Message string `json:"message"`
}

// themeResponse describes the active selection.
type themeResponse struct {
	Theme  string              `json:"theme"`
	Info   selection.ThemeInfo `json:"info"`
	Themes selection.Catalog   `json:"themes,omitempty"`
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("item")

	data, err := s.Lookup(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorPayload{Message: notFoundMessage})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.manifest)
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	if s.css == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(s.css)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	store, _ := s.newStore(w, r)
	store.LoadTheme()
	writeJSON(w, http.StatusOK, themeResponse{
		Theme:  store.Active(),
		Info:   store.GetThemeInfo(store.Active()),
		Themes: store.Catalog(),
	})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	id, isJSON, err := readThemeID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: err.Error()})
		return
	}

	store, _ := s.newStore(w, r)
	store.SetTheme(id)

	if !isJSON {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{
		Theme: store.Active(),
		Info:  store.GetThemeInfo(store.Active()),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	store, doc := s.newStore(w, r)
	store.LoadTheme()

	data := struct {
		BodyClass string
		Active    selection.ThemeInfo
		Themes    selection.Catalog
		Items     []string
	}{
		BodyClass: doc.BodyClass(),
		Active:    store.GetThemeInfo(store.Active()),
		Themes:    store.Catalog(),
		Items:     s.Entries(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.preview.Execute(w, data); err != nil {
		s.logger.Error("failed to render preview", "error", err)
	}
}

// newStore builds a selection store for one exchange, persisting to cookies.
func (s *Server) newStore(w http.ResponseWriter, r *http.Request) (*selection.Store, *selection.BodyDocument) {
	doc := selection.NewBodyDocument("")
	store := selection.NewStore(s.catalog, doc, selection.NewCookieStorage(w, r), s.logger)
	return store, doc
}

// readThemeID accepts {"theme": "<id>"} or a form field named theme.
func readThemeID(r *http.Request) (string, bool, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&body); err != nil {
			return "", true, err
		}
		return strings.TrimSpace(body.Theme), true, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", false, err
	}
	return strings.TrimSpace(r.PostFormValue("theme")), false, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
