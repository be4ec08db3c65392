package ui

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// handleStatic serves the built single page app. Paths that name an existing
// file are served as is; anything else falls back to index.html so client
// side routes survive a reload.
func (a *App) handleStatic(w http.ResponseWriter, r *http.Request) {
	if a.config.StaticDir == "" {
		http.Error(w, "Static folder not configured", http.StatusNotFound)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" {
		full := filepath.Join(a.config.StaticDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}
	}

	index := filepath.Join(a.config.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, index)
}
