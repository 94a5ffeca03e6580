package server_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/controller/server"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		gt.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		gt.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
	return root
}

func get(srv *server.Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func TestPreviewServer(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":                      "release build",
		"branches/index.html":             "branch list",
		"branches/branches.css":           "body {}",
		"branches/main/index.html":        "main build",
		".octopages-staging-1/secret.txt": "partial",
	})
	srv := server.New(root)

	t.Run("GET /health returns 200", func(t *testing.T) {
		rec := get(srv, "/health")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("serves the root index", func(t *testing.T) {
		rec := get(srv, "/")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("release build")
	})

	t.Run("serves unit directories", func(t *testing.T) {
		rec := get(srv, "/branches/main/")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("main build")
	})

	t.Run("redirects a directory without trailing slash", func(t *testing.T) {
		rec := get(srv, "/branches")
		gt.V(t, rec.Code).Equal(http.StatusMovedPermanently)
		gt.V(t, rec.Header().Get("Location")).Equal("branches/")
	})

	t.Run("missing file is 404", func(t *testing.T) {
		rec := get(srv, "/branches/gone/")
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("dot directories are not served", func(t *testing.T) {
		rec := get(srv, "/.octopages-staging-1/secret.txt")
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
		gt.False(t, strings.Contains(rec.Body.String(), "partial"))
	})

	t.Run("responses are not cached by browsers", func(t *testing.T) {
		rec := get(srv, "/branches/branches.css")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Cache-Control")).Equal("no-store")
	})

	t.Run("non-GET methods are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)
		gt.V(t, rec.Code).Equal(http.StatusMethodNotAllowed)
	})
}
