package server

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
)

// Server previews an assembled site tree the way GitHub Pages serves it.
type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func New(root string) *Server {
	files := http.FileServer(http.Dir(root))

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Use(noStore)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if hiddenPath(r.URL.Path) {
			safeWrite(w, http.StatusNotFound, []byte("404 page not found\n"))
			return
		}
		files.ServeHTTP(w, r)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// hiddenPath reports whether any segment is a dot file, such as a staging
// directory left by an interrupted run. Pages does not publish those either.
func hiddenPath(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
