package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/index.html templates/redirect.html templates/branches.css
var assets embed.FS

var (
	markdownOnce sync.Once
	markdownConv goldmark.Markdown
)

func markdownRenderer() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownConv = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownConv
}

type Renderer struct {
	index      *template.Template
	redirect   *template.Template
	stylesheet []byte
}

var _ interfaces.Renderer = (*Renderer)(nil)

// New parses the embedded templates. It fails only if they are broken.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"ago":       ago,
		"timestamp": timestamp,
		"bytes":     sizeOf,
		"markdown":  renderMarkdown,
		"shortSHA":  shortSHA,
		"expired":   expired,
		"unitClass": unitClass,
	}

	index, err := template.New("index.html").Funcs(funcs).ParseFS(assets, "templates/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse index template")
	}
	redirect, err := template.New("redirect.html").ParseFS(assets, "templates/redirect.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse redirect template")
	}
	css, err := assets.ReadFile("templates/branches.css")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read stylesheet")
	}

	return &Renderer{
		index:      index,
		redirect:   redirect,
		stylesheet: css,
	}, nil
}

func (x *Renderer) RenderIndex(w io.Writer, page *model.IndexPage) error {
	if page == nil {
		return goerr.New("index page is nil")
	}
	if err := x.index.Execute(w, page); err != nil {
		return goerr.Wrap(err, "failed to render index page")
	}
	return nil
}

func (x *Renderer) RenderRedirect(w io.Writer, target string) error {
	if err := x.redirect.Execute(w, target); err != nil {
		return goerr.Wrap(err, "failed to render redirect document", goerr.V("target", target))
	}
	return nil
}

func (x *Renderer) Stylesheet() []byte {
	return append([]byte(nil), x.stylesheet...)
}

// ago is relative to the generation time so that re-rendering the same
// model yields the same text.
func ago(t, now time.Time) string {
	if t.IsZero() {
		return "at an unknown time"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func sizeOf(n int64) string {
	if n <= 0 {
		return "unknown size"
	}
	return humanize.Bytes(uint64(n))
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer().Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	// goldmark omits raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String()) // #nosec G203
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func expired(build *model.BuildView) bool {
	return build != nil && build.Artifact != nil && build.Artifact.Expired
}

func unitClass(unit *model.UnitView) string {
	classes := []string{"unit"}
	switch {
	case unit.RelativePath != "":
		classes = append(classes, "built")
	case expired(unit.Build):
		classes = append(classes, "expired")
	default:
		classes = append(classes, "unbuilt")
	}
	if unit.IsDefault {
		classes = append(classes, "default")
	}
	return strings.Join(classes, " ")
}
