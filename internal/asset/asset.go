// Package asset loads vector path assets from SVG files.
//
// A Loader reads the path data and geometry of an SVG document once per
// path and serves later loads from memory.
package asset

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/timing"
)

// ErrNoPath is returned for documents without any <path d="..."> element.
var ErrNoPath = errors.New("svg has no path data")

// Asset is the geometry of one SVG document.
type Asset struct {
	// D is the path data of every <path> element, space joined in
	// document order.
	D       string
	ViewBox string
	Width   float64
	Height  float64
}

// Attrs returns the asset as path attributes: d, viewBox, width and height.
// Empty and zero fields are left out.
func (a Asset) Attrs() ir.Attrs {
	out := ir.NewAttrs(ir.P("d", ir.String(a.D)))
	if a.ViewBox != "" {
		out = out.With("viewBox", ir.String(a.ViewBox))
	}
	if a.Width > 0 {
		out = out.With("width", ir.Number(a.Width))
	}
	if a.Height > 0 {
		out = out.With("height", ir.Number(a.Height))
	}
	return out
}

// Loader memoizes assets per path. It is safe for concurrent use.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]Asset
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads assets from fsys instead of the working directory.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{cache: make(map[string]Asset)}
	for _, opt := range opts {
		opt(l)
	}
	if l.fsys == nil {
		l.fsys = osFS{}
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load returns the asset at path, reading and parsing it on first use.
// Failed loads are not cached.
func (l *Loader) Load(path string) (Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.cache[path]; ok {
		return a, nil
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return Asset{}, fmt.Errorf("open asset %s: %w", path, err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return Asset{}, fmt.Errorf("parse asset %s: %w", path, err)
	}

	l.logger.Debug("loaded asset", "path", path, "view_box", a.ViewBox, "d_len", len(a.D))
	l.cache[path] = a
	return a, nil
}

// Cached reports how many assets are memoized.
func (l *Loader) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// Parse reads an SVG document. A missing viewBox is derived from width and
// height ("0 0 w h"); missing width and height are taken from the viewBox.
func Parse(r io.Reader) (Asset, error) {
	dec := xml.NewDecoder(r)

	var (
		a       Asset
		paths   []string
		sawRoot bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Asset{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "svg":
			if sawRoot {
				continue
			}
			sawRoot = true
			a.ViewBox = strings.Join(strings.Fields(attr(start, "viewBox")), " ")
			a.Width = timing.LeadingFloat(attr(start, "width"))
			a.Height = timing.LeadingFloat(attr(start, "height"))
		case "path":
			if d := strings.TrimSpace(attr(start, "d")); d != "" {
				paths = append(paths, d)
			}
		}
	}

	if !sawRoot {
		return Asset{}, errors.New("not an svg document")
	}
	if len(paths) == 0 {
		return Asset{}, ErrNoPath
	}
	a.D = strings.Join(paths, " ")

	box := strings.Fields(a.ViewBox)
	switch {
	case len(box) == 4:
		if a.Width <= 0 {
			a.Width = timing.LeadingFloat(box[2])
		}
		if a.Height <= 0 {
			a.Height = timing.LeadingFloat(box[3])
		}
	case a.Width > 0 && a.Height > 0:
		a.ViewBox = "0 0 " + timing.FormatNumber(a.Width) + " " + timing.FormatNumber(a.Height)
	}
	return a, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// osFS opens paths relative to the working directory, absolute paths
// included, which os.DirFS cannot do.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}
