package charts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/moznion/go-optional"
)

// chartExtensions in lookup order.
var chartExtensions = []string{".png", ".jpg", ".jpeg"}

// Finder resolves chart images captured alongside a trading day. Lookup is
// best effort: a missing chart is None, never an error.
type Finder struct {
	dir string
}

// NewFinder creates a Finder rooted at dir. An empty dir disables lookup.
func NewFinder(dir string) *Finder {
	return &Finder{
		dir: dir,
	}
}

// Lookup returns the chart image path for a symbol on a date, checking
// {dir}/{date}/{SYMBOL}{ext} for each known extension.
func (f *Finder) Lookup(date, symbol string) optional.Option[string] {
	if f.dir == "" {
		return optional.None[string]()
	}

	for _, ext := range chartExtensions {
		path := filepath.Join(f.dir, date, strings.ToUpper(symbol)+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return optional.Some(path)
		}
	}

	return optional.None[string]()
}
