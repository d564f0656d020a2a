package cryptox

import (
	"os"
	"strings"
	"sync"
)

var (
	pepperMu   sync.RWMutex
	pepperPath = "pepper"
	pepperVal  string
	pepperOnce sync.Once
)

// SetPepperPath points the package at the pepper file. Call once during
// startup, before any password digest is computed.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperPath = path
}

// GetPepper returns the site-wide pepper mixed into every password digest.
// A missing or unreadable file yields an empty pepper rather than an error:
// digests must stay deterministic across restarts, and erroring here would
// lock every user out.
func GetPepper() string {
	pepperOnce.Do(func() {
		pepperMu.RLock()
		path := pepperPath
		pepperMu.RUnlock()

		raw, err := os.ReadFile(path)
		if err != nil {
			return
		}
		pepperMu.Lock()
		pepperVal = strings.TrimSpace(string(raw))
		pepperMu.Unlock()
	})

	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepperVal
}
