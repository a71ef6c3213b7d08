package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Guard resolves caller-supplied paths against a fixed root and rejects
// anything that lands outside of it
type Guard struct {
	root string
}

// NewGuard creates a guard for root. The root is made absolute once.
func NewGuard(root string) (*Guard, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return &Guard{root: abs}, nil
}

// Root returns the absolute root
func (g *Guard) Root() string {
	return g.root
}

// Resolve joins rel onto the root and returns the absolute result.
// An absolute rel replaces the root before the check. The containment
// check always runs on the final cleaned path.
func (g *Guard) Resolve(rel string) (string, error) {
	var target string
	if filepath.IsAbs(rel) {
		target = filepath.Clean(rel)
	} else {
		target = filepath.Join(g.root, rel)
	}

	if !g.contains(target) {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, rel)
	}
	return target, nil
}

// contains reports whether target is the root or lies below it
func (g *Guard) contains(target string) bool {
	rel, err := filepath.Rel(g.root, target)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
