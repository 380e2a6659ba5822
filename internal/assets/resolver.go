// Package assets resolves and inspects the media a project references. It is
// the external collaborator of the timing core: the engine only ever sees
// asset references.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps references onto files below Root. Remote URLs are assumed to
// resolve.
type Resolver struct {
	Root string
}

// NewResolver returns a Resolver for root.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root}
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Resolve returns the local path of ref. Bare animation names are looked up
// under lotties/ with a .json extension as well.
func (r *Resolver) Resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if IsRemote(ref) {
		return ref, true
	}

	rel := filepath.FromSlash(strings.TrimPrefix(ref, "/"))
	candidates := []string{filepath.Join(r.Root, rel)}
	if filepath.Ext(rel) == "" {
		candidates = append(candidates,
			filepath.Join(r.Root, rel+".json"),
			filepath.Join(r.Root, "lotties", rel+".json"),
		)
	} else if filepath.Ext(rel) == ".json" && !strings.Contains(rel, string(filepath.Separator)) {
		candidates = append(candidates, filepath.Join(r.Root, "lotties", rel))
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return "", false
}

// Exists reports whether ref resolves.
func (r *Resolver) Exists(ref string) bool {
	_, ok := r.Resolve(ref)
	return ok
}
