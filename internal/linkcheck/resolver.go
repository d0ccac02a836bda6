package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver decides whether a reference target exists on disk.
type Resolver struct {
	contentRoot       string
	extensions        []string // documentation extensions first, then images
	indexName         string
	strictDirectories bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithIndexName sets the base name of directory index files (default "index").
func WithIndexName(name string) ResolverOption {
	return func(r *Resolver) { r.indexName = name }
}

// WithStrictDirectories makes a bare directory target resolve only when it has an index file.
func WithStrictDirectories(strict bool) ResolverOption {
	return func(r *Resolver) { r.strictDirectories = strict }
}

// NewResolver creates a resolver for site-rooted targets under contentRoot,
// probing the given extensions for targets that omit them.
func NewResolver(contentRoot string, extensions []string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		contentRoot: contentRoot,
		extensions:  extensions,
		indexName:   "index",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the verdict for ref.
func (r *Resolver) Resolve(ref Reference) Resolution {
	res := Resolution{Reference: ref, Path: ref.Target}

	if isExternal(ref.Target) {
		res.Found = true
		return res
	}

	pathPart, _, _ := strings.Cut(ref.Target, "#")
	res.Path = pathPart
	if pathPart == "" {
		// Anchor-only target within the same document.
		res.Found = true
		return res
	}

	res.Candidate = r.candidate(ref.Source, pathPart)
	res.Found = r.exists(&res)
	return res
}

// isExternal reports whether target uses a web or mail scheme.
func isExternal(target string) bool {
	return strings.HasPrefix(target, "http") || strings.HasPrefix(target, "mailto:")
}

// candidate maps a target path to a filesystem path. Site-rooted targets are
// joined to the content root; others are resolved against the source document's directory.
func (r *Resolver) candidate(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return filepath.Join(r.contentRoot, filepath.FromSlash(strings.TrimLeft(target, "/")))
	}
	joined := filepath.Join(filepath.Dir(source), filepath.FromSlash(target))
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

// exists probes res.Candidate: as given, with a known extension, then as a
// directory holding an index file.
func (r *Resolver) exists(res *Resolution) bool {
	candidate := res.Candidate

	res.Tried = append(res.Tried, candidate)
	info, err := os.Stat(candidate)
	if err == nil && (!info.IsDir() || !r.strictDirectories) {
		return true
	}
	isDir := err == nil && info.IsDir()

	for _, probe := range r.extensionProbes(candidate) {
		res.Tried = append(res.Tried, probe)
		if pathExists(probe) {
			return true
		}
	}

	if isDir {
		for _, ext := range r.extensions {
			index := filepath.Join(candidate, r.indexName+ext)
			res.Tried = append(res.Tried, index)
			if pathExists(index) {
				return true
			}
		}
	}

	return false
}

// extensionProbes lists candidate variants with each extension replacing the
// existing suffix, and appended to it when the candidate already has one.
func (r *Resolver) extensionProbes(candidate string) []string {
	suffix := pathSuffix(candidate)
	stem := strings.TrimSuffix(candidate, suffix)

	probes := make([]string, 0, 2*len(r.extensions))
	for _, ext := range r.extensions {
		probes = append(probes, stem+ext)
		if suffix != "" {
			probes = append(probes, candidate+ext)
		}
	}
	return probes
}

// pathSuffix returns the final extension of path's base name. Dotfiles such
// as ".env" and names ending in a dot have no suffix.
func pathSuffix(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base || ext == "." {
		return ""
	}
	return ext
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
