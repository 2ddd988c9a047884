// Package shareroot reads files on behalf of remote peers, confined to the
// shared folders.
//
// Confinement is lexical first (the cleaned absolute path must lie under a
// shared root) and then physical (the path with every symlink resolved,
// including the last component, must still lie under the same root). The
// resolved path is what gets opened. A rejected path is reported exactly
// like a missing one.
package shareroot

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// DefaultMaxFileSize bounds a single file reply.
const DefaultMaxFileSize int64 = 64 << 20

// Roots is the immutable set of shared folders.
type Roots struct {
	lexical  []string
	resolved []string
	confine  bool
	maxSize  int64
}

// Option configures Roots.
type Option func(*Roots)

// WithConfinement toggles path confinement. When disabled, any path the host
// can read is served verbatim.
func WithConfinement(enabled bool) Option {
	return func(r *Roots) {
		r.confine = enabled
	}
}

// WithMaxFileSize sets the largest file that will be read. Zero or less
// removes the limit.
func WithMaxFileSize(n int64) Option {
	return func(r *Roots) {
		r.maxSize = n
	}
}

// New resolves roots. Every root must exist.
func New(roots []string, opts ...Option) (*Roots, error) {
	r := &Roots{
		lexical:  make([]string, 0, len(roots)),
		resolved: make([]string, 0, len(roots)),
		confine:  true,
		maxSize:  DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, err
		}
		r.lexical = append(r.lexical, abs)
		r.resolved = append(r.resolved, resolved)
	}

	return r, nil
}

// List returns the shared roots as configured (absolute, unresolved).
func (r *Roots) List() []string {
	out := make([]string, len(r.lexical))
	copy(out, r.lexical)
	return out
}

// Confined reports whether path confinement is enforced.
func (r *Roots) Confined() bool {
	return r.confine
}

// Resolve returns the path to open for a requested path, or ErrFileNotFound
// when the path falls outside every root.
func (r *Roots) Resolve(path string) (string, error) {
	if !r.confine {
		return path, nil
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return "", domain.ErrFileNotFound.WithDetails(path)
	}

	for i, root := range r.lexical {
		if !within(root, clean) {
			continue
		}
		target, err := filepath.EvalSymlinks(clean)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return "", domain.ErrFilePermission.WithDetails(path).WithCause(err)
			}
			return "", domain.ErrFileNotFound.WithDetails(path)
		}
		if within(r.resolved[i], target) {
			return target, nil
		}
	}

	return "", domain.ErrFileNotFound.WithDetails(path)
}

// ReadFile reads a regular file. All failures are domain file errors
// carrying the requested path as details.
func (r *Roots) ReadFile(path string) ([]byte, error) {
	target, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if err != nil {
		return nil, classify(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.ErrNotRegularFile.WithDetails(path)
	}
	if r.maxSize > 0 && info.Size() > r.maxSize {
		return nil, domain.ErrFileTooLarge.WithDetails(path)
	}

	reader := io.Reader(f)
	if r.maxSize > 0 {
		reader = io.LimitReader(f, r.maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, classify(path, err)
	}
	// The file may have grown since Stat.
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return nil, domain.ErrFileTooLarge.WithDetails(path)
	}

	return data, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.ErrFileNotFound.WithDetails(path).WithCause(err)
	case errors.Is(err, fs.ErrPermission):
		return domain.ErrFilePermission.WithDetails(path).WithCause(err)
	case errors.Is(err, syscall.EISDIR):
		return domain.ErrNotRegularFile.WithDetails(path).WithCause(err)
	default:
		return domain.ErrFileRead.WithDetails(path).WithCause(err)
	}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
