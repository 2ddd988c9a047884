package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// Stats summarises a walk.
type Stats struct {
	Folders int
	Files   int
	Skipped int
}

func (s *Stats) add(o Stats) {
	s.Folders += o.Folders
	s.Files += o.Files
	s.Skipped += o.Skipped
}

// Snapshot is an immutable tree of every shared root.
// Callers must treat Nodes as read-only.
type Snapshot struct {
	Roots   []string
	Nodes   []domain.Node
	TakenAt time.Time
	Stats   Stats
}

// Count returns the folders and files recorded in the snapshot.
func (s *Snapshot) Count() (folders, files int) {
	return s.Stats.Folders, s.Stats.Files
}

// Option configures a walk.
type Option func(*walker)

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(w *walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

type walker struct {
	logger *slog.Logger
	stats  Stats
	// root is the walked root with symlinks resolved.
	root string
}

func newWalker(opts []Option) *walker {
	w := &walker{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Take walks root and returns its folder node.
// It fails only if root cannot be resolved, statted or listed.
func Take(root string, opts ...Option) (domain.Node, Stats, error) {
	w := newWalker(opts)
	node, err := w.takeRoot(root)
	return node, w.stats, err
}

// maxParallelRoots bounds how many roots TakeAll walks at once.
const maxParallelRoots = 4

// TakeAll walks every root and returns one top-level folder per root, in
// the order given. Roots are walked concurrently. Any root failure fails
// the whole call.
func TakeAll(roots []string, opts ...Option) (*Snapshot, error) {
	takenAt := time.Now()
	nodes := make([]domain.Node, len(roots))
	stats := make([]Stats, len(roots))

	var g errgroup.Group
	g.SetLimit(maxParallelRoots)
	for i, root := range roots {
		g.Go(func() error {
			w := newWalker(opts)
			node, err := w.takeRoot(root)
			if err != nil {
				return err
			}
			nodes[i], stats[i] = node, w.stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Roots:   make([]string, 0, len(roots)),
		Nodes:   nodes,
		TakenAt: takenAt,
	}
	for i, node := range nodes {
		snap.Roots = append(snap.Roots, node.Path)
		snap.Stats.add(stats[i])
	}
	return snap, nil
}

func (w *walker) takeRoot(root string) (domain.Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Node{}, domain.ErrSnapshot.WithDetails(root).WithCause(err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return domain.Node{}, domain.ErrSnapshot.WithDetails(abs).WithCause(err)
	}
	if !info.IsDir() {
		return domain.Node{}, domain.ErrSnapshot.WithDetails(abs + " is not a directory")
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return domain.Node{}, domain.ErrSnapshot.WithDetails(abs).WithCause(err)
	}
	w.root = resolved

	entries, err := os.ReadDir(abs)
	if err != nil {
		return domain.Node{}, domain.ErrSnapshot.WithDetails(abs).WithCause(err)
	}

	w.stats.Folders++
	return domain.NewFolder(abs, w.children(abs, entries)...), nil
}

func (w *walker) folder(path string) domain.Node {
	w.stats.Folders++

	entries, err := os.ReadDir(path)
	if err != nil {
		w.skip(path, "list folder", err)
		return domain.Node{Kind: domain.NodeFolder, Path: path, Error: describe(err)}
	}

	return domain.NewFolder(path, w.children(path, entries)...)
}

func (w *walker) children(dir string, entries []fs.DirEntry) []domain.Node {
	var nodes []domain.Node

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			// Only links to files inside the root are kept.
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				w.skip(path, "resolve symlink", err)
				continue
			}
			if !within(w.root, target) {
				w.stats.Skipped++
				w.logger.Debug("skipping symlink leaving the root", "path", path)
				continue
			}
			info, err := os.Stat(target)
			if err != nil {
				w.skip(path, "resolve symlink", err)
				continue
			}
			if !info.Mode().IsRegular() {
				w.stats.Skipped++
				w.logger.Debug("skipping non-file symlink", "path", path)
				continue
			}
			nodes = append(nodes, w.file(path, info))

		case entry.IsDir():
			nodes = append(nodes, w.folder(path))

		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				w.skip(path, "stat file", err)
				continue
			}
			nodes = append(nodes, w.file(path, info))

		default:
			w.stats.Skipped++
			w.logger.Debug("skipping special file", "path", path, "mode", entry.Type().String())
		}
	}

	return nodes
}

func (w *walker) file(path string, info fs.FileInfo) domain.Node {
	w.stats.Files++
	return domain.NewFile(path, metadataOf(info))
}

func (w *walker) skip(path, op string, err error) {
	w.stats.Skipped++
	w.logger.Warn("snapshot entry skipped",
		"path", path,
		"op", op,
		"error", err)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func metadataOf(info fs.FileInfo) *domain.Metadata {
	meta := &domain.Metadata{
		Size:     info.Size(),
		Modified: info.ModTime().UTC(),
	}
	fillPlatformTimes(meta, info)
	return meta
}

// describe renders a per-entry error without the absolute path, which the
// node already carries.
func describe(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, fs.ErrNotExist):
		return "no longer exists"
	default:
		return fmt.Sprint(err)
	}
}
