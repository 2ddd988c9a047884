package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// NodeKind discriminates the two node variants.
type NodeKind string

const (
	NodeFolder NodeKind = "folder"
	NodeFile   NodeKind = "file"
)

// Node is one entry of a shared tree: either a folder owning its entries,
// or a file leaf.
//
// A folder that could not be listed while the snapshot was taken carries a
// non-empty Error and no entries.
type Node struct {
	Kind     NodeKind  `json:"type" yaml:"type"`
	Path     string    `json:"path" yaml:"path"`
	Entries  []Node    `json:"entries,omitempty" yaml:"entries,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Metadata holds optional file attributes captured with the snapshot.
type Metadata struct {
	Size     int64      `json:"size" yaml:"size"`
	Modified time.Time  `json:"modified" yaml:"modified"`
	Accessed *time.Time `json:"accessed,omitempty" yaml:"accessed,omitempty"`
	Created  *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
}

// NewFolder returns a folder node.
func NewFolder(path string, entries ...Node) Node {
	return Node{Kind: NodeFolder, Path: path, Entries: entries}
}

// NewFile returns a file node. meta may be nil.
func NewFile(path string, meta *Metadata) Node {
	return Node{Kind: NodeFile, Path: path, Metadata: meta}
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool {
	return n.Kind == NodeFolder
}

// Name returns the last element of the node path.
func (n Node) Name() string {
	return filepath.Base(n.Path)
}

// Validate checks the variant invariants recursively.
func (n Node) Validate() error {
	if n.Path == "" {
		return errors.New("node path is empty")
	}
	switch n.Kind {
	case NodeFolder:
		if n.Metadata != nil {
			return fmt.Errorf("folder %q carries file metadata", n.Path)
		}
		for _, child := range n.Entries {
			if err := child.Validate(); err != nil {
				return err
			}
		}
	case NodeFile:
		if len(n.Entries) > 0 {
			return fmt.Errorf("file %q has entries", n.Path)
		}
		if n.Error != "" {
			return fmt.Errorf("file %q carries a folder error", n.Path)
		}
	default:
		return fmt.Errorf("unknown node type %q", n.Kind)
	}
	return nil
}

// Walk visits n and its descendants depth-first, in entry order.
// Returning false from fn stops the walk.
func (n Node) Walk(fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Entries {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given path within nodes.
func Find(nodes []Node, path string) (Node, bool) {
	var found Node
	var ok bool
	for _, n := range nodes {
		n.Walk(func(c Node) bool {
			if c.Path == path {
				found, ok = c, true
				return false
			}
			return true
		})
		if ok {
			break
		}
	}
	return found, ok
}

// Count returns the number of folders and files within nodes.
func Count(nodes []Node) (folders, files int) {
	for _, n := range nodes {
		n.Walk(func(c Node) bool {
			if c.IsFolder() {
				folders++
			} else {
				files++
			}
			return true
		})
	}
	return folders, files
}
