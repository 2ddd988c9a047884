package domain

import (
	"testing"
	"time"
)

func sampleTree() []Node {
	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Node{
		NewFolder("/share",
			NewFile("/share/a.txt", &Metadata{Size: 2, Modified: mod}),
			NewFolder("/share/sub",
				NewFile("/share/sub/b.txt", nil),
			),
			NewFolder("/share/empty"),
		),
	}
}

func TestNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"valid tree", sampleTree()[0], false},
		{"empty path", Node{Kind: NodeFile}, true},
		{"unknown kind", Node{Kind: "link", Path: "/x"}, true},
		{"file with entries", Node{Kind: NodeFile, Path: "/x", Entries: []Node{NewFile("/x/y", nil)}}, true},
		{"file with folder error", Node{Kind: NodeFile, Path: "/x", Error: "boom"}, true},
		{"folder with metadata", Node{Kind: NodeFolder, Path: "/x", Metadata: &Metadata{}}, true},
		{"invalid nested child", NewFolder("/x", Node{Kind: "bogus", Path: "/x/y"}), true},
		{"error-marked folder", Node{Kind: NodeFolder, Path: "/x", Error: "permission denied"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNode_Walk_Order(t *testing.T) {
	var paths []string
	sampleTree()[0].Walk(func(n Node) bool {
		paths = append(paths, n.Path)
		return true
	})

	want := []string{"/share", "/share/a.txt", "/share/sub", "/share/sub/b.txt", "/share/empty"}
	if len(paths) != len(want) {
		t.Fatalf("walked %d nodes, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestNode_Walk_Stop(t *testing.T) {
	visited := 0
	completed := sampleTree()[0].Walk(func(n Node) bool {
		visited++
		return n.Path != "/share/sub"
	})
	if completed {
		t.Error("Walk should report an early stop")
	}
	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
}

func TestFind(t *testing.T) {
	tree := sampleTree()

	n, ok := Find(tree, "/share/sub/b.txt")
	if !ok {
		t.Fatal("Find should locate nested file")
	}
	if n.Kind != NodeFile {
		t.Errorf("Kind = %q, want %q", n.Kind, NodeFile)
	}
	if n.Name() != "b.txt" {
		t.Errorf("Name() = %q, want %q", n.Name(), "b.txt")
	}

	if _, ok := Find(tree, "/share/missing"); ok {
		t.Error("Find should not locate a missing path")
	}
}

func TestCount(t *testing.T) {
	folders, files := Count(sampleTree())
	if folders != 3 {
		t.Errorf("folders = %d, want 3", folders)
	}
	if files != 2 {
		t.Errorf("files = %d, want 2", files)
	}
}
