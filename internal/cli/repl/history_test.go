package repl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistory_AddAndGet(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory("")
	h.maxSize = 3
	for _, cmd := range []string{"cmd1", "cmd2", "cmd3", "cmd4"} {
		h.Add(cmd)
	}

	if want := []string{"cmd2", "cmd3", "cmd4"}; !reflect.DeepEqual(h.Entries(), want) {
		t.Errorf("Entries() = %q, want %q", h.Entries(), want)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file)
	h.Add("ls")
	h.Add("get /r/a.txt")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("history file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("history file mode = %v, want 0600", perm)
	}

	h2 := NewHistory(file)
	h2.maxSize = 1
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"get /r/a.txt"}; !reflect.DeepEqual(h2.Entries(), want) {
		t.Errorf("loaded %q, want %q", h2.Entries(), want)
	}
}

func TestHistory_MissingFileAndDisabled(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() of a missing file: %v", err)
	}

	mem := NewHistory("")
	mem.Add("x")
	if err := mem.Save(); err != nil {
		t.Errorf("Save() without a file: %v", err)
	}
	if err := mem.Load(); err != nil {
		t.Errorf("Load() without a file: %v", err)
	}
}
