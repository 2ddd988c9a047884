package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	s := newFakeSession()
	c := NewCompleter(s.Tree)

	tests := []struct {
		line string
		want []string
	}{
		{"", Commands},
		{"h", []string{"help", "history"}},
		{"ex", []string{"exit"}},
		{"zz", nil},
		{"get /r/s", []string{"get /r/sub", "get /r/sub/b.txt"}},
		{"ls /r/a", []string{"ls /r/a.txt"}},
		{"cat /", []string{"cat /r", "cat /r/a.txt", "cat /r/sub", "cat /r/sub/b.txt"}},
		{"find /r", nil},
		{"get /r/a.txt dest", nil},
		{"get /x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := c.Complete(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestCompleter_NoTree(t *testing.T) {
	c := NewCompleter(nil)
	if got := c.Complete("get /"); got != nil {
		t.Errorf("Complete without a tree = %q", got)
	}
}

func TestREPL_CompleterFollowsRefresh(t *testing.T) {
	r := New(Config{Session: newFakeSession()})
	if got := r.Completer().Complete("get /r/a"); len(got) != 1 {
		t.Errorf("Complete = %q", got)
	}
	r.tree = nil
	if got := r.Completer().Complete("get /r/a"); got != nil {
		t.Errorf("completer should read the current tree, got %q", got)
	}
}
