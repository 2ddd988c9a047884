package repl

import (
	"sort"
	"strings"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// Commands lists the shell's command words.
var Commands = []string{"cat", "exit", "find", "get", "help", "history", "ls", "quit"}

// pathCommands take a remote path as their first argument.
var pathCommands = map[string]bool{"ls": true, "get": true, "cat": true}

// Completer suggests command words and remote paths.
type Completer struct {
	commands []string
	tree     func() []domain.Node
}

// NewCompleter creates a completer. tree supplies the current remote tree
// and may be nil.
func NewCompleter(tree func() []domain.Node) *Completer {
	return &Completer{commands: Commands, tree: tree}
}

// Complete returns the full lines that could follow line: command words
// while the first word is being typed, then remote paths for commands
// that take one.
func (c *Completer) Complete(line string) []string {
	cmd, rest, hasArg := strings.Cut(line, " ")
	if !hasArg {
		return c.completeCommand(cmd)
	}
	if !pathCommands[cmd] || strings.Contains(rest, " ") || c.tree == nil {
		return nil
	}

	var suggestions []string
	for _, root := range c.tree() {
		root.Walk(func(n domain.Node) bool {
			if strings.HasPrefix(n.Path, rest) {
				suggestions = append(suggestions, cmd+" "+n.Path)
			}
			return true
		})
	}
	sort.Strings(suggestions)
	return suggestions
}

func (c *Completer) completeCommand(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
