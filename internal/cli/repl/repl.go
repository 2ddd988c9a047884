package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yndnr/foldershare-go/internal/cli/output"
	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// Prompt is printed before each command.
const Prompt = "foldershare> "

// Session is the live connection a shell runs over.
// *connection.Session implements it.
type Session interface {
	Server() string
	Tree() []domain.Node
	List(ctx context.Context) ([]domain.Node, error)
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Config configures a REPL.
type Config struct {
	Session Session
	Input   io.Reader
	Output  io.Writer
	// Formatter renders trees; defaults to the tree view.
	Formatter output.Formatter
	// History defaults to an in-memory history.
	History *History
	// Timeout bounds each remote command. Zero means no bound.
	Timeout time.Duration
	// WorkDir is where get saves files without an explicit destination.
	WorkDir string
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	session   Session
	input     io.Reader
	output    io.Writer
	formatter output.Formatter
	completer *Completer
	history   *History
	timeout   time.Duration
	workDir   string

	tree []domain.Node
}

// New creates a shell over cfg.Session.
func New(cfg Config) *REPL {
	r := &REPL{
		session:   cfg.Session,
		input:     cfg.Input,
		output:    cfg.Output,
		formatter: cfg.Formatter,
		history:   cfg.History,
		timeout:   cfg.Timeout,
		workDir:   cfg.WorkDir,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.formatter == nil {
		r.formatter = &output.TreeFormatter{}
	}
	if r.history == nil {
		r.history = NewHistory("")
	}
	if r.workDir == "" {
		r.workDir = "."
	}
	if r.session != nil {
		r.tree = r.session.Tree()
	}
	r.completer = NewCompleter(func() []domain.Node { return r.tree })
	return r
}

// Completer returns the shell's completer.
func (r *REPL) Completer() *Completer {
	return r.completer
}

// Run reads commands until exit, end of input, ctx cancellation or a
// session-ending error, which is returned.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	if r.session != nil {
		fmt.Fprintf(r.output, "Connected to %s. Type 'help' for commands.\n", r.session.Server())
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.output, Prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if strings.TrimSpace(line) == "" {
				fmt.Fprintln(r.output)
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
			if isFatal(err) {
				return err
			}
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help":
		r.printHelp()
		return nil
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return nil
	case "ls":
		return r.ls(ctx, args)
	case "find":
		return r.find(args)
	case "get":
		return r.get(ctx, args)
	case "cat":
		return r.cat(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (r *REPL) ls(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.New("usage: ls [PATH]")
	}

	if len(args) == 0 {
		if err := r.requireSession(); err != nil {
			return err
		}
		ctx, cancel := r.callContext(ctx)
		defer cancel()

		nodes, err := r.session.List(ctx)
		if err != nil {
			return err
		}
		r.tree = nodes
		return r.formatter.Format(r.output, nodes)
	}

	node, ok := domain.Find(r.tree, args[0])
	if !ok {
		return fmt.Errorf("%s: not in the shared tree", args[0])
	}
	return r.formatter.Format(r.output, node)
}

func (r *REPL) find(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: find PATTERN")
	}
	pattern := args[0]

	var matches []string
	for _, root := range r.tree {
		root.Walk(func(n domain.Node) bool {
			if ok, _ := filepath.Match(pattern, n.Name()); ok || strings.Contains(n.Path, pattern) {
				matches = append(matches, n.Path)
			}
			return true
		})
	}

	if len(matches) == 0 {
		fmt.Fprintln(r.output, "no matches")
		return nil
	}
	sort.Strings(matches)
	for _, m := range matches {
		fmt.Fprintln(r.output, m)
	}
	return nil
}

func (r *REPL) get(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: get PATH [DEST]")
	}
	remote := args[0]

	dest := filepath.Join(r.workDir, filepath.Base(remote))
	if len(args) == 2 {
		dest = args[1]
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			dest = filepath.Join(dest, filepath.Base(remote))
		}
	}

	data, err := r.fetch(ctx, remote)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", dest, err)
	}

	fmt.Fprintf(r.output, "saved %s (%s) to %s\n", remote, output.FormatSize(int64(len(data))), dest)
	return nil
}

func (r *REPL) cat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cat PATH")
	}
	data, err := r.fetch(ctx, args[0])
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(r.output)
	}
	return nil
}

func (r *REPL) fetch(ctx context.Context, path string) ([]byte, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := r.callContext(ctx)
	defer cancel()
	return r.session.Fetch(ctx, path)
}

func (r *REPL) requireSession() error {
	if r.session == nil {
		return domain.ErrNotConnected
	}
	return nil
}

func (r *REPL) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `Commands:
  ls [PATH]         show the tree (refreshed from the host), or the subtree at PATH
  find PATTERN      list paths whose name matches a glob or contain PATTERN
  get PATH [DEST]   save a remote file locally
  cat PATH          print a remote file
  history           show previous commands
  help              show this help
  exit, quit        leave the shell
`)
}

// isFatal reports whether err ends the session the shell runs over.
func isFatal(err error) bool {
	return errors.Is(err, domain.ErrConnectionLost) ||
		errors.Is(err, domain.ErrBridgeClosed) ||
		errors.Is(err, domain.ErrAuthFailed) ||
		errors.Is(err, domain.ErrMalformedReply) ||
		errors.Is(err, domain.ErrNotConnected)
}
