// Package shell implements a line-oriented command interface with a
// pluggable command registry.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/tracing"
)

// Handler executes a single command invocation.
type Handler func(ctx context.Context, args []string) error

// Command pairs a name with its handler and a one-line help text.
type Command struct {
	Name    string
	Help    string
	Handler Handler
}

// Service reads command lines, dispatches them to registered handlers and
// reports failures through the logger.
type Service struct {
	logger   *logging.Logger
	in       io.Reader
	out      io.Writer
	commands map[string]*Command
	running  bool
}

// Option customises a shell Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithInput sets the command source.
func WithInput(in io.Reader) Option {
	return func(s *Service) {
		s.in = in
	}
}

// WithOutput sets the destination for command output.
func WithOutput(out io.Writer) Option {
	return func(s *Service) {
		s.out = out
	}
}

// New creates a shell with the builtin help and exit commands registered.
func New(options ...Option) *Service {
	s := &Service{commands: map[string]*Command{}}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	s.Register(&Command{Name: "help", Help: "Show available commands", Handler: func(ctx context.Context, args []string) error {
		s.showHelp()
		return nil
	}})
	s.Register(&Command{Name: "exit", Help: "Exit the program", Handler: func(ctx context.Context, args []string) error {
		s.running = false
		return nil
	}})
	return s
}

// Register adds or replaces a command.
func (s *Service) Register(command *Command) {
	s.commands[command.Name] = command
}

// Output returns the writer commands print to.
func (s *Service) Output() io.Writer {
	return s.out
}

// Execute parses a single line and runs the named command. Unknown commands
// and handler failures are logged rather than returned.
func (s *Service) Execute(ctx context.Context, line string) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return
	}
	name := tokens[0]
	command, ok := s.commands[name]
	if !ok {
		s.logger.Warningf("Unknown command: %s", name)
		return
	}
	if err := s.invoke(ctx, command, tokens[1:]); err != nil {
		s.logger.Errorf("Command failed: %v", err)
	}
}

func (s *Service) invoke(ctx context.Context, command *Command, args []string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "shell."+command.Name, "")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		tracing.EndSpan(span, err)
	}()
	return command.Handler(ctx, args)
}

// Run reads command lines from the input until exit or EOF.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Starting shell interface")
	s.showHelp()
	s.running = true
	scanner := bufio.NewScanner(s.in)
	for s.running {
		_, _ = fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		s.Execute(ctx, scanner.Text())
	}
	return scanner.Err()
}

// RunScript executes the supplied lines in order, stopping early on exit.
func (s *Service) RunScript(ctx context.Context, lines []string) {
	s.running = true
	for _, line := range lines {
		s.logger.Infof("Test executing: %s", line)
		s.Execute(ctx, line)
		if !s.running {
			return
		}
	}
}

func (s *Service) showHelp() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	_, _ = fmt.Fprintln(s.out, "Available commands:")
	for _, name := range names {
		_, _ = fmt.Fprintf(s.out, "  %s - %s\n", name, s.commands[name].Help)
	}
}

// ParseSize parses a decimal byte count argument.
func ParseSize(value string) (uint64, error) {
	size, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	return size, nil
}
