package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/oshokin/buildversion/internal/logger"
)

// Provider hands a single raw string to the parser.
type Provider interface {
	Provide(ctx context.Context) (string, error)
}

// DateTimeLayout matches the output of `date -Ins`.
const DateTimeLayout = "2006-01-02T15:04:05,000000000-07:00"

const (
	// DefaultCommandTimeout bounds a Command without an explicit Timeout.
	DefaultCommandTimeout = 10 * time.Second

	// waitDelay caps how long output pipes may stay open after a kill.
	waitDelay = time.Second
)

var (
	// ErrEmptyCommand is returned by a Command without a program name.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrEmptyInput is returned by Reader when nothing could be read.
	ErrEmptyInput = errors.New("no input")
)

// Static always returns the same value.
type Static string

// Provide implements Provider.
func (s Static) Provide(context.Context) (string, error) {
	return string(s), nil
}

// Reader returns the first line of R, including its line terminator.
type Reader struct {
	R io.Reader
}

// Provide implements Provider.
func (r Reader) Provide(context.Context) (string, error) {
	line, err := bufio.NewReader(r.R).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}

	if line == "" {
		return "", ErrEmptyInput
	}

	return line, nil
}

// Command runs a program once and returns its standard output untouched.
type Command struct {
	// Args is the program followed by its arguments.
	Args []string
	// Dir is the working directory. Empty means the current one.
	Dir string
	// Timeout bounds the run; DefaultCommandTimeout when zero.
	Timeout time.Duration
}

// NewCommand creates a Command for args with the given timeout.
func NewCommand(args []string, timeout time.Duration) *Command {
	return &Command{
		Args:    append([]string(nil), args...),
		Timeout: timeout,
	}
}

// Provide implements Provider.
func (c *Command) Provide(ctx context.Context) (string, error) {
	if len(c.Args) == 0 || c.Args[0] == "" {
		return "", ErrEmptyCommand
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	// Create a context with timeout to avoid hanging
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer

	cmd := exec.CommandContext(cmdCtx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %s: %w: %s", c, err, msg)
		}

		return "", fmt.Errorf("run %s: %w", c, err)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		logger.WarnKV(ctx, "Command wrote to stderr", "command", c.String(), "stderr", msg)
	}

	return string(output), nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(c.Args, " ")
}

// Clock formats the current time with Layout.
type Clock struct {
	// Now returns the current time; time.Now when nil.
	Now func() time.Time
	// Layout is the time format; DateTimeLayout when empty.
	Layout string
}

// Provide implements Provider.
func (c Clock) Provide(context.Context) (string, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	layout := c.Layout
	if layout == "" {
		layout = DateTimeLayout
	}

	return now().Format(layout), nil
}
