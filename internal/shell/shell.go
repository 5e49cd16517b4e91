package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/heysubinoy/kvs/internal/command"
	"github.com/heysubinoy/kvs/internal/store"
)

// metricsSource is satisfied by store.InstrumentedStore.
type metricsSource interface {
	Metrics() store.MetricsSnapshot
}

// Session feeds lines from In through a command.Runner. One session uses one
// store for its whole lifetime, so later lines see what earlier lines wrote.
type Session struct {
	Runner *command.Runner
	In     io.Reader

	// Prompt is written before each line when non-empty.
	Prompt string
}

// Run reads and executes lines until EOF, an exit/quit line, or ctx is
// cancelled. A failing line is reported and does not stop the session.
// It returns the number of failed lines.
func (s *Session) Run(ctx context.Context) (int, error) {
	out := s.Runner.Out
	log := s.Runner.Log
	// no line length cap: keys and values are unbounded
	reader := bufio.NewReader(s.In)

	log.Info("session started")
	failed, lines := 0, 0
	defer func() {
		log.WithField("lines", lines).WithField("failed", failed).Info("session ended")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		if s.Prompt != "" {
			fmt.Fprint(out, s.Prompt)
		}
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return failed, errors.Wrap(err, "read input")
		}
		if raw == "" && err == io.EOF {
			return failed, nil
		}
		// a final line without a newline still runs; the next read ends the loop
		lines++

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil {
			failed++
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return failed, nil
		case "help":
			s.help(out)
			continue
		case "stats":
			if err := s.stats(out); err != nil {
				failed++
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		}

		if err := s.exec(args); err != nil {
			failed++
			if !errors.Is(err, command.ErrKeyNotFound) {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			log.WithError(err).WithField("line", lines).Debug("command failed")
		}
	}
}

func (s *Session) exec(args []string) error {
	cmd, err := command.Parse(args)
	if err != nil {
		return err
	}
	return s.Runner.Run(cmd)
}

func (s *Session) help(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	for _, u := range command.Usage() {
		fmt.Fprintf(out, "  %s\n", u)
	}
	fmt.Fprintln(out, "  stats")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  exit")
}

func (s *Session) stats(out io.Writer) error {
	src, ok := s.Runner.Store.(metricsSource)
	if !ok {
		return errors.New("stats not available for this store")
	}
	m := src.Metrics()
	fmt.Fprintf(out, "keys: %d\n", m.Keys)
	fmt.Fprintf(out, "get: %d (hits %d, misses %d, avg %s)\n", m.GetCount, m.GetHits, m.GetMisses, m.GetAvgLatency)
	fmt.Fprintf(out, "set: %d (avg %s)\n", m.SetCount, m.SetAvgLatency)
	fmt.Fprintf(out, "rm: %d (avg %s)\n", m.RemoveCount, m.RemoveAvgLatency)
	return nil
}
