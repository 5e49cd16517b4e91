package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/heysubinoy/kvs/internal/command"
	"github.com/heysubinoy/kvs/internal/logging"
	"github.com/heysubinoy/kvs/internal/shell"
	"github.com/heysubinoy/kvs/internal/store"
	"github.com/heysubinoy/kvs/pkg/config"
)

var version = "0.1.1"

// env holds what every command needs. It is built in Before and lives for
// one process.
type env struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *store.InstrumentedStore
	runner *command.Runner
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the app and maps its error to a process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := newApp(stdin, stdout, stderr).Run(args)
	if err == nil {
		return 0
	}

	code := 1
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	return code
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	e := &env{}

	app := &cli.App{
		Name:      "kvs",
		Usage:     "in-memory key-value store",
		Version:   version,
		Authors:   []*cli.Author{{Name: "kvs authors"}},
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file", EnvVars: []string{"KVS_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn, error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.StringFlag{Name: "missing-key", Usage: "how get/rm report an absent key: error or ignore"},
		},
		// exit codes are handled by run
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return failure(errors.Wrapf(command.ErrUnknownCommand, "%q", c.Args().First()))
			}
			if err := cli.ShowAppHelp(c); err != nil {
				return err
			}
			return cli.Exit("", 1)
		},
		Before: func(c *cli.Context) error {
			return e.setup(c, stderr)
		},
		After: func(c *cli.Context) error {
			e.logMetrics()
			return nil
		},
		// set, get and rm skip flag parsing so keys and values may start with "-"
		Commands: []*cli.Command{
			{
				Name:            "set",
				Usage:           "Set a key to a value",
				ArgsUsage:       "KEY VALUE",
				SkipFlagParsing: true,
				Action:          e.oneShot(command.OpSet),
			},
			{
				Name:            "get",
				Usage:           "Get the value for a key",
				ArgsUsage:       "KEY",
				SkipFlagParsing: true,
				Action:          e.oneShot(command.OpGet),
			},
			{
				Name:            "rm",
				Usage:           "Remove the value for a key",
				ArgsUsage:       "KEY",
				SkipFlagParsing: true,
				Action:          e.oneShot(command.OpRemove),
			},
			{
				Name:      "shell",
				Usage:     "Run commands from FILE or stdin against one store",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					return e.shell(c, stdin)
				},
			},
		},
	}
	return app
}

func (e *env) setup(c *cli.Context, stderr io.Writer) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return failure(err)
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.LogFormat = v
	}
	if v := c.String("missing-key"); v != "" {
		cfg.MissingKey = v
	}
	if err := cfg.Validate(); err != nil {
		return failure(err)
	}

	log, err := logging.NewWithOutput(cfg, stderr)
	if err != nil {
		return failure(err)
	}
	policy, err := command.ParsePolicy(cfg.MissingKey)
	if err != nil {
		return failure(err)
	}

	e.cfg = cfg
	e.log = log
	e.store = store.NewInstrumentedStore(store.NewMemStore())
	e.runner = command.NewRunner(e.store, policy, c.App.Writer, log)

	log.WithField("missing_key", policy.String()).Debug("store ready")
	return nil
}

// failure reports err on one line. cli.Exit formats its message with %+v,
// which would print the pkg/errors stack trace.
func failure(err error) cli.ExitCoder {
	return cli.Exit(err.Error(), 1)
}

// positional drops one leading "--". Every other argument, "--help"
// included, is a literal key or value.
func positional(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

// oneShot runs a single verb with the command's positional arguments.
func (e *env) oneShot(op command.Op) cli.ActionFunc {
	return func(c *cli.Context) error {
		cmd, err := command.Parse(append([]string{string(op)}, positional(c.Args().Slice())...))
		if err != nil {
			return failure(err)
		}
		if err := e.runner.Run(cmd); err != nil {
			if errors.Is(err, command.ErrKeyNotFound) {
				// already reported on stdout
				return cli.Exit("", 1)
			}
			return failure(err)
		}
		return nil
	}
}

func (e *env) shell(c *cli.Context, stdin io.Reader) error {
	in := stdin
	prompt := ""

	switch c.NArg() {
	case 0:
		if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			prompt = e.cfg.Prompt
		}
	case 1:
		f, err := os.Open(c.Args().First())
		if err != nil {
			return failure(errors.Wrap(err, "open script"))
		}
		defer f.Close()
		in = f
	default:
		return cli.Exit("usage: kvs shell [FILE]", 1)
	}

	sess := &shell.Session{Runner: e.runner, In: in, Prompt: prompt}
	failed, err := sess.Run(c.Context)
	if err != nil {
		return failure(err)
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (e *env) logMetrics() {
	if e.store == nil {
		return
	}
	m := e.store.Metrics()
	e.log.WithFields(logrus.Fields{
		"keys":     m.Keys,
		"get":      m.GetCount,
		"get_hits": m.GetHits,
		"set":      m.SetCount,
		"rm":       m.RemoveCount,
		"get_avg":  m.GetAvgLatency.String(),
		"set_avg":  m.SetAvgLatency.String(),
		"rm_avg":   m.RemoveAvgLatency.String(),
	}).Debug("store metrics")
}
