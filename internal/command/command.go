// Package command turns a verb and its positional arguments into a store
// operation, runs it, and reports the outcome.
//
// The store never fails on a missing key; whether a missing key is reported
// as an error is decided here, by Policy.
package command

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heysubinoy/kvs/pkg/kv"
)

var (
	// ErrKeyNotFound is returned by Run when a get or rm targets an absent
	// key under PolicyError. The "Key not found" line has already been
	// written to the runner's output by then.
	ErrKeyNotFound = errors.New("Key not found")

	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// Op identifies a command verb.
type Op string

const (
	OpSet    Op = "set"
	OpGet    Op = "get"
	OpRemove Op = "rm"
	OpLen    Op = "len"
)

// Usage lines, one per verb.
var usage = map[Op]string{
	OpSet:    "set <key> <value>",
	OpGet:    "get <key>",
	OpRemove: "rm <key>",
	OpLen:    "len",
}

// Usage returns the usage lines in display order.
func Usage() []string {
	return []string{usage[OpSet], usage[OpGet], usage[OpRemove], usage[OpLen]}
}

// Command is a parsed request. Value is only meaningful for OpSet.
type Command struct {
	Op    Op
	Key   string
	Value string
}

// Parse converts args (verb first) into a Command.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, errors.Wrap(ErrUsage, "missing command")
	}

	op := Op(args[0])
	rest := args[1:]

	switch op {
	case OpSet:
		if len(rest) != 2 {
			return Command{}, usageError(op)
		}
		return Command{Op: op, Key: rest[0], Value: rest[1]}, nil
	case OpGet, OpRemove:
		if len(rest) != 1 {
			return Command{}, usageError(op)
		}
		return Command{Op: op, Key: rest[0]}, nil
	case OpLen:
		if len(rest) != 0 {
			return Command{}, usageError(op)
		}
		return Command{Op: op}, nil
	default:
		return Command{}, errors.Wrapf(ErrUnknownCommand, "%q", args[0])
	}
}

func usageError(op Op) error {
	return errors.Wrapf(ErrUsage, "usage: %s", usage[op])
}

// Policy decides how get and rm report an absent key.
type Policy int

const (
	// PolicyError reports an absent key as ErrKeyNotFound.
	PolicyError Policy = iota
	// PolicyIgnore treats an absent key as a neutral outcome.
	PolicyIgnore
)

func (p Policy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "error" or "ignore".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "error":
		return PolicyError, nil
	case "ignore":
		return PolicyIgnore, nil
	default:
		return 0, errors.Errorf("unknown missing-key policy %q", s)
	}
}

// Runner executes commands against a store and writes results to Out.
type Runner struct {
	Store  kv.Store
	Policy Policy
	Out    io.Writer
	Log    logrus.FieldLogger
}

// NewRunner returns a Runner. A nil log discards log output.
func NewRunner(store kv.Store, policy Policy, out io.Writer, log logrus.FieldLogger) *Runner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Runner{Store: store, Policy: policy, Out: out, Log: log}
}

// Run executes a single command.
func (r *Runner) Run(cmd Command) error {
	log := r.Log.WithFields(logrus.Fields{"op": string(cmd.Op), "key": cmd.Key})

	switch cmd.Op {
	case OpSet:
		r.Store.Set(cmd.Key, cmd.Value)
		log.Debug("set")
		return nil

	case OpGet:
		value, found := r.Store.Get(cmd.Key)
		log.WithField("found", found).Debug("get")
		if !found {
			fmt.Fprintln(r.Out, ErrKeyNotFound.Error())
			if r.Policy == PolicyIgnore {
				return nil
			}
			return ErrKeyNotFound
		}
		fmt.Fprintln(r.Out, value)
		return nil

	case OpRemove:
		_, found := r.Store.Get(cmd.Key)
		r.Store.Remove(cmd.Key)
		log.WithField("found", found).Debug("rm")
		if !found && r.Policy == PolicyError {
			fmt.Fprintln(r.Out, ErrKeyNotFound.Error())
			return ErrKeyNotFound
		}
		return nil

	case OpLen:
		fmt.Fprintln(r.Out, r.Store.Len())
		return nil

	default:
		return errors.Wrapf(ErrUnknownCommand, "%q", string(cmd.Op))
	}
}

