// Package cli implements the interactive driver for a copper wire
// simulation session: a participle grammar over a handful of commands
// (send, cancel, status, go, exit), executed against a Session and
// read through a chzyer/readline REPL. Grounded on the teacher's own
// cli package (ast.go, CmdRunner.go, runner.go), reduced to this
// module's much smaller command surface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

const prompt = "copper> "

// CommandContext carries the outcome of executing one parsed command.
type CommandContext struct {
	err error
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.err = errors.Errorf(format, args...)
}

// Err returns the error the command failed with, or nil on success.
func (cc *CommandContext) Err() error {
	return cc.err
}

// Runner executes parsed commands against a Session.
type Runner struct {
	session *Session
	out     io.Writer
	done    bool
}

// NewRunner constructs a Runner that writes command output to out.
func NewRunner(session *Session, out io.Writer) *Runner {
	return &Runner{session: session, out: out}
}

// Done reports whether an `exit` command has been executed.
func (rt *Runner) Done() bool {
	return rt.done
}

// Execute parses and runs one command line, returning its outcome.
func (rt *Runner) Execute(line string) *CommandContext {
	cc := &CommandContext{}

	cmd := &command{}
	if err := parseCmdBytes([]byte(line), cmd); err != nil {
		cc.err = err
		return cc
	}

	switch {
	case cmd.Send != nil:
		rt.execSend(cc, cmd.Send)
	case cmd.Cancel != nil:
		rt.execCancel(cc, cmd.Cancel)
	case cmd.Status != nil:
		fmt.Fprintln(rt.out, rt.session.Status())
	case cmd.Go != nil:
		rt.session.Advance(cmd.Go.Seconds)
	case cmd.Exit != nil:
		rt.done = true
	default:
		cc.errorf("unrecognized command")
	}
	return cc
}

func (rt *Runner) execSend(cc *CommandContext, send *SendCmd) {
	var (
		at  float64
		err error
	)
	switch {
	case send.Broadcast != nil:
		at, err = rt.session.SendBroadcast(send.Name, send.Bits)
	case send.Unicast != nil:
		at, err = rt.session.SendUnicast(uint32(send.Unicast.Addr), send.Name, send.Bits)
	default:
		cc.errorf("send: missing target")
		return
	}
	if err != nil {
		cc.err = err
		return
	}
	fmt.Fprintf(rt.out, "queued %q, ends at t=%g\n", send.Name, at)
}

func (rt *Runner) execCancel(cc *CommandContext, cancel *CancelCmd) {
	wasInFlight, err := rt.session.Cancel(cancel.Name)
	if err != nil {
		cc.err = err
		return
	}
	fmt.Fprintf(rt.out, "cancelled %q: was in flight = %t\n", cancel.Name, wasInFlight)
}

// Run drives a readline REPL against session until `exit` is entered
// or the input stream closes.
func Run(session *Session) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       "/tmp/copperd-cmds.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	rt := NewRunner(session, os.Stdout)
	for !rt.Done() {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line == "help" {
			fmt.Fprint(os.Stdout, Help())
			continue
		}

		cc := rt.Execute(line)
		if cc.Err() != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", cc.Err())
		} else {
			fmt.Fprintln(os.Stdout, "Done")
		}
	}
	return nil
}
