package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

var commandHelp = map[string]string{
	"send":   "send broadcast <name> bits <n> | send unicast <addr> <name> bits <n>: submit a new frame to the wire under the given name.",
	"cancel": "cancel <name>: cancel a named in-flight frame, reporting whether it was still in flight.",
	"status": "status: print the current simulated time and whether the wire and transmitter see the medium as busy.",
	"go":     "go <seconds>: advance the simulation clock by the given number of seconds, running every event scheduled at or before the new time.",
	"exit":   "exit: leave the console.",
}

var helpOrder = []string{"send", "cancel", "status", "go", "exit"}

// Help renders the command reference, wrapped to the current terminal
// width the way the teacher's console help does.
func Help() string {
	width := terminalWidth()
	maxCmdWidth := uint(10)

	var b strings.Builder
	for _, cmd := range helpOrder {
		w := width - maxCmdWidth - 1
		wrapped := strings.Split(wordwrap.WrapString(commandHelp[cmd], w), "\n")
		for idx, line := range wrapped {
			if idx == 0 {
				fmt.Fprintf(&b, "%-10s %s\n", cmd, line)
				continue
			}
			fmt.Fprintf(&b, "%-10s %s\n", "", line)
		}
	}
	return b.String()
}

func terminalWidth() uint {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			return uint(w)
		}
	}
	return 80
}
