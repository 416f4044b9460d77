// This file defines the format of all CLI commands and their flags.

package cli

import "github.com/alecthomas/participle"

type command struct {
	Send   *SendCmd   `  @@` //nolint
	Cancel *CancelCmd `| @@` //nolint
	Status *StatusCmd `| @@` //nolint
	Go     *GoCmd     `| @@` //nolint
	Exit   *ExitCmd   `| @@` //nolint
}

// BroadcastTarget defines the `broadcast` send-target format.
type BroadcastTarget struct {
	Dummy struct{} `"broadcast"` //nolint
}

// UnicastTarget defines the `unicast <addr>` send-target format.
type UnicastTarget struct {
	Dummy struct{} `"unicast"` //nolint
	Addr  int      `@Int`      //nolint
}

// SendCmd defines the `send` command format:
//
//	send broadcast <pdu-name> bits <n>
//	send unicast <addr> <pdu-name> bits <n>
type SendCmd struct {
	Cmd       struct{}         `"send"`      //nolint
	Broadcast *BroadcastTarget `( @@`        //nolint
	Unicast   *UnicastTarget   `| @@ )`      //nolint
	Name      string           `@Ident`      //nolint
	Bits      uint64           `"bits" @Int` //nolint
}

// CancelCmd defines the `cancel <pdu-name>` command format.
type CancelCmd struct {
	Cmd  struct{} `"cancel"` //nolint
	Name string   `@Ident`   //nolint
}

// StatusCmd defines the `status` command format.
type StatusCmd struct {
	Cmd struct{} `"status"` //nolint
}

// GoCmd defines the `go <seconds>` command format.
type GoCmd struct {
	Cmd     struct{} `"go"`          //nolint
	Seconds float64  `(@Int|@Float)` //nolint
}

// ExitCmd defines the `exit` command format.
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

var commandParser = participle.MustBuild(&command{})

func parseCmdBytes(b []byte, cmd *command) error {
	return commandParser.ParseBytes(b, cmd)
}
