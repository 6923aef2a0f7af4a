package camera

import (
	"fmt"
	"strings"
)

// Command is a discrete view change produced by the input source.
type Command int

const (
	CommandNone Command = iota
	RotateLeft
	RotateRight
	PanLeft
	PanRight
	PanForward
	PanBack
	RaiseEye
	LowerEye
)

var commandNames = map[Command]string{
	CommandNone: "none",
	RotateLeft:  "rotl",
	RotateRight: "rotr",
	PanLeft:     "left",
	PanRight:    "right",
	PanForward:  "fwd",
	PanBack:     "back",
	RaiseEye:    "up",
	LowerEye:    "down",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand resolves a short command name such as "rotl" or "fwd".
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if cmd != CommandNone && n == name {
			return cmd, nil
		}
	}
	return CommandNone, fmt.Errorf("unknown command %q", name)
}

// ParseCommands parses a comma separated command list. Empty entries are
// skipped.
func ParseCommands(list string) ([]Command, error) {
	var cmds []Command
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		cmd, err := ParseCommand(part)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
