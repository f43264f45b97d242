package navigator

import "strings"

// Command is one discrete user action delivered to the Controller.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandNextRecord
	CommandPrevRecord
	CommandToggle
	CommandLineDown
	CommandLineUp
	CommandPageDown
	CommandPageUp
	CommandScrollLeft
	CommandScrollRight
	CommandTop
	CommandBottom
)

var commandNames = []struct {
	cmd  Command
	name string
}{
	{CommandNone, "none"},
	{CommandQuit, "quit"},
	{CommandNextRecord, "next"},
	{CommandPrevRecord, "prev"},
	{CommandToggle, "toggle"},
	{CommandLineDown, "line_down"},
	{CommandLineUp, "line_up"},
	{CommandPageDown, "page_down"},
	{CommandPageUp, "page_up"},
	{CommandScrollLeft, "left"},
	{CommandScrollRight, "right"},
	{CommandTop, "top"},
	{CommandBottom, "bottom"},
}

// String returns the name used for the command in config files and logs.
func (c Command) String() string {
	for _, n := range commandNames {
		if n.cmd == c {
			return n.name
		}
	}
	return "unknown"
}

// ParseCommand maps a config action name to its Command.
func ParseCommand(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range commandNames {
		if n.name == name {
			return n.cmd, true
		}
	}
	return CommandNone, false
}

// Commands lists every actionable command in display order.
func Commands() []Command {
	out := make([]Command, 0, len(commandNames)-1)
	for _, n := range commandNames {
		if n.cmd != CommandNone {
			out = append(out, n.cmd)
		}
	}
	return out
}
