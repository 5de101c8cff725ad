package whitelist

import "fmt"

// Usage describes the command surface.
const Usage = "add <nick> [nick...] | del <nick> | view"

// CommandError reports an unrecognized subcommand or missing arguments. It is
// returned before any state is changed.
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return "whitelist: " + e.Reason
	}
	return fmt.Sprintf("whitelist %s: %s", e.Command, e.Reason)
}
