// File: internal/protocol/errors.go
package protocol

import "fmt"

// UnknownCommandError reports a first token that is not part of the command
// vocabulary.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	if e.Token == "" {
		return "empty command"
	}
	return fmt.Sprintf("unknown command %q", e.Token)
}

// ValidationError reports an instruction whose arguments violate the per-type
// contract. Field names the offending argument.
type ValidationError struct {
	Type   Type
	Field  string
	Token  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: invalid %s %q: %s", e.Type, e.Field, e.Token, e.Reason)
	}
	return fmt.Sprintf("%s: invalid %s: %s", e.Type, e.Field, e.Reason)
}
