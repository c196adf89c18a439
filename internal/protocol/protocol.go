// File: internal/protocol/protocol.go

// Package protocol parses and validates the instruction strings produced by
// the decision-making model. The model is an untrusted free-text generator;
// nothing it emits may reach the device surface without passing through the
// two-phase parse-then-validate gate implemented here. Parsing only splits
// tokens and selects the command type; validation enforces arity and value
// contracts and is the sole way to mint an executable Command.
package protocol

import (
	"strings"
	"time"

	"github.com/xkilldash9x/droidpilot/internal/adb"
)

// Type enumerates the command vocabulary. Matching is exact and
// case-sensitive.
type Type string

const (
	TypeTouch Type = "touch"
	TypeSwipe Type = "swipe"
	TypeText  Type = "text"
	TypeKey   Type = "key"
	TypeEnd   Type = "end"
	TypeError Type = "error"
)

// Terminal reports whether the type stops the automation loop. Terminal
// commands never execute anything on the device.
func (t Type) Terminal() bool {
	return t == TypeEnd || t == TypeError
}

// ParsedCommand is the tokenized-but-unvalidated form of an instruction. It
// must never be executed directly; call Validate to obtain a Command.
type ParsedCommand struct {
	Type Type
	Args []string
}

// Command is the validated, typed representation of an instruction. The
// variant is sealed: only Validate constructs the concrete cases, so holding
// a Command is proof that the instruction passed the full contract.
type Command interface {
	command()
}

// Touch is a single-point tap.
type Touch struct {
	At adb.Coordinate
}

// Swipe is a drag gesture between two points.
type Swipe struct {
	From     adb.Coordinate
	To       adb.Coordinate
	Duration time.Duration
}

// Text enters literal text into the focused field.
type Text struct {
	Body string
}

// Key presses a key by numeric code. Symbolic names are a device-surface
// convenience and are rejected at this layer.
type Key struct {
	Code adb.KeyCode
}

// End signals that the model considers the test condition satisfied.
type End struct{}

// Abort signals that the model could not make progress (the "error" command).
type Abort struct{}

func (Touch) command() {}
func (Swipe) command() {}
func (Text) command()  {}
func (Key) command()   {}
func (End) command()   {}
func (Abort) command() {}

// Parse tokenizes a raw instruction string. The first whitespace-separated
// token selects the command type; the rest become positional arguments.
// Unknown first tokens fail with *UnknownCommandError.
func Parse(raw string) (ParsedCommand, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return ParsedCommand{}, &UnknownCommandError{Token: ""}
	}

	t := Type(tokens[0])
	switch t {
	case TypeTouch, TypeSwipe, TypeText, TypeKey, TypeEnd, TypeError:
		return ParsedCommand{Type: t, Args: tokens[1:]}, nil
	default:
		return ParsedCommand{}, &UnknownCommandError{Token: tokens[0]}
	}
}

// ParseAndValidate is the convenience path used by the automation loop.
func ParseAndValidate(raw string) (Command, error) {
	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return parsed.Validate()
}
