// File: internal/protocol/validate.go
package protocol

import (
	"strconv"
	"strings"
	"time"

	"github.com/xkilldash9x/droidpilot/internal/adb"
)

// Validate enforces the per-type argument contract and returns the typed
// Command. Arity mismatches and non-integer tokens where integers are
// required fail with *ValidationError naming the offending field.
func (p ParsedCommand) Validate() (Command, error) {
	switch p.Type {
	case TypeTouch:
		return p.validateTouch()
	case TypeSwipe:
		return p.validateSwipe()
	case TypeText:
		return p.validateText()
	case TypeKey:
		return p.validateKey()
	case TypeEnd:
		// Trailing tokens are ignored, not rejected.
		return End{}, nil
	case TypeError:
		return Abort{}, nil
	default:
		return nil, &UnknownCommandError{Token: string(p.Type)}
	}
}

func (p ParsedCommand) validateTouch() (Command, error) {
	if len(p.Args) != 2 {
		return nil, p.arityError(2)
	}
	x, err := p.intField("x", p.Args[0])
	if err != nil {
		return nil, err
	}
	y, err := p.intField("y", p.Args[1])
	if err != nil {
		return nil, err
	}
	at, err := p.coordinate("x", "y", x, y)
	if err != nil {
		return nil, err
	}
	return Touch{At: at}, nil
}

func (p ParsedCommand) validateSwipe() (Command, error) {
	if len(p.Args) != 5 {
		return nil, p.arityError(5)
	}
	fields := [5]string{"x1", "y1", "x2", "y2", "duration_ms"}
	var vals [5]int
	for i, arg := range p.Args {
		v, err := p.intField(fields[i], arg)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	from, err := p.coordinate("x1", "y1", vals[0], vals[1])
	if err != nil {
		return nil, err
	}
	to, err := p.coordinate("x2", "y2", vals[2], vals[3])
	if err != nil {
		return nil, err
	}
	if vals[4] < 0 {
		return nil, &ValidationError{
			Type:   p.Type,
			Field:  "duration_ms",
			Token:  p.Args[4],
			Reason: "duration must be non-negative",
		}
	}
	return Swipe{
		From:     from,
		To:       to,
		Duration: time.Duration(vals[4]) * time.Millisecond,
	}, nil
}

func (p ParsedCommand) validateText() (Command, error) {
	if len(p.Args) == 0 {
		return nil, &ValidationError{
			Type:   p.Type,
			Field:  "text",
			Reason: "text requires at least one token",
		}
	}
	// Tokens are rejoined with single spaces; original interior whitespace
	// runs are not preserved across the whitespace-split protocol.
	return Text{Body: strings.Join(p.Args, " ")}, nil
}

func (p ParsedCommand) validateKey() (Command, error) {
	if len(p.Args) != 1 {
		return nil, p.arityError(1)
	}
	// Only integer codes at the protocol layer. Symbolic names such as HOME
	// are a device-surface affordance, not part of the wire contract.
	n, err := strconv.Atoi(p.Args[0])
	if err != nil {
		return nil, &ValidationError{
			Type:   p.Type,
			Field:  "keycode",
			Token:  p.Args[0],
			Reason: "key code must be an integer",
		}
	}
	if n < 0 {
		return nil, &ValidationError{
			Type:   p.Type,
			Field:  "keycode",
			Token:  p.Args[0],
			Reason: "key code must be non-negative",
		}
	}
	return Key{Code: adb.KeyCode(n)}, nil
}

func (p ParsedCommand) intField(field, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ValidationError{
			Type:   p.Type,
			Field:  field,
			Token:  token,
			Reason: "must be an integer",
		}
	}
	return n, nil
}

func (p ParsedCommand) coordinate(fieldX, fieldY string, x, y int) (adb.Coordinate, error) {
	c, err := adb.NewCoordinate(x, y)
	if err != nil {
		field := fieldX
		token := strconv.Itoa(x)
		if x >= 0 {
			field = fieldY
			token = strconv.Itoa(y)
		}
		return adb.Coordinate{}, &ValidationError{
			Type:   p.Type,
			Field:  field,
			Token:  token,
			Reason: "coordinate must be non-negative",
		}
	}
	return c, nil
}

func (p ParsedCommand) arityError(want int) error {
	return &ValidationError{
		Type:   p.Type,
		Field:  "args",
		Token:  strings.Join(p.Args, " "),
		Reason: "wrong argument count, want " + strconv.Itoa(want) + ", got " + strconv.Itoa(len(p.Args)),
	}
}
