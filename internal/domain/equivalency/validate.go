package equivalency

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation messages. Callers surface every message, not just the first.
const (
	MsgSpeed    = "Speed must be a positive number"
	MsgDistance = "Distance must be between 15 and 60.5 feet"
)

// ErrInvalidInput is the only error kind the core produces.
var ErrInvalidInput = errors.New("invalid input")

// Field names reported by InputError.
const (
	FieldSpeed    = "speed"
	FieldDistance = "distance"
)

// Violation is a single failed check.
type Violation struct {
	Field   string
	Message string
}

// InputError carries all violations for one (speed, distance) pair.
type InputError struct {
	Violations []Violation
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(e.Messages(), "; "))
}

// Is reports ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Messages returns the human-readable messages in check order.
func (e *InputError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// Validate returns one message per violation, or nil if the pair is valid.
func Validate(speed Speed, distance Distance) []string {
	var msgs []string
	for _, v := range violations(speed, distance) {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// CheckInput is Validate expressed as an error. It returns nil or an *InputError.
func CheckInput(speed Speed, distance Distance) error {
	if vs := violations(speed, distance); len(vs) > 0 {
		return &InputError{Violations: vs}
	}
	return nil
}

// InDomain reports whether d lies in [MinDistance, MaxDistance].
func InDomain(d Distance) bool {
	if !finite(float64(d)) {
		return false
	}
	return d >= MinDistance && d <= MaxDistance
}

func violations(speed Speed, distance Distance) []Violation {
	var vs []Violation
	if !finite(float64(speed)) || speed <= 0 {
		vs = append(vs, Violation{Field: FieldSpeed, Message: MsgSpeed})
	}
	if !InDomain(distance) {
		vs = append(vs, Violation{Field: FieldDistance, Message: MsgDistance})
	}
	return vs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
