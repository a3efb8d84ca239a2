package service

import (
	"context"

	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/model"
)

// Session is the presentation layer's memory of the last accepted input.
// It is a value: Step returns the next session instead of mutating one.
type Session struct {
	Speed    eq.Speed
	Distance eq.Distance
	Steps    int
}

// NewSession starts a session at the given input.
func NewSession(speed eq.Speed, distance eq.Distance) Session {
	return Session{Speed: speed, Distance: distance}
}

// Input is one interaction. Nil fields keep the session's value.
type Input struct {
	Speed    *eq.Speed
	Distance *eq.Distance
}

// Set returns an Input that replaces both fields.
func Set(speed eq.Speed, distance eq.Distance) Input {
	return Input{Speed: &speed, Distance: &distance}
}

// Resolve fills omitted fields from the session.
func (s Session) Resolve(in Input) (eq.Speed, eq.Distance) {
	speed, distance := s.Speed, s.Distance
	if in.Speed != nil {
		speed = *in.Speed
	}
	if in.Distance != nil {
		distance = *in.Distance
	}
	return speed, distance
}

// Step computes the chart for in against sess. On invalid input the
// returned session is sess unchanged.
func (s *Service) Step(ctx context.Context, sess Session, in Input) (Session, *model.Chart, error) {
	speed, distance := sess.Resolve(in)
	chart, err := s.Calculate(ctx, speed, distance)
	if err != nil {
		return sess, nil, err
	}
	return Session{Speed: speed, Distance: distance, Steps: sess.Steps + 1}, chart, nil
}
