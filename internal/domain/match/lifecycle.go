package match

import (
	"errors"
	"fmt"
	"strings"
)

type Action string

const (
	ActionStart     Action = "start"
	ActionPause     Action = "pause"
	ActionResume    Action = "resume"
	ActionPenalties Action = "penalties"
	ActionEnd       Action = "end"
)

const (
	HalfLength = 45
	FullLength = 90
)

var (
	ErrInvalidTransition = errors.New("invalid match transition")
	ErrUnknownAction     = errors.New("unknown match action")
	ErrSameTeam          = errors.New("home and away teams must differ")
	ErrVersionConflict   = errors.New("match was modified concurrently")
)

type transitionKey struct {
	from   Status
	action Action
}

type transitionResult struct {
	to      Status
	elapsed int
}

var transitions = map[transitionKey]transitionResult{
	{StatusScheduled, ActionStart}:      {to: StatusInProgress, elapsed: 0},
	{StatusInProgress, ActionPause}:     {to: StatusHalftime, elapsed: HalfLength},
	{StatusHalftime, ActionResume}:      {to: StatusSecondHalf, elapsed: HalfLength},
	{StatusSecondHalf, ActionPenalties}: {to: StatusPenalties, elapsed: FullLength},
	{StatusInProgress, ActionEnd}:       {to: StatusFinished, elapsed: FullLength},
	{StatusHalftime, ActionEnd}:         {to: StatusFinished, elapsed: FullLength},
	{StatusSecondHalf, ActionEnd}:       {to: StatusFinished, elapsed: FullLength},
	{StatusPenalties, ActionEnd}:        {to: StatusFinished, elapsed: FullLength},
}

func ParseAction(raw string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch action {
	case ActionStart, ActionPause, ActionResume, ActionPenalties, ActionEnd:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// Apply returns m after action, with the status and elapsed time the
// action pins. The input is not modified.
func Apply(m Match, action Action) (Match, error) {
	result, ok := transitions[transitionKey{from: m.Status, action: action}]
	if !ok {
		return m, fmt.Errorf("%w: cannot %s a match in status %s", ErrInvalidTransition, action, m.Status)
	}

	m.Status = result.to
	m.ElapsedMinutes = result.elapsed
	return m, nil
}

// AllowedActions lists the actions accepted from status.
func AllowedActions(status Status) []Action {
	order := []Action{ActionStart, ActionPause, ActionResume, ActionPenalties, ActionEnd}
	out := make([]Action, 0, 2)
	for _, action := range order {
		if _, ok := transitions[transitionKey{from: status, action: action}]; ok {
			out = append(out, action)
		}
	}
	return out
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status Status) bool {
	return status == StatusFinished
}

// ClockRunning reports whether the match clock advances in status.
func ClockRunning(status Status) bool {
	return status == StatusInProgress || status == StatusSecondHalf
}

// ClockCap is the last minute the clock reaches in status.
func ClockCap(status Status) int {
	switch status {
	case StatusInProgress:
		return HalfLength
	case StatusSecondHalf:
		return FullLength
	default:
		return 0
	}
}

// AcceptsEvents reports whether events may be recorded in status.
func AcceptsEvents(status Status) bool {
	return ClockRunning(status)
}

// EventMinuteRange is the inclusive minute range accepted for events in
// status, widened by tolerance for stoppage time.
func EventMinuteRange(status Status, tolerance int) (int, int, bool) {
	if tolerance < 0 {
		tolerance = 0
	}
	switch status {
	case StatusInProgress:
		return 0, HalfLength + tolerance, true
	case StatusSecondHalf:
		return HalfLength, FullLength + tolerance, true
	default:
		return 0, 0, false
	}
}
