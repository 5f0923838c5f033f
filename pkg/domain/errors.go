package domain

import "errors"

// ErrNoPath is returned when the frontier is exhausted without reaching the goal.
// It is an expected outcome, not a failure of the engine.
var ErrNoPath = errors.New("no path found")

// ErrInvalidStepCost is returned when the step cost is negative or NaN.
var ErrInvalidStepCost = errors.New("step cost must be a non-negative number")

// ErrNilHeuristic is returned when no heuristic function is supplied.
var ErrNilHeuristic = errors.New("heuristic is required")
