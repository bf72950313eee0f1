package dynamic

import "errors"

var (
	// ErrInvalidProbabilities reports a probability table that is not a
	// distribution over the known alteration categories.
	ErrInvalidProbabilities = errors.New("invalid alteration probabilities")
	// ErrInvalidDecay reports a novelty decay base outside [0, 1].
	ErrInvalidDecay = errors.New("invalid novelty decay")
	// ErrInvalidObject reports an object type that cannot be placed by an alteration.
	ErrInvalidObject = errors.New("object cannot be placed by alteration")
	// ErrAttemptsExhausted reports a rejection-sampling loop that ran out of attempts.
	ErrAttemptsExhausted = errors.New("alteration attempts exhausted")
)
