package models

import "github.com/pkg/errors"

// Domain sentinels. Controllers map these to HTTP statuses,
// everything else is a 500.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidRecommendation = errors.New("recommender returned invalid response format")
	ErrNoCandidate           = errors.New("no suitable candidate")
	ErrAlreadyProcessed      = errors.New("approval request already processed")
	ErrConflict              = errors.New("concurrent update conflict")
	ErrCapacityExceeded      = errors.New("assignment exceeds employee capacity")
)
