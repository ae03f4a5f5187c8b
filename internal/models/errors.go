package models

import "errors"

// Custom errors
var (
	ErrInsufficientData = errors.New("insufficient training data")
	ErrMissingArtifact  = errors.New("no trained model artifact found, run train first")
	ErrMalformedOdds    = errors.New("odds record missing required side")
	ErrNotFound         = errors.New("record not found")
	ErrLeakage          = errors.New("feature cutoff not before game date")
)
