package models

import "errors"

var (
	ErrConfiguration     = errors.New("invalid forest configuration")
	ErrDimensionMismatch = errors.New("feature count mismatch")
	ErrNoTrainedTrees    = errors.New("no tree has processed any item")
	ErrInvalidLabel      = errors.New("classification must be non-negative")
	ErrEmptyBatch        = errors.New("empty training batch")
)
