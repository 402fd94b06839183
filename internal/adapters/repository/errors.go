package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrMissingFile   = errors.New("dataset file not found")
	ErrMissingColumn = errors.New("dataset column missing")
	ErrMalformedRow  = errors.New("malformed dataset row")
	ErrEmptyDataset  = errors.New("dataset has no rows")
)
