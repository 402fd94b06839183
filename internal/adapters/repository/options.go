package repository

import "github.com/okian/medalboard/pkg/logger"

// Option applies a configuration option to Load.
type Option func(*loader)

// WithWorkers sets how many files are read in parallel.
func WithWorkers(n int) Option {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets the logger used for load progress.
func WithLogger(log logger.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithSeason keeps only host games of the season. Empty keeps all.
func WithSeason(season string) Option {
	return func(l *loader) {
		l.season = season
	}
}

// WithMedalsDelimiter sets the field separator of the medals file.
func WithMedalsDelimiter(r rune) Option {
	return func(l *loader) {
		if r != 0 {
			l.medalsDelim = r
		}
	}
}
