package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/okian/medalboard/pkg/logger"
	"github.com/okian/medalboard/pkg/metrics"
)

// Paths locates the four dataset files.
type Paths struct {
	Hosts    string
	Medals   string
	GDP      string
	Athletes string
}

type loader struct {
	workers     int
	season      string
	medalsDelim rune
	log         logger.Logger
}

// Load reads every dataset in parallel and returns the immutable tables.
// Any missing or malformed file fails the whole load.
func Load(ctx context.Context, paths Paths, opts ...Option) (*Tables, error) {
	l := &loader{
		workers:     4,
		season:      "Summer",
		medalsDelim: ';',
		log:         logger.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	start := time.Now()
	var (
		t       Tables
		errs    [4]error
		pool    = pond.NewPool(l.workers, pond.WithQueueSize(4))
		group   = pool.NewGroupContext(ctx)
		gctx    = group.Context()
		measure = func(name string, i int, read func() (int, error)) func() {
			return func() {
				if err := gctx.Err(); err != nil {
					errs[i] = err
					return
				}
				began := time.Now()
				n, err := read()
				if err != nil {
					metrics.RecordLoadError(name)
					errs[i] = fmt.Errorf("load %s: %w", name, err)
					return
				}
				metrics.UpdateDatasetRows(name, n)
				l.log.Debug(gctx, "dataset loaded",
					logger.String("dataset", name),
					logger.Int("rows", n),
					logger.Duration("took", time.Since(began)))
			}
		}
	)
	defer pool.StopAndWait()

	group.Submit(
		measure(DatasetHosts, 0, func() (n int, err error) {
			t.hosts, err = ReadHosts(paths.Hosts, l.season)
			return len(t.hosts), err
		}),
		measure(DatasetMedals, 1, func() (n int, err error) {
			t.medals, err = ReadMedals(paths.Medals, l.medalsDelim)
			return nonEmpty(len(t.medals), err)
		}),
		measure(DatasetGDP, 2, func() (n int, err error) {
			t.gdp, err = ReadGDP(paths.GDP)
			return nonEmpty(len(t.gdp), err)
		}),
		measure(DatasetAthletes, 3, func() (n int, err error) {
			t.results, err = ReadAthletes(paths.Athletes)
			return len(t.results), err
		}),
	)
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	took := time.Since(start)
	metrics.RecordLoadDuration(float64(took.Microseconds()) / 1000.0)
	l.log.Info(ctx, "datasets loaded",
		logger.Int(DatasetHosts, len(t.hosts)),
		logger.Int(DatasetMedals, len(t.medals)),
		logger.Int(DatasetGDP, len(t.gdp)),
		logger.Int(DatasetAthletes, len(t.results)),
		logger.Duration("took", took))
	return &t, nil
}

func nonEmpty(n int, err error) (int, error) {
	if err == nil && n == 0 {
		return 0, ErrEmptyDataset
	}
	return n, err
}

// Compile-time check.
var _ Store = (*Tables)(nil)
