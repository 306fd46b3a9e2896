// Package montecarlo studies the sampling distribution of the least
// squares estimator by repeatedly simulating data from a known linear
// model and refitting it.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/djlacombe/Hands-on-Econometrics/ols"
	"github.com/djlacombe/Hands-on-Econometrics/synth"
)

// ErrInvalidArgument is returned for study configurations that can not
// be run.
var ErrInvalidArgument = errors.New("montecarlo: invalid argument")

// Config defines a Monte Carlo study.
type Config struct {

	// Number of simulated data sets
	Replications int

	// Number of observations per data set
	N int

	// True coefficients, intercept first
	Beta []float64

	// Standard deviation of the errors
	NoiseStd float64

	// Replication r uses the seed Seed + r
	Seed uint64

	// Significance level of the confidence intervals whose coverage
	// is reported.  Zero means 0.05.
	Alpha float64

	// Optional design of the explanatory variables, see synth.Config
	Cov     mat.Symmetric
	Uniform *synth.Range

	// Maximum number of concurrent fits, defaults to GOMAXPROCS
	Workers int

	// If not nil, write log messages here
	Log *log.Logger
}

// Study holds the results of a Monte Carlo study.
type Study struct {

	// The true coefficients
	Beta []float64

	// Estimates[j][r] is the estimate of coefficient j in replication r
	Estimates [][]float64

	// Mean and standard deviation of the estimates of each coefficient
	Mean   []float64
	StdDev []float64

	// Mean minus true value
	Bias []float64

	// Proportion of replications in which the confidence interval
	// contains the true value
	Coverage []float64
}

func (cfg *Config) check() error {
	if cfg.Replications < 1 {
		return fmt.Errorf("%w: %d replications", ErrInvalidArgument, cfg.Replications)
	}
	if len(cfg.Beta) == 0 {
		return fmt.Errorf("%w: no coefficients", ErrInvalidArgument)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: %d workers", ErrInvalidArgument, cfg.Workers)
	}
	return nil
}

// Run carries out the study.  The replications are fit concurrently,
// but the results only depend on the configuration, not on the order in
// which the fits complete.
func Run(ctx context.Context, cfg Config) (*Study, error) {

	if err := cfg.check(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = 0.05
	}

	p := len(cfg.Beta)
	reps := cfg.Replications

	est := make([][]float64, p)
	covered := make([][]bool, p)
	for j := range est {
		est[j] = make([]float64, reps)
		covered[j] = make([]bool, reps)
	}

	if cfg.Log != nil {
		cfg.Log.Printf("montecarlo: %d replications of n=%d with %d workers", reps, cfg.N, workers)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for r := 0; r < reps; r++ {
		if gctx.Err() != nil {
			break
		}
		r := r
		g.Go(func() error {
			seed := cfg.Seed + uint64(r)
			scfg := synth.Config{
				N:        cfg.N,
				K:        p - 1,
				Beta:     cfg.Beta,
				NoiseStd: cfg.NoiseStd,
				Seed:     &seed,
				Cov:      cfg.Cov,
				Uniform:  cfg.Uniform,
			}
			s, err := scfg.Generate()
			if err != nil {
				return err
			}

			rslt, err := ols.Fit(s.X, s.Y, alpha)
			if err != nil {
				return fmt.Errorf("replication %d: %w", r, err)
			}

			lcb, ucb := rslt.ConfInt()
			for j, b := range rslt.Params() {
				est[j][r] = b
				covered[j][r] = lcb[j] <= cfg.Beta[j] && cfg.Beta[j] <= ucb[j]
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	study := &Study{
		Beta:      cfg.Beta,
		Estimates: est,
		Mean:      make([]float64, p),
		StdDev:    make([]float64, p),
		Bias:      make([]float64, p),
		Coverage:  make([]float64, p),
	}

	for j := range est {
		study.Mean[j], study.StdDev[j] = stat.MeanStdDev(est[j], nil)
		study.Bias[j] = study.Mean[j] - cfg.Beta[j]
		var nc int
		for _, c := range covered[j] {
			if c {
				nc++
			}
		}
		study.Coverage[j] = float64(nc) / float64(reps)
	}

	if cfg.Log != nil {
		cfg.Log.Printf("montecarlo: done, mean estimates %v", study.Mean)
	}

	return study, nil
}
