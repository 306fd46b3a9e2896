// Package synth generates data from a known linear model, for
// studying the behavior of regression estimators.
package synth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/djlacombe/Hands-on-Econometrics/statmodel"
)

var (
	// ErrDimensionMismatch is returned when the coefficient vector or
	// covariance matrix does not match the number of explanatory
	// variables.
	ErrDimensionMismatch = errors.New("synth: dimension mismatch")

	// ErrInvalidArgument is returned for sizes or scales outside their
	// domain.
	ErrInvalidArgument = errors.New("synth: invalid argument")
)

// Range is an interval for uniformly distributed explanatory variables.
type Range struct {
	Lo float64
	Hi float64
}

// Config describes the model y = X*Beta + e from which data are
// generated.  The first column of X is an intercept, the remaining K
// columns are explanatory variables.  The errors e are independent
// Normal(0, NoiseStd^2) draws.
type Config struct {

	// Number of observations
	N int

	// Number of explanatory variables, not counting the intercept
	K int

	// True coefficients, intercept first, length K+1
	Beta []float64

	// Standard deviation of the errors
	NoiseStd float64

	// Seed for the random number generator.  If nil, the generator
	// is seeded from the clock.
	Seed *uint64

	// If not nil, each row of explanatory variables is drawn from a
	// multivariate normal distribution with mean zero and this K x K
	// covariance matrix.
	Cov mat.Symmetric

	// If not nil, the explanatory variables are independent
	// Uniform(Lo, Hi) draws.
	Uniform *Range
}

// Sample is a simulated data set.
type Sample struct {

	// The N x (K+1) design matrix, column 0 is all ones
	X *mat.Dense

	// The response vector
	Y *mat.VecDense

	// The coefficients used to generate Y
	Beta []float64

	// The seed of the random number generator
	Seed uint64
}

// Synthesize generates n observations from a linear model with an
// intercept and k standard normal explanatory variables.  The same seed
// always gives the same sample.  To seed from the clock instead, use a
// Config with a nil Seed and call Generate; the seed that was drawn is
// reported in Sample.Seed.
func Synthesize(n, k int, beta []float64, noiseStd float64, seed uint64) (*Sample, error) {
	cfg := Config{
		N:        n,
		K:        k,
		Beta:     beta,
		NoiseStd: noiseStd,
		Seed:     &seed,
	}
	return cfg.Generate()
}

func (cfg Config) check() error {

	if cfg.N < 1 {
		return fmt.Errorf("%w: N=%d", ErrInvalidArgument, cfg.N)
	}
	if cfg.K < 0 {
		return fmt.Errorf("%w: K=%d", ErrInvalidArgument, cfg.K)
	}
	if len(cfg.Beta) != cfg.K+1 {
		return fmt.Errorf("%w: %d coefficients for %d explanatory variables and an intercept",
			ErrDimensionMismatch, len(cfg.Beta), cfg.K)
	}
	if !(cfg.NoiseStd >= 0) || math.IsInf(cfg.NoiseStd, 1) {
		return fmt.Errorf("%w: NoiseStd=%v", ErrInvalidArgument, cfg.NoiseStd)
	}
	if cfg.Cov != nil && cfg.Uniform != nil {
		return fmt.Errorf("%w: Cov and Uniform can not both be set", ErrInvalidArgument)
	}
	if cfg.Cov != nil && cfg.Cov.SymmetricDim() != cfg.K {
		return fmt.Errorf("%w: covariance is %d x %d, expected %d x %d",
			ErrDimensionMismatch, cfg.Cov.SymmetricDim(), cfg.Cov.SymmetricDim(), cfg.K, cfg.K)
	}
	if cfg.Uniform != nil && !(cfg.Uniform.Lo < cfg.Uniform.Hi) {
		return fmt.Errorf("%w: empty range [%v, %v]", ErrInvalidArgument, cfg.Uniform.Lo, cfg.Uniform.Hi)
	}

	return nil
}

// Generate draws a sample from the model.
func (cfg Config) Generate() (*Sample, error) {

	if err := cfg.check(); err != nil {
		return nil, err
	}

	var seed uint64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)

	n, k := cfg.N, cfg.K
	x := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}

	if k > 0 {
		switch {
		case cfg.Cov != nil:
			mvn, ok := distmv.NewNormal(make([]float64, k), cfg.Cov, src)
			if !ok {
				return nil, fmt.Errorf("%w: covariance is not positive definite", ErrInvalidArgument)
			}
			row := make([]float64, k)
			for i := 0; i < n; i++ {
				mvn.Rand(row)
				for j, v := range row {
					x.Set(i, j+1, v)
				}
			}
		case cfg.Uniform != nil:
			u := distuv.Uniform{Min: cfg.Uniform.Lo, Max: cfg.Uniform.Hi, Src: src}
			for i := 0; i < n; i++ {
				for j := 1; j <= k; j++ {
					x.Set(i, j, u.Rand())
				}
			}
		default:
			z := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
			for i := 0; i < n; i++ {
				for j := 1; j <= k; j++ {
					x.Set(i, j, z.Rand())
				}
			}
		}
	}

	beta := make([]float64, len(cfg.Beta))
	copy(beta, cfg.Beta)

	y := mat.NewVecDense(n, nil)
	y.MulVec(x, mat.NewVecDense(k+1, beta))

	if cfg.NoiseStd > 0 {
		e := distuv.Normal{Mu: 0, Sigma: cfg.NoiseStd, Src: src}
		for i := 0; i < n; i++ {
			y.SetVec(i, y.AtVec(i)+e.Rand())
		}
	}

	return &Sample{
		X:    x,
		Y:    y,
		Beta: beta,
		Seed: seed,
	}, nil
}

// Names returns the variable names used by Dataset: the intercept is
// "const" and the explanatory variables are x1, x2, ...
func (s *Sample) Names() []string {
	_, p := s.X.Dims()
	names := make([]string, p)
	names[0] = "const"
	for j := 1; j < p; j++ {
		names[j] = fmt.Sprintf("x%d", j)
	}
	return names
}

// Dataset returns the sample as a dataset with the response in a
// column named "y", followed by the columns of the design matrix.
func (s *Sample) Dataset() statmodel.Dataset {

	n, p := s.X.Dims()

	da := make([][]float64, p+1)
	da[0] = make([]float64, n)
	for i := range da[0] {
		da[0][i] = s.Y.AtVec(i)
	}
	for j := 0; j < p; j++ {
		da[j+1] = mat.Col(nil, j, s.X)
	}

	names := append([]string{"y"}, s.Names()...)

	return statmodel.NewDataset(da, names)
}
