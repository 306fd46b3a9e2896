package montecarlo

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/djlacombe/Hands-on-Econometrics/ols"
	"github.com/djlacombe/Hands-on-Econometrics/synth"
)

func TestUnbiased(t *testing.T) {

	cfg := Config{
		Replications: 100,
		N:            1000,
		Beta:         []float64{3, 3, 3},
		NoiseStd:     1,
		Seed:         1000,
	}

	study, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// The estimates have standard deviation near 1/sqrt(1000), so
	// their mean over 100 replications is within 0.05 of the truth.
	for j := range cfg.Beta {
		if math.Abs(study.Mean[j]-3) > 0.05 {
			t.Errorf("coefficient %d: mean estimate %f", j, study.Mean[j])
		}
		if math.Abs(study.StdDev[j]-1/math.Sqrt(1000)) > 0.01 {
			t.Errorf("coefficient %d: standard deviation %f", j, study.StdDev[j])
		}
		if len(study.Estimates[j]) != 100 {
			t.Errorf("coefficient %d: %d estimates", j, len(study.Estimates[j]))
		}
	}
}

func TestCoverage(t *testing.T) {

	// The setting of the simple regression study: x ~ U(0, 10)
	cfg := Config{
		Replications: 400,
		N:            100,
		Beta:         []float64{2, 3},
		NoiseStd:     1,
		Seed:         7,
		Uniform:      &synth.Range{Lo: 0, Hi: 10},
	}

	study, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for j, c := range study.Coverage {
		if math.Abs(c-0.95) > 0.06 {
			t.Errorf("coefficient %d: coverage %f", j, c)
		}
		if math.Abs(study.Bias[j]) > 0.1 {
			t.Errorf("coefficient %d: bias %f", j, study.Bias[j])
		}
	}
}

func TestDeterministic(t *testing.T) {

	cfg := Config{
		Replications: 30,
		N:            50,
		Beta:         []float64{1, -1},
		NoiseStd:     2,
		Seed:         42,
		Workers:      1,
	}

	s1, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Workers = 8
	s2, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for j := range s1.Estimates {
		if !floats.Equal(s1.Estimates[j], s2.Estimates[j]) {
			t.Errorf("coefficient %d differs between worker counts", j)
		}
	}
}

func TestCancel(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		Replications: 10,
		N:            20,
		Beta:         []float64{1, 1},
		NoiseStd:     1,
	}

	if _, err := Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestErrors(t *testing.T) {

	if _, err := Run(context.Background(), Config{Beta: []float64{1}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v", err)
	}

	// Two observations can not support an intercept and two slopes
	cfg := Config{
		Replications: 3,
		N:            2,
		Beta:         []float64{1, 1, 1},
		NoiseStd:     1,
	}
	if _, err := Run(context.Background(), cfg); !errors.Is(err, ols.ErrInsufficientDegreesOfFreedom) {
		t.Errorf("got %v", err)
	}
}
