package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/djlacombe/Hands-on-Econometrics/ols"
	"github.com/djlacombe/Hands-on-Econometrics/synth"
)

type fitOptions struct {
	n        int
	k        int
	beta     []float64
	noise    float64
	seed     uint64
	alpha    float64
	rho      float64
	pinv     bool
	showData bool
}

func newFitCmd() *cobra.Command {

	opts := &fitOptions{}

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Simulate one data set and fit it by least squares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			return runFit(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.n, "n", 1000, "Number of observations")
	cmd.Flags().IntVar(&opts.k, "k", 2, "Number of explanatory variables, not counting the intercept")
	cmd.Flags().Float64SliceVar(&opts.beta, "beta", []float64{3, 3, 3}, "True coefficients, intercept first")
	cmd.Flags().Float64Var(&opts.noise, "noise", 1, "Standard deviation of the errors")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (default: from the clock)")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0.05, "Significance level of the confidence intervals")
	cmd.Flags().Float64Var(&opts.rho, "rho", 0, "Correlation between every pair of explanatory variables")
	cmd.Flags().BoolVar(&opts.pinv, "pinv", false, "Use the pseudo-inverse if X'X is singular")
	cmd.Flags().BoolVar(&opts.showData, "show-data", false, "Print the first rows of the simulated data")

	return cmd
}

// equicorrelation returns the k x k matrix with unit diagonal and rho
// elsewhere.
func equicorrelation(k int, rho float64) *mat.SymDense {
	c := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			if i == j {
				c.SetSym(i, j, 1)
			} else {
				c.SetSym(i, j, rho)
			}
		}
	}
	return c
}

func runFit(cmd *cobra.Command, opts *fitOptions) error {

	log := logger(cmd.ErrOrStderr())

	cfg := synth.Config{
		N:        opts.n,
		K:        opts.k,
		Beta:     opts.beta,
		NoiseStd: opts.noise,
		Seed:     &opts.seed,
	}
	if opts.rho != 0 && opts.k > 1 {
		cfg.Cov = equicorrelation(opts.k, opts.rho)
	}

	sample, err := cfg.Generate()
	if err != nil {
		return err
	}
	if log != nil {
		log.Printf("simulated %d observations with seed %d", opts.n, sample.Seed)
	}

	out := cmd.OutOrStdout()
	if opts.showData {
		m := opts.n
		if m > 5 {
			m = 5
		}
		fmt.Fprintf(out, "X (first %d rows):\n%v\n\n", m, mat.Formatted(sample.X.Slice(0, m, 0, opts.k+1)))
		fmt.Fprintf(out, "y (first %d rows):\n%v\n\n", m, mat.Formatted(sample.Y.SliceVec(0, m)))
	}

	model, err := ols.NewOLS(sample.X, sample.Y, &ols.OLSConfig{
		Log:           log,
		Alpha:         opts.alpha,
		Names:         sample.Names(),
		PseudoInverse: opts.pinv,
	})
	if err != nil {
		return err
	}

	result, err := model.Fit()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%v\n", result.Summary())

	return nil
}
