package main

import (
	"fmt"
	"image/color"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/djlacombe/Hands-on-Econometrics/montecarlo"
	"github.com/djlacombe/Hands-on-Econometrics/synth"
)

type monteCarloOptions struct {
	reps    int
	n       int
	beta    []float64
	noise   float64
	seed    uint64
	alpha   float64
	lo      float64
	hi      float64
	normal  bool
	workers int
	plot    string
	bins    int
}

func newMonteCarloCmd() *cobra.Command {

	opts := &monteCarloOptions{}

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Study the sampling distribution of the least squares estimates",
		Long: `montecarlo simulates many data sets from the same linear model, fits
each one, and summarizes the distribution of the estimates: their mean,
standard deviation, bias, and the coverage of the confidence intervals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonteCarlo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.reps, "reps", 1000, "Number of simulated data sets")
	cmd.Flags().IntVar(&opts.n, "n", 100, "Observations per data set")
	cmd.Flags().Float64SliceVar(&opts.beta, "beta", []float64{2, 3}, "True coefficients, intercept first")
	cmd.Flags().Float64Var(&opts.noise, "noise", 1, "Standard deviation of the errors")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Seed of the first replication")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0.05, "Significance level of the confidence intervals")
	cmd.Flags().Float64Var(&opts.lo, "lo", 0, "Lower limit of the uniform explanatory variables")
	cmd.Flags().Float64Var(&opts.hi, "hi", 10, "Upper limit of the uniform explanatory variables")
	cmd.Flags().BoolVar(&opts.normal, "normal", false, "Draw standard normal explanatory variables instead of uniform")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent fits (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "Save histograms of the estimates to <plot>_<name>.png")
	cmd.Flags().IntVar(&opts.bins, "bins", 30, "Number of histogram bins")

	return cmd
}

func coefNames(p int) []string {
	names := make([]string, p)
	names[0] = "const"
	for j := 1; j < p; j++ {
		names[j] = fmt.Sprintf("x%d", j)
	}
	return names
}

func runMonteCarlo(cmd *cobra.Command, opts *monteCarloOptions) error {

	cfg := montecarlo.Config{
		Replications: opts.reps,
		N:            opts.n,
		Beta:         opts.beta,
		NoiseStd:     opts.noise,
		Seed:         opts.seed,
		Alpha:        opts.alpha,
		Workers:      opts.workers,
		Log:          logger(cmd.ErrOrStderr()),
	}
	if !opts.normal {
		cfg.Uniform = &synth.Range{Lo: opts.lo, Hi: opts.hi}
	}

	study, err := montecarlo.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	names := coefNames(len(opts.beta))

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%d replications, n=%d", opts.reps, opts.n))
	t.AppendHeader(table.Row{"Coefficient", "True", "Mean", "Std dev", "Bias",
		fmt.Sprintf("Coverage %g%%", 100*(1-opts.alpha))})
	for j, na := range names {
		t.AppendRow(table.Row{
			na,
			fmt.Sprintf("%.4f", study.Beta[j]),
			fmt.Sprintf("%.4f", study.Mean[j]),
			fmt.Sprintf("%.4f", study.StdDev[j]),
			fmt.Sprintf("%+.4f", study.Bias[j]),
			fmt.Sprintf("%.3f", study.Coverage[j]),
		})
	}
	t.Render()

	if opts.plot != "" {
		for j, na := range names {
			fname := fmt.Sprintf("%s_%s.png", opts.plot, na)
			if err := histogram(study.Estimates[j], study.Beta[j], na, opts.bins, fname); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", fname)
		}
	}

	return nil
}

// histogram plots the distribution of the estimates, with a dashed
// line at the true value.
func histogram(est []float64, truth float64, name string, bins int, filename string) error {

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution of %s estimates", name)
	p.X.Label.Text = name
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(est), bins)
	if err != nil {
		return err
	}
	h.FillColor = color.Gray{Y: 180}
	p.Add(h)

	var ymax float64
	for _, b := range h.Bins {
		if b.Weight > ymax {
			ymax = b.Weight
		}
	}

	line, err := plotter.NewLine(plotter.XYs{{X: truth, Y: 0}, {X: truth, Y: ymax}})
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.Width = vg.Points(2)
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
