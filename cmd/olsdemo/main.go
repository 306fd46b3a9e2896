// Command olsdemo simulates data from a linear model and analyzes it
// with ordinary least squares.
//
//	olsdemo fit --n 1000 --k 2 --beta 3,3,3 --seed 1
//	olsdemo montecarlo --reps 1000 --n 100 --beta 2,3 --plot est
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "olsdemo",
		Short: "Least squares estimation on simulated data",
		Long: `olsdemo generates data from a known linear model y = X*beta + e and
estimates beta by ordinary least squares, reporting standard errors,
t-statistics, p-values and confidence intervals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newFitCmd())
	rootCmd.AddCommand(newMonteCarloCmd())

	return rootCmd
}

// logger returns a logger writing to w if verbose output was
// requested, otherwise nil.
func logger(w io.Writer) *log.Logger {
	if !verbose {
		return nil
	}
	return log.New(w, "olsdemo: ", log.LstdFlags)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
