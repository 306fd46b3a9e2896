package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	verbose = false

	var out, errw bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errw.String(), err
}

func TestFitCommand(t *testing.T) {

	out, _, err := execute(t, "fit", "--n", "200", "--k", "2", "--beta", "3,3,3", "--seed", "11", "--show-data")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Ordinary least squares", "const", "x1", "x2", "Num obs:   200", "X (first 5 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFitCommandVerbose(t *testing.T) {

	var out, errw bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs([]string{"fit", "-v", "--n", "50", "--k", "2", "--rho", "0.5", "--seed", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	verbose = false

	if !strings.Contains(errw.String(), "simulated 50 observations with seed 3") {
		t.Errorf("log output %q", errw.String())
	}
}

func TestFitCommandErrors(t *testing.T) {

	if _, _, err := execute(t, "fit", "--k", "2", "--beta", "1,2", "--seed", "1"); err == nil ||
		!strings.Contains(err.Error(), "dimension mismatch") {
		t.Errorf("got %v", err)
	}

	if _, _, err := execute(t, "fit", "--n", "3", "--k", "2", "--beta", "1,1,1", "--seed", "1"); err == nil ||
		!strings.Contains(err.Error(), "insufficient degrees of freedom") {
		t.Errorf("got %v", err)
	}
}

func TestMonteCarloCommand(t *testing.T) {

	prefix := filepath.Join(t.TempDir(), "est")

	out, _, err := execute(t, "montecarlo", "--reps", "50", "--n", "40", "--seed", "5", "--plot", prefix)
	if err != nil {
		t.Fatal(err)
	}

	// go-pretty upper cases the header
	for _, want := range []string{"50 replications, n=40", "coverage 95%", "const", "x1"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	for _, na := range []string{"const", "x1"} {
		fname := prefix + "_" + na + ".png"
		if _, err := os.Stat(fname); err != nil {
			t.Errorf("histogram %s: %v", fname, err)
		}
	}
}
