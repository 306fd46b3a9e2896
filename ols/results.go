package ols

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/djlacombe/Hands-on-Econometrics/statmodel"
)

// OLSResults describes the results of a fitted linear regression.
type OLSResults struct {
	statmodel.BaseResults

	model *OLS

	nobs int

	// Numerical rank of the design matrix
	rank int

	// Unbiased estimate of the error variance
	scale float64

	// Residual sum of squares
	rss float64

	resid  []float64
	fitted []float64

	hasConst    bool
	rsquared    float64
	adjrsquared float64
	loglike     float64
}

// Coefficient holds the estimate and inferential results for a single
// column of the design matrix.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
	Lower    float64
	Upper    float64
}

func (rslt *OLSResults) diagnostics() {

	y := rslt.model.y
	n := rslt.nobs

	// The total sum of squares is centered when the model has an
	// intercept and uncentered otherwise.
	var ybar float64
	if rslt.hasConst {
		ybar = mat.Sum(y) / float64(n)
	}
	var tss float64
	for i := 0; i < n; i++ {
		d := y.AtVec(i) - ybar
		tss += d * d
	}

	// A constant response leaves nothing to explain.  The fit is then
	// perfect if the residuals vanish and R-squared is undefined
	// otherwise.
	if tss == 0 {
		if rslt.rss == 0 {
			rslt.rsquared = 1
			rslt.adjrsquared = 1
		} else {
			rslt.rsquared = math.NaN()
			rslt.adjrsquared = math.NaN()
		}
		rslt.loglike = logLike(rslt.rss, n)
		return
	}

	rslt.rsquared = 1 - rslt.rss/tss

	dft := float64(n)
	if rslt.hasConst {
		dft--
	}
	rslt.adjrsquared = 1 - (1-rslt.rsquared)*dft/rslt.DF()

	rslt.loglike = logLike(rslt.rss, n)
}

// Model returns the model that was fit to produce these results.
func (rslt *OLSResults) Model() *OLS {
	return rslt.model
}

// NumObs returns the number of observations used in the fit.
func (rslt *OLSResults) NumObs() int {
	return rslt.nobs
}

// Rank returns the numerical rank of the design matrix.  It is less than
// the number of columns only if the pseudo-inverse was used.
func (rslt *OLSResults) Rank() int {
	return rslt.rank
}

// Scale returns the estimated error variance, the residual sum of
// squares divided by the residual degrees of freedom.
func (rslt *OLSResults) Scale() float64 {
	return rslt.scale
}

// RSS returns the residual sum of squares.
func (rslt *OLSResults) RSS() float64 {
	return rslt.rss
}

// Resid returns the residuals y - X*beta.
func (rslt *OLSResults) Resid() []float64 {
	return rslt.resid
}

// RSquared returns the coefficient of determination.
func (rslt *OLSResults) RSquared() float64 {
	return rslt.rsquared
}

// AdjRSquared returns the coefficient of determination adjusted for
// the number of coefficients.
func (rslt *OLSResults) AdjRSquared() float64 {
	return rslt.adjrsquared
}

// LogLike returns the Gaussian log-likelihood of the fitted model.
func (rslt *OLSResults) LogLike() float64 {
	return rslt.loglike
}

// AIC returns the Akaike information criterion.
func (rslt *OLSResults) AIC() float64 {
	return -2*rslt.loglike + 2*float64(rslt.rank)
}

// BIC returns the Bayesian information criterion.
func (rslt *OLSResults) BIC() float64 {
	return -2*rslt.loglike + float64(rslt.rank)*math.Log(float64(rslt.nobs))
}

// FittedValues returns the fitted values of the regression.  If x is
// nil, the fitted values are based on the data used to fit the model.
// Otherwise x must have the same columns as the training design matrix.
func (rslt *OLSResults) FittedValues(x mat.Matrix) []float64 {

	if x == nil {
		return rslt.fitted
	}

	n, k := x.Dims()
	if k != len(rslt.Params()) {
		msg := fmt.Sprintf("FittedValues: data has %d columns, model has %d\n", k, len(rslt.Params()))
		panic(msg)
	}

	var fv mat.VecDense
	fv.MulVec(x, mat.NewVecDense(k, rslt.Params()))

	out := make([]float64, n)
	for i := range out {
		out[i] = fv.AtVec(i)
	}
	return out
}

// Coefficients returns the results for every coefficient, in the
// order of the columns of the design matrix.
func (rslt *OLSResults) Coefficients() []Coefficient {

	names := rslt.Names()
	params := rslt.Params()
	se := rslt.StdErr()
	ts := rslt.TStats()
	pv := rslt.PValues()
	lcb, ucb := rslt.ConfInt()

	co := make([]Coefficient, len(params))
	for j := range co {
		co[j] = Coefficient{
			Name:     names[j],
			Estimate: params[j],
			StdErr:   se[j],
			TStat:    ts[j],
			PValue:   pv[j],
			Lower:    lcb[j],
			Upper:    ucb[j],
		}
	}

	return co
}

// OLSSummary summarizes a fitted linear regression.
type OLSSummary struct {
	results *OLSResults

	// Messages that are appended to the table
	messages []string
}

// Summary returns a summary table of the model results.
func (rslt *OLSResults) Summary() *OLSSummary {

	sum := &OLSSummary{
		results: rslt,
	}

	if rslt.rank < len(rslt.Params()) {
		msg := fmt.Sprintf("The design matrix has rank %d < %d, the pseudo-inverse was used.",
			rslt.rank, len(rslt.Params()))
		sum.messages = append(sum.messages, msg)
	}

	return sum
}

// String returns a string representation of the summary table.
func (rs *OLSSummary) String() string {

	rslt := rs.results
	cl := 100 * (1 - rslt.Alpha())

	sum := &statmodel.SummaryTable{
		Title: "Ordinary least squares regression",
		Top: []string{
			fmt.Sprintf("Num obs:   %d", rslt.nobs),
			fmt.Sprintf("Resid DF:  %.0f", rslt.DF()),
			fmt.Sprintf("Scale:     %f", rslt.scale),
			fmt.Sprintf("R-squared: %.4f", rslt.rsquared),
			fmt.Sprintf("Adj R2:    %.4f", rslt.adjrsquared),
			fmt.Sprintf("Log like:  %.4f", rslt.loglike),
			fmt.Sprintf("AIC:       %.4f", rslt.AIC()),
			fmt.Sprintf("BIC:       %.4f", rslt.BIC()),
		},
		ColNames: []string{"Variable", "Parameter", "SE", "T-stat", "P-value",
			fmt.Sprintf("LCB %g%%", cl), fmt.Sprintf("UCB %g%%", cl)},
		ColFmt: []statmodel.Fmter{statmodel.FmtStrings, statmodel.FmtFloats, statmodel.FmtFloats,
			statmodel.FmtFloats, statmodel.FmtPValues, statmodel.FmtFloats, statmodel.FmtFloats},
		Msg: rs.messages,
	}

	lcb, ucb := rslt.ConfInt()
	sum.Cols = []interface{}{
		rslt.Names(),
		rslt.Params(),
		rslt.StdErr(),
		rslt.TStats(),
		rslt.PValues(),
		lcb,
		ucb,
	}

	return sum.String()
}
