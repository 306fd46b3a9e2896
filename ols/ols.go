package ols

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/djlacombe/Hands-on-Econometrics/statmodel"
)

// OLS describes a linear regression model y = X*beta + error, to be
// fit by ordinary least squares.
type OLS struct {

	// The design matrix, N x k
	x *mat.Dense

	// The response vector, length N
	y *mat.VecDense

	// Names of the columns of x
	xnames []string

	// Significance level for confidence intervals
	alpha float64

	// If true, use the Moore-Penrose pseudo-inverse when X'X is
	// singular instead of failing.
	pinv bool

	// If not nil, write log messages here
	log *log.Logger
}

// OLSConfig defines configuration parameters for a linear regression.
type OLSConfig struct {

	// A logger to which logging information is written
	Log *log.Logger

	// Alpha is the significance level of the confidence intervals,
	// which have coverage 1 - Alpha.  Zero means 0.05.
	Alpha float64

	// Names of the columns of the design matrix.  If nil, the
	// names are x0, x1, ...
	Names []string

	// PseudoInverse requests that a singular X'X be handled with the
	// Moore-Penrose pseudo-inverse.  By default a singular design is
	// an error.
	PseudoInverse bool
}

// DefaultOLSConfig returns a default configuration struct for a linear
// regression.
func DefaultOLSConfig() *OLSConfig {
	return &OLSConfig{
		Alpha: 0.05,
	}
}

// NewOLS returns an OLS value that can be used to fit the linear
// regression of y on the columns of x.  The data are copied.
func NewOLS(x mat.Matrix, y mat.Vector, config *OLSConfig) (*OLS, error) {

	if config == nil {
		config = DefaultOLSConfig()
	}

	n, k := x.Dims()
	if n == 0 || k == 0 {
		return nil, fmt.Errorf("%w: empty design matrix", ErrInvalidArgument)
	}
	if y.Len() != n {
		return nil, fmt.Errorf("%w: design matrix has %d rows but response has length %d",
			ErrDimensionMismatch, n, y.Len())
	}

	alpha := config.Alpha
	if alpha == 0 {
		alpha = 0.05
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: alpha=%v is not in (0, 1)", ErrInvalidArgument, alpha)
	}

	xnames := config.Names
	if xnames == nil {
		xnames = make([]string, k)
		for j := range xnames {
			xnames[j] = fmt.Sprintf("x%d", j)
		}
	} else if len(xnames) != k {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrDimensionMismatch, len(xnames), k)
	}

	xc := mat.DenseCopyOf(x)
	yc := mat.VecDenseCopyOf(y)

	return &OLS{
		x:      xc,
		y:      yc,
		xnames: xnames,
		alpha:  alpha,
		pinv:   config.PseudoInverse,
		log:    config.Log,
	}, nil
}

// NewOLSFromDataset returns an OLS value for the regression of the
// variable yname on the variables xnames of the dataset.  An intercept
// is only included if one of xnames refers to a constant column.
func NewOLSFromDataset(data statmodel.Dataset, yname string, xnames []string, config *OLSConfig) (*OLS, error) {

	yda := data.Get(yname)
	if yda == nil {
		return nil, fmt.Errorf("%w: outcome variable '%s' not found in dataset", ErrInvalidArgument, yname)
	}

	if len(xnames) == 0 {
		return nil, fmt.Errorf("%w: no covariates", ErrInvalidArgument)
	}

	n := data.NumObs()
	x := mat.NewDense(n, len(xnames), nil)
	for j, na := range xnames {
		xda := data.Get(na)
		if xda == nil {
			return nil, fmt.Errorf("%w: covariate '%s' not found in dataset", ErrInvalidArgument, na)
		}
		x.SetCol(j, xda)
	}

	cfg := DefaultOLSConfig()
	if config != nil {
		c := *config
		cfg = &c
	}
	if cfg.Names == nil {
		cfg.Names = xnames
	}

	return NewOLS(x, mat.NewVecDense(n, yda), cfg)
}

// NumObs returns the number of observations.
func (m *OLS) NumObs() int {
	n, _ := m.x.Dims()
	return n
}

// NumParams returns the number of coefficients, which is the number of
// columns in the design matrix.
func (m *OLS) NumParams() int {
	_, k := m.x.Dims()
	return k
}

// Names returns the names of the columns of the design matrix.
func (m *OLS) Names() []string {
	return m.xnames
}

// hasConst returns true if some column of the design matrix is a
// nonzero constant.
func (m *OLS) hasConst() bool {
	n, k := m.x.Dims()
	for j := 0; j < k; j++ {
		v := m.x.At(0, j)
		if v == 0 {
			continue
		}
		isconst := true
		for i := 1; i < n; i++ {
			if m.x.At(i, j) != v {
				isconst = false
				break
			}
		}
		if isconst {
			return true
		}
	}
	return false
}

// Fit estimates the regression coefficients and their sampling
// covariance.
func (m *OLS) Fit() (*OLSResults, error) {

	n, k := m.x.Dims()

	if n <= k {
		return nil, fmt.Errorf("%w: %d observations for %d coefficients",
			ErrInsufficientDegreesOfFreedom, n, k)
	}

	var xtx mat.Dense
	xtx.Mul(m.x.T(), m.x)

	rank := k
	var xtxi mat.Dense
	if err := xtxi.Inverse(&xtx); err != nil {
		if !m.pinv {
			return nil, fmt.Errorf("%w: %w", ErrSingularDesignMatrix, err)
		}
		if m.log != nil {
			m.log.Printf("ols: X'X is singular (%v), using the pseudo-inverse", err)
		}
		var pi *mat.Dense
		pi, rank, err = pseudoInverse(&xtx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSingularDesignMatrix, err)
		}
		xtxi.CloneFrom(pi)
	}

	var xty mat.VecDense
	xty.MulVec(m.x.T(), m.y)

	var beta mat.VecDense
	beta.MulVec(&xtxi, &xty)

	var fitted mat.VecDense
	fitted.MulVec(m.x, &beta)

	var resid mat.VecDense
	resid.SubVec(m.y, &fitted)

	rss := mat.Dot(&resid, &resid)
	df := float64(n - rank)
	scale := rss / df

	// The covariance is symmetrized, since the LU based inverse of X'X
	// is only symmetric up to rounding.
	vcov := make([]float64, k*k)
	for j1 := 0; j1 < k; j1++ {
		for j2 := 0; j2 <= j1; j2++ {
			v := scale * (xtxi.At(j1, j2) + xtxi.At(j2, j1)) / 2
			vcov[j1*k+j2] = v
			vcov[j2*k+j1] = v
		}
	}

	params := make([]float64, k)
	for j := range params {
		params[j] = beta.AtVec(j)
	}

	rslt := &OLSResults{
		BaseResults: statmodel.NewBaseResults(params, m.xnames, vcov, df, m.alpha),
		model:       m,
		nobs:        n,
		rank:        rank,
		scale:       scale,
		rss:         rss,
		resid:       vecData(&resid),
		fitted:      vecData(&fitted),
		hasConst:    m.hasConst(),
	}
	rslt.diagnostics()

	if m.log != nil {
		m.log.Printf("ols: n=%d k=%d df=%.0f scale=%g R2=%.4f", n, k, df, scale, rslt.rsquared)
	}

	return rslt, nil
}

// Fit is a convenience function that fits the regression of y on the
// columns of x, with confidence intervals at level 1 - alpha.
func Fit(x mat.Matrix, y mat.Vector, alpha float64) (*OLSResults, error) {

	config := DefaultOLSConfig()
	config.Alpha = alpha

	model, err := NewOLS(x, y, config)
	if err != nil {
		return nil, err
	}

	return model.Fit()
}

func vecData(v *mat.VecDense) []float64 {
	x := make([]float64, v.Len())
	for i := range x {
		x[i] = v.AtVec(i)
	}
	return x
}

// logLike returns the Gaussian log-likelihood at the maximum likelihood
// estimate of the error variance.
func logLike(rss float64, n int) float64 {
	nf := float64(n)
	return -nf / 2 * (math.Log(2*math.Pi*rss/nf) + 1)
}
