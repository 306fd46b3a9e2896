package statmodel

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Dataset is a collection of named, equal-length columns.  Column j
// holds the values of variable j for every observation.
type Dataset struct {
	data  [][]float64
	names []string
}

// NewDataset returns a Dataset holding the given columns.  The columns
// are not copied.
func NewDataset(data [][]float64, names []string) Dataset {

	if len(data) != len(names) {
		msg := fmt.Sprintf("NewDataset: %d columns but %d names\n", len(data), len(names))
		panic(msg)
	}

	for j := range data {
		if len(data[j]) != len(data[0]) {
			msg := fmt.Sprintf("NewDataset: column '%s' has length %d, expected %d\n",
				names[j], len(data[j]), len(data[0]))
			panic(msg)
		}
	}

	return Dataset{
		data:  data,
		names: names,
	}
}

// Data returns the columns of the dataset.
func (ds Dataset) Data() [][]float64 {
	return ds.data
}

// Names returns the variable names.
func (ds Dataset) Names() []string {
	return ds.names
}

// NumObs returns the number of observations.
func (ds Dataset) NumObs() int {
	if len(ds.data) == 0 {
		return 0
	}
	return len(ds.data[0])
}

// NumVar returns the number of variables.
func (ds Dataset) NumVar() int {
	return len(ds.data)
}

// Pos returns the position of the named variable, or -1 if it is not
// present.
func (ds Dataset) Pos(name string) int {
	for j, na := range ds.names {
		if na == name {
			return j
		}
	}
	return -1
}

// Get returns the column for the named variable, or nil if it is not
// present.
func (ds Dataset) Get(name string) []float64 {
	j := ds.Pos(name)
	if j == -1 {
		return nil
	}
	return ds.data[j]
}

// BaseResultser is a fitted model that can produce inferential results
// for its coefficients.
type BaseResultser interface {
	Names() []string
	Params() []float64
	VCov() []float64
	StdErr() []float64
	TStats() []float64
	PValues() []float64
	ConfInt() ([]float64, []float64)
}

// BaseResults contains the coefficient estimates of a fitted
// regression model along with their sampling covariance, and the
// Student-t based inference derived from them.  All values are
// computed when the BaseResults is created and the returned slices
// should not be modified.
type BaseResults struct {
	params []float64
	xnames []string

	// Vectorized (row-major) covariance matrix of params
	vcov []float64

	// Degrees of freedom of the reference t distribution
	df float64

	// Significance level for the confidence intervals
	alpha float64

	stderr  []float64
	tstats  []float64
	pvalues []float64
	lcb     []float64
	ucb     []float64
	tcrit   float64
}

// NewBaseResults returns a BaseResults for the given estimates.  The
// covariance matrix vcov is p x p in row-major order, where p is the
// number of parameters.
func NewBaseResults(params []float64, xnames []string, vcov []float64, df, alpha float64) BaseResults {

	p := len(params)
	if len(vcov) != p*p {
		msg := fmt.Sprintf("NewBaseResults: vcov has length %d, expected %d\n", len(vcov), p*p)
		panic(msg)
	}

	rslt := BaseResults{
		params: params,
		xnames: xnames,
		vcov:   vcov,
		df:     df,
		alpha:  alpha,
	}
	rslt.infer()

	return rslt
}

func (rslt *BaseResults) infer() {

	p := len(rslt.params)
	rslt.stderr = make([]float64, p)
	rslt.tstats = make([]float64, p)
	rslt.pvalues = make([]float64, p)
	rslt.lcb = make([]float64, p)
	rslt.ucb = make([]float64, p)

	td := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: rslt.df}
	rslt.tcrit = td.Quantile(1 - rslt.alpha/2)

	for j, b := range rslt.params {
		v := rslt.vcov[j*p+j]
		if v < 0 {
			// Rounding error can push a zero variance slightly negative
			v = 0
		}
		se := math.Sqrt(v)
		rslt.stderr[j] = se
		if se == 0 && b == 0 {
			// 0/0: no evidence against a zero coefficient
			rslt.tstats[j] = 0
		} else {
			rslt.tstats[j] = b / se
		}
		rslt.pvalues[j] = 2 * td.Survival(math.Abs(rslt.tstats[j]))
		rslt.lcb[j] = b - rslt.tcrit*se
		rslt.ucb[j] = b + rslt.tcrit*se
	}
}

// Names returns the covariate names for the variables in the model.
func (rslt *BaseResults) Names() []string {
	return rslt.xnames
}

// Params returns the point estimates for the parameters in the model.
func (rslt *BaseResults) Params() []float64 {
	return rslt.params
}

// VCov returns the sampling variance/covariance matrix for the
// parameters in the model.  The matrix is vectorized to one dimension.
func (rslt *BaseResults) VCov() []float64 {
	return rslt.vcov
}

// DF returns the degrees of freedom of the reference t distribution.
func (rslt *BaseResults) DF() float64 {
	return rslt.df
}

// Alpha returns the significance level used for the confidence intervals.
func (rslt *BaseResults) Alpha() float64 {
	return rslt.alpha
}

// StdErr returns the standard errors for the parameters in the model.
func (rslt *BaseResults) StdErr() []float64 {
	return rslt.stderr
}

// TStats returns the t-statistics (the parameter estimates divided by
// the standard errors).
func (rslt *BaseResults) TStats() []float64 {
	return rslt.tstats
}

// PValues returns the two-sided p-values for the null hypothesis that
// each parameter's population value is equal to zero.
func (rslt *BaseResults) PValues() []float64 {
	return rslt.pvalues
}

// CritValue returns the quantile of the reference t distribution used
// to form the confidence intervals.
func (rslt *BaseResults) CritValue() float64 {
	return rslt.tcrit
}

// ConfInt returns the lower and upper confidence bounds for the
// parameters, at coverage level 1 - alpha.
func (rslt *BaseResults) ConfInt() ([]float64, []float64) {
	return rslt.lcb, rslt.ucb
}

// SummaryTable holds the summary values for a fitted model.
type SummaryTable struct {

	// Title
	Title string

	// Column names
	ColNames []string

	// Formatters for the column values
	ColFmt []Fmter

	// Cols[j] is the j^th column.  It's concrete type should
	// be an array, e.g. of numbers or strings.
	Cols []interface{}

	// Values at the top of the summary
	Top []string

	// Messages displayed below the table
	Msg []string

	// Total width of the table
	tw int
}

// Draw a line constructed of the given character filling the width of
// the table.
func (s *SummaryTable) line(c string) string {
	return strings.Repeat(c, s.tw) + "\n"
}

// padTop ensures that all fields in the top part of the table have
// the same width.
func (s *SummaryTable) padTop() {

	var w int
	for _, x := range s.Top {
		if len(x) > w {
			w = len(x)
		}
	}

	for i, x := range s.Top {
		s.Top[i] = x + strings.Repeat(" ", w-len(x))
	}
}

// Construct the upper part of the table, two summary values per line.
func (s *SummaryTable) top(gap int) string {

	var b bytes.Buffer

	for j, x := range s.Top {
		b.WriteString(x)
		if j%2 == 1 {
			b.WriteString("\n")
		} else {
			b.WriteString(strings.Repeat(" ", gap))
		}
	}

	if len(s.Top)%2 == 1 {
		b.WriteString("\n")
	}

	return b.String()
}

// Fmter formats the elements of an array of values.
type Fmter func(interface{}, string) []string

// FmtStrings left-aligns an array of strings to a common width, which
// is at least the width of the column header h.
func FmtStrings(x interface{}, h string) []string {
	y := x.([]string)
	m := len(h)
	for i := range y {
		if len(y[i]) > m {
			m = len(y[i])
		}
	}
	c := fmt.Sprintf("%%-%ds", m)
	z := make([]string, len(y))
	for i := range y {
		z[i] = fmt.Sprintf(c, y[i])
	}
	return z
}

// FmtFloats formats an array of numbers with four decimal places.
func FmtFloats(x interface{}, h string) []string {
	y := x.([]float64)
	s := make([]string, len(y))
	for i := range y {
		s[i] = fmt.Sprintf("%12.4f", y[i])
	}
	return s
}

// FmtPValues formats an array of p-values, switching to scientific
// notation for very small values.
func FmtPValues(x interface{}, h string) []string {
	y := x.([]float64)
	s := make([]string, len(y))
	for i := range y {
		if y[i] < 1e-4 {
			s[i] = fmt.Sprintf("%12.2e", y[i])
		} else {
			s[i] = fmt.Sprintf("%12.4f", y[i])
		}
	}
	return s
}

// String returns the table as a string.
func (s *SummaryTable) String() string {

	s.padTop()

	var tab [][]string
	var wx []int
	for j, c := range s.Cols {
		u := s.ColFmt[j](c, s.ColNames[j])
		tab = append(tab, u)
		w := len(s.ColNames[j])
		if len(u) > 0 && len(u[0]) > w {
			w = len(u[0])
		}
		wx = append(wx, w+2)
	}

	gap := 10

	// Get the total width of the table
	s.tw = 0
	for _, w := range wx {
		s.tw += w
	}
	if s.tw < len(s.Title) {
		s.tw = len(s.Title)
	}
	if len(s.Top) > 0 && s.tw < gap+2*len(s.Top[0]) {
		s.tw = gap + 2*len(s.Top[0])
	}

	var buf bytes.Buffer

	// Center the title
	kr := (s.tw - len(s.Title)) / 2
	if kr < 0 {
		kr = 0
	}
	buf.WriteString(strings.Repeat(" ", kr))
	buf.WriteString(s.Title)
	buf.WriteString("\n")

	buf.WriteString(s.line("="))
	if len(s.Top) > 0 {
		buf.WriteString(s.top(gap))
		buf.WriteString(s.line("-"))
	}

	for j, c := range s.ColNames {
		f := fmt.Sprintf("%%%ds", wx[j])
		buf.WriteString(fmt.Sprintf(f, c))
	}
	buf.WriteString("\n")
	buf.WriteString(s.line("-"))

	if len(tab) > 0 {
		for i := 0; i < len(tab[0]); i++ {
			for j := 0; j < len(tab); j++ {
				f := fmt.Sprintf("%%%ds", wx[j])
				buf.WriteString(fmt.Sprintf(f, tab[j][i]))
			}
			buf.WriteString("\n")
		}
	}
	buf.WriteString(s.line("-"))

	for _, msg := range s.Msg {
		buf.WriteString(msg + "\n")
	}

	return buf.String()
}
