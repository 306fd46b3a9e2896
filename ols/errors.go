package ols

import "errors"

var (
	// ErrDimensionMismatch is returned when the design matrix and the
	// response have different numbers of rows, or when the variable
	// names do not match the columns of the design matrix.
	ErrDimensionMismatch = errors.New("ols: dimension mismatch")

	// ErrSingularDesignMatrix is returned when X'X can not be
	// inverted, i.e. the columns of the design matrix are collinear or
	// there are fewer observations than columns.
	ErrSingularDesignMatrix = errors.New("ols: singular design matrix")

	// ErrInsufficientDegreesOfFreedom is returned when the number of
	// observations does not exceed the number of columns.
	ErrInsufficientDegreesOfFreedom = errors.New("ols: insufficient degrees of freedom")

	// ErrInvalidArgument is returned for configuration values outside
	// their domain, e.g. a significance level outside (0, 1).
	ErrInvalidArgument = errors.New("ols: invalid argument")
)
