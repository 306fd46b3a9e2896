/*
Package ols fits linear regression models by ordinary least squares,
using the closed-form estimator (X'X)^-1 X'y.

Inference for the coefficients (standard errors, t-statistics,
p-values and confidence intervals) is based on the Student t
distribution with N - k degrees of freedom, where N is the number of
observations and k is the number of columns of the design matrix,
counting the intercept column if one is present.

	model, err := ols.NewOLS(x, y, nil)
	if err != nil {
		...
	}
	result, err := model.Fit()
	if err != nil {
		...
	}
	fmt.Printf("%v\n", result.Summary())
*/
package ols
