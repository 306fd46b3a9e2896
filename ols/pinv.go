package ols

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Singular values below this multiple of the largest singular value
// are treated as zero.
const pinvRcond = 1e-15

// pseudoInverse returns the Moore-Penrose inverse of the square matrix
// a, and the numerical rank of a.
func pseudoInverse(a *mat.Dense) (*mat.Dense, int, error) {

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, errors.New("SVD factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	tol := 0.0
	if len(sv) > 0 {
		tol = pinvRcond * float64(len(sv)) * sv[0]
	}

	// A+ = V * diag(1/s) * U'
	r, c := a.Dims()
	sinv := mat.NewDense(c, r, nil)
	var rank int
	for i, s := range sv {
		if s > tol {
			sinv.Set(i, i, 1/s)
			rank++
		}
	}

	var vs, pinv mat.Dense
	vs.Mul(&v, sinv)
	pinv.Mul(&vs, u.T())

	return &pinv, rank, nil
}
