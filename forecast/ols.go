package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target length does not match training rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
)

// OLSRegression computes ordinary least squares using QR factorization.
type OLSRegression struct {
	coef      []float64
	intercept float64
}

// NewOLSRegression returns an unfit OLS model. The intercept is always fit.
func NewOLSRegression() *OLSRegression {
	return &OLSRegression{}
}

// Fit solves for the coefficients mapping the columns of x to the single
// column of y.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, _ := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	xi := withInterceptColumn(x)
	_, n := xi.Dims()

	qr := new(mat.QR)
	qr.Factorize(xi)

	q := new(mat.Dense)
	r := new(mat.Dense)
	qr.QTo(q)
	qr.RTo(r)

	yq := new(mat.Dense)
	yq.Mul(y.T(), q)

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	o.intercept = c[0]
	o.coef = c[1:]
	return nil
}

// Predict evaluates the fit model on each row of x.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	xi := withInterceptColumn(x)
	coef := append([]float64{o.intercept}, o.coef...)
	n := len(coef)

	xn, _ := xi.T().Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, xi.T())

	out := make([]float64, len(res.RawRowView(0)))
	copy(out, res.RawRowView(0))
	return out, nil
}

// Score returns the coefficient of determination of the fit model evaluated
// on x against y.
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	return stat.RSquaredFrom(res, mat.Col(nil, 0, y), nil), nil
}

// Intercept returns the fit intercept.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a copy of the fit coefficients.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// withInterceptColumn prepends a column of ones to x.
func withInterceptColumn(x mat.Matrix) *mat.Dense {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)

	var stacked mat.Dense
	stacked.Stack(onesMx, x.T())

	var out mat.Dense
	out.CloneFrom(stacked.T())
	return &out
}
