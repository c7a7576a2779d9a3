package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/tsident/timeseries"
)

// ConfidenceLevel is the two-sided confidence level used for correlation bounds.
type ConfidenceLevel float64

// Supported confidence levels.
const (
	Confidence90 ConfidenceLevel = 0.90
	Confidence95 ConfidenceLevel = 0.95
	Confidence99 ConfidenceLevel = 0.99
)

// Valid reports whether the confidence level is one of the supported values.
func (c ConfidenceLevel) Valid() bool {
	switch c {
	case Confidence90, Confidence95, Confidence99:
		return true
	}
	return false
}

// zScore returns the two-sided standard normal quantile for the level,
// e.g. 1.96 for 95%.
func (c ConfidenceLevel) zScore() float64 {
	return distuv.UnitNormal.Quantile(0.5 + float64(c)/2)
}

// CorrelationKind identifies which correlation function a CorrelationSeries holds.
type CorrelationKind int

const (
	KindACF CorrelationKind = iota
	KindPACF
)

func (k CorrelationKind) String() string {
	if k == KindPACF {
		return "PACF"
	}
	return "ACF"
}

// CorrelationSeries holds ACF or PACF values for lags 0..MaxLag together with
// the confidence band used to judge significance. It is immutable once computed.
type CorrelationSeries struct {
	Kind        CorrelationKind
	Lags        []int
	Values      []float64
	ConfBound   float64 // symmetric band: z(confidence) / sqrt(N)
	Significant []bool  // |value| > ConfBound; lag 0 is always false
	N           int     // length of the source series
	MaxLag      int
	Confidence  ConfidenceLevel
}

// SignificantLags returns the lags (excluding lag 0) whose values exceed the
// confidence band.
func (cs *CorrelationSeries) SignificantLags() []int {
	var significant []int
	for i := 1; i < len(cs.Values); i++ {
		if cs.Significant[i] {
			significant = append(significant, i)
		}
	}
	return significant
}

// SameParameters reports whether two correlation series were computed under
// the same max lag and confidence level.
func (cs *CorrelationSeries) SameParameters(other *CorrelationSeries) bool {
	return cs.MaxLag == other.MaxLag && cs.Confidence == other.Confidence
}

// ACF calculates the autocorrelation function for lags 0 to maxLag with a
// confidence band of z(level)/sqrt(N). The autocovariances use the full-sample
// mean and the denominator-N estimator so values are comparable across lags.
func ACF(series *timeseries.Series, maxLag int, level ConfidenceLevel) (*CorrelationSeries, error) {
	acf, err := acfValues(series, maxLag, level)
	if err != nil {
		return nil, err
	}
	return newCorrelationSeries(KindACF, acf, series.Len(), maxLag, level), nil
}

// PACF calculates the partial autocorrelation function for lags 0 to maxLag
// using the Durbin-Levinson recursion. The same confidence band as ACF is
// used, which is standard practice.
func PACF(series *timeseries.Series, maxLag int, level ConfidenceLevel) (*CorrelationSeries, error) {
	acf, err := acfValues(series, maxLag, level)
	if err != nil {
		return nil, err
	}

	pacf := durbinLevinson(acf)

	return newCorrelationSeries(KindPACF, pacf, series.Len(), maxLag, level), nil
}

// durbinLevinson runs the Durbin-Levinson recursion over autocorrelation
// values for lags 0..maxLag, returning the partial autocorrelations.
func durbinLevinson(acf []float64) []float64 {
	maxLag := len(acf) - 1

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0 // PACF at lag 0 is 1 by convention; it is excluded from testing

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	if maxLag >= 1 {
		phi[1][1] = acf[1]
		pacf[1] = acf[1]
	}

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		// A vanishing denominator means the recursion has become degenerate
		// (the shorter-lag fit is already exact). Force the coefficient to
		// zero and carry the previous row forward so later lags still see
		// valid shorter-lag coefficients.
		if math.Abs(den) < 1e-12 {
			pacf[k] = 0
			copy(phi[k][1:k], phi[k-1][1:k])
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf
}

// acfValues validates inputs and computes raw ACF values for lags 0..maxLag.
func acfValues(series *timeseries.Series, maxLag int, level ConfidenceLevel) ([]float64, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("unsupported confidence level %v (use 0.90, 0.95, or 0.99)", float64(level))
	}

	n := series.Len()
	if n < 3 {
		return nil, fmt.Errorf("%w: %d observations, need at least 3", ErrInsufficientData, n)
	}
	if maxLag < 1 || maxLag >= n {
		return nil, fmt.Errorf("%w: maxLag %d for series of length %d", ErrInvalidLag, maxLag, n)
	}

	for i, v := range series.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value at index %d", ErrDegenerateSeries, i)
		}
	}

	mean := series.Mean()
	variance := 0.0
	for _, v := range series.Values {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil, fmt.Errorf("%w: zero variance", ErrDegenerateSeries)
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf, nil
}

func newCorrelationSeries(kind CorrelationKind, values []float64, n, maxLag int, level ConfidenceLevel) *CorrelationSeries {
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}

	bound := level.zScore() / math.Sqrt(float64(n))

	significant := make([]bool, len(values))
	for i := 1; i < len(values); i++ {
		significant[i] = math.Abs(values[i]) > bound
	}

	return &CorrelationSeries{
		Kind:        kind,
		Lags:        lags,
		Values:      values,
		ConfBound:   bound,
		Significant: significant,
		N:           n,
		MaxLag:      maxLag,
		Confidence:  level,
	}
}
