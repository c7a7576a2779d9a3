package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// WhiteNoiseResult represents the outcome of a portmanteau test for
// autocorrelation. A p-value below the significance threshold means the
// series shows statistically significant autocorrelation and is not white
// noise.
type WhiteNoiseResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	DOF          int
	Alpha        float64
	IsWhiteNoise bool

	// Cumulative statistics and p-values at each lag 1..Lags, matching the
	// per-lag output of standard statistical packages.
	LagStatistics []float64
	LagPValues    []float64
}

// LjungBox performs the Ljung-Box test over the ACF values of a
// CorrelationSeries, aggregating squared autocorrelations up to lag m:
//
//	Q = N(N+2) * sum_{k=1..m} r_k^2 / (N-k)
//
// Q is compared against a chi-squared distribution with m degrees of freedom.
// alpha <= 0 uses DefaultAlpha.
func LjungBox(cs *CorrelationSeries, m int, alpha float64) (*WhiteNoiseResult, error) {
	if err := validatePortmanteau(cs, m); err != nil {
		return nil, err
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	n := float64(cs.N)

	lagStats := make([]float64, m)
	lagPValues := make([]float64, m)

	q := 0.0
	for k := 1; k <= m; k++ {
		r := cs.Values[k]
		q += r * r / (n - float64(k))
		lagStats[k-1] = n * (n + 2) * q
		lagPValues[k-1] = chiSquaredSurvival(lagStats[k-1], k)
	}

	statistic := lagStats[m-1]
	pValue := lagPValues[m-1]

	return &WhiteNoiseResult{
		Statistic:     statistic,
		PValue:        pValue,
		Lags:          m,
		DOF:           m,
		Alpha:         alpha,
		IsWhiteNoise:  pValue >= alpha,
		LagStatistics: lagStats,
		LagPValues:    lagPValues,
	}, nil
}

// BoxPierce performs the Box-Pierce test, the simpler Q = N * sum r_k^2
// variant of the portmanteau statistic. Ljung-Box is preferred for small
// samples; Box-Pierce is kept for comparison.
func BoxPierce(cs *CorrelationSeries, m int, alpha float64) (*WhiteNoiseResult, error) {
	if err := validatePortmanteau(cs, m); err != nil {
		return nil, err
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	n := float64(cs.N)

	lagStats := make([]float64, m)
	lagPValues := make([]float64, m)

	q := 0.0
	for k := 1; k <= m; k++ {
		r := cs.Values[k]
		q += r * r
		lagStats[k-1] = n * q
		lagPValues[k-1] = chiSquaredSurvival(lagStats[k-1], k)
	}

	statistic := lagStats[m-1]
	pValue := lagPValues[m-1]

	return &WhiteNoiseResult{
		Statistic:     statistic,
		PValue:        pValue,
		Lags:          m,
		DOF:           m,
		Alpha:         alpha,
		IsWhiteNoise:  pValue >= alpha,
		LagStatistics: lagStats,
		LagPValues:    lagPValues,
	}, nil
}

func validatePortmanteau(cs *CorrelationSeries, m int) error {
	if cs.Kind != KindACF {
		return fmt.Errorf("portmanteau test requires ACF values, got %s", cs.Kind)
	}
	if m < 1 || m > cs.MaxLag {
		return fmt.Errorf("%w: %d lags requested, ACF has %d", ErrInvalidLag, m, cs.MaxLag)
	}
	return nil
}

// chiSquaredSurvival returns P(X > x) for a chi-squared distribution with k
// degrees of freedom.
func chiSquaredSurvival(x float64, k int) float64 {
	if x < 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(k)}.Survival(x)
}
