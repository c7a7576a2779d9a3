package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/tsident/timeseries"
)

// DefaultAlpha is the significance threshold used when none is given.
const DefaultAlpha = 0.05

// minStationarityObs is the smallest sample either unit-root test accepts.
const minStationarityObs = 10

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64 // Critical values at 1%, 5%, 10%
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller test for unit root.
// The null hypothesis is that the series has a unit root (is non-stationary).
// If p-value < alpha, we reject the null and conclude the series is stationary.
// maxLag <= 0 selects the default lag of floor((n-1)^(1/3)); alpha <= 0 uses
// DefaultAlpha.
func ADF(series *timeseries.Series, maxLag int, alpha float64) (*ADFResult, error) {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	n := series.Len()
	if n < minStationarityObs {
		return nil, fmt.Errorf("%w: ADF needs at least %d observations, got %d",
			ErrInsufficientData, minStationarityObs, n)
	}

	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := series.Diff()

	// Regression: delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i}) + epsilon
	// Testing beta = 0 (unit root) against beta < 0 (stationary).
	nObs := n - maxLag - 1
	if nObs < minStationarityObs {
		return nil, fmt.Errorf("%w: %d usable observations after lag trimming",
			ErrInsufficientData, nObs)
	}

	k := 2 + maxLag
	y := mat.NewVecDense(nObs, nil)
	x := mat.NewDense(nObs, k, nil)

	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y.SetVec(i, diff.Values[t])

		// row = [1, y_{t-1}, delta_y_{t-1}, ..., delta_y_{t-maxLag}]
		x.Set(i, 0, 1)
		x.Set(i, 1, series.Values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff.Values[t-j])
		}
	}

	coeffs, se, err := olsRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: ADF regression: %v", ErrDegenerateSeries, err)
	}

	// Test statistic is the t-stat for the lagged level coefficient.
	tStat := coeffs[1] / se[1]

	// Critical values for ADF with constant, no trend.
	criticalVals := map[string]float64{
		"1%":  -3.43,
		"5%":  -2.86,
		"10%": -2.57,
	}

	pValue := mackinnonPValue(tStat)

	return &ADFResult{
		Statistic:    tStat,
		PValue:       pValue,
		Lags:         maxLag,
		NObs:         nObs,
		CriticalVals: criticalVals,
		IsStationary: pValue < alpha,
	}, nil
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	CriticalVals map[string]float64
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for stationarity.
// The null hypothesis is that the series is stationary, so the conclusions of
// KPSS and ADF are complementary. regression is "c" for level stationarity or
// "ct" for trend stationarity. nlags <= 0 selects ceil(12*(n/100)^0.25);
// alpha <= 0 uses DefaultAlpha.
func KPSS(series *timeseries.Series, regression string, nlags int, alpha float64) (*KPSSResult, error) {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	n := series.Len()
	if n < minStationarityObs {
		return nil, fmt.Errorf("%w: KPSS needs at least %d observations, got %d",
			ErrInsufficientData, minStationarityObs, n)
	}

	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}

	residuals := make([]float64, n)

	if regression == "ct" {
		// Linear detrending: y = a + b*t + residual
		sumT := 0.0
		sumY := 0.0
		sumTY := 0.0
		sumT2 := 0.0
		for i, v := range series.Values {
			t := float64(i)
			sumT += t
			sumY += v
			sumTY += t * v
			sumT2 += t * t
		}
		nf := float64(n)
		b := (nf*sumTY - sumT*sumY) / (nf*sumT2 - sumT*sumT)
		a := (sumY - b*sumT) / nf

		for i, v := range series.Values {
			residuals[i] = v - a - b*float64(i)
		}
	} else {
		mean := series.Mean()
		for i, v := range series.Values {
			residuals[i] = v - mean
		}
	}

	// Partial sums of the residuals
	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	// Long-run variance via Newey-West with Bartlett weights
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}

	if s2 <= 0 {
		return nil, fmt.Errorf("%w: long-run variance is not positive", ErrDegenerateSeries)
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	kpssStat := etaSq / (float64(n) * float64(n) * s2)

	var criticalVals map[string]float64
	if regression == "ct" {
		criticalVals = map[string]float64{
			"10%": 0.119,
			"5%":  0.146,
			"1%":  0.216,
		}
	} else {
		criticalVals = map[string]float64{
			"10%": 0.347,
			"5%":  0.463,
			"1%":  0.739,
		}
	}

	pValue := kpssPValue(kpssStat, regression)

	// Null is stationarity, so we conclude stationary unless we reject.
	return &KPSSResult{
		Statistic:    kpssStat,
		PValue:       pValue,
		Lags:         nlags,
		CriticalVals: criticalVals,
		IsStationary: pValue >= alpha,
	}, nil
}

// DifferencingRecommendation is the reconciled advice on the differencing
// order d derived from the two stationarity tests.
type DifferencingRecommendation struct {
	// D is the recommended differencing order, capped at 2. When the two
	// tests disagree, D is 0 and DMax is 1: the choice is surfaced to the
	// caller rather than resolved silently.
	D         int
	DMax      int
	Ambiguous bool
	Rationale string
}

// StationarityResult bundles both test verdicts with the reconciled
// differencing recommendation. The verdicts may disagree; Agree reports
// whether they reached the same conclusion on the original series.
type StationarityResult struct {
	ADF            *ADFResult
	KPSS           *KPSSResult
	Alpha          float64
	Agree          bool
	Recommendation DifferencingRecommendation
}

// TestStationarity runs ADF and KPSS on the series and reconciles their
// conclusions into a differencing recommendation:
//
//   - both stationary: d=0
//   - both non-stationary: the first difference is re-tested; d=1 if it comes
//     out stationary, d=2 otherwise (capped at 2)
//   - tests disagree: the ambiguity is surfaced as d=0-or-1 with Ambiguous set
//
// alpha <= 0 uses DefaultAlpha.
func TestStationarity(series *timeseries.Series, alpha float64) (*StationarityResult, error) {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	adf, err := ADF(series, 0, alpha)
	if err != nil {
		return nil, err
	}
	kpss, err := KPSS(series, "c", 0, alpha)
	if err != nil {
		return nil, err
	}

	result := &StationarityResult{
		ADF:   adf,
		KPSS:  kpss,
		Alpha: alpha,
		Agree: adf.IsStationary == kpss.IsStationary,
	}

	switch {
	case adf.IsStationary && kpss.IsStationary:
		result.Recommendation = DifferencingRecommendation{
			D:         0,
			DMax:      0,
			Rationale: "ADF and KPSS both conclude the series is stationary; no differencing needed",
		}

	case !adf.IsStationary && !kpss.IsStationary:
		result.Recommendation = recommendAfterDifferencing(series, alpha)

	default:
		result.Recommendation = DifferencingRecommendation{
			D:         0,
			DMax:      1,
			Ambiguous: true,
			Rationale: fmt.Sprintf(
				"ADF (p=%.3f) and KPSS (p=%.3f) disagree on stationarity; consider d=0 or d=1 and inspect the series",
				adf.PValue, kpss.PValue),
		}
	}

	return result, nil
}

// recommendAfterDifferencing re-tests the first difference of a series both
// tests found non-stationary, deciding between d=1 and d=2.
func recommendAfterDifferencing(series *timeseries.Series, alpha float64) DifferencingRecommendation {
	diff := series.Diff()

	adf, errA := ADF(diff, 0, alpha)
	kpss, errK := KPSS(diff, "c", 0, alpha)

	// If the differenced series is too short to re-test, stop at d=1.
	if errA != nil || errK != nil {
		return DifferencingRecommendation{
			D:         1,
			DMax:      1,
			Rationale: "both tests conclude non-stationary; differenced series too short to re-test for d=2",
		}
	}

	if adf.IsStationary || kpss.IsStationary {
		return DifferencingRecommendation{
			D:         1,
			DMax:      1,
			Rationale: "both tests conclude non-stationary; the first difference tests stationary",
		}
	}

	return DifferencingRecommendation{
		D:         2,
		DMax:      2,
		Rationale: "the first difference still tests non-stationary; a second difference is warranted (capped at d=2)",
	}
}

// olsRegression performs ordinary least squares via the normal equations,
// returning coefficients and their standard errors.
func olsRegression(x *mat.Dense, y *mat.VecDense) (coeffs, stdErrors []float64, err error) {
	n, k := x.Dims()
	if n <= k {
		return nil, nil, fmt.Errorf("ordinary least squares needs more observations (%d) than regressors (%d)", n, k)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, fmt.Errorf("singular design matrix: %v", err)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Residual variance
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	sse := 0.0
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		sse += r * r
	}
	s2 := sse / float64(n-k)

	coeffs = make([]float64, k)
	stdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		stdErrors[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}

	return coeffs, stdErrors, nil
}

// mackinnonPValue approximates the p-value for the ADF statistic using
// interpolation over the MacKinnon (1994) asymptotic critical values for a
// constant-only regression.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		// Linear interpolation towards 1
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}

// kpssPValue approximates the p-value for the KPSS statistic from the
// published critical-value tables.
func kpssPValue(stat float64, regression string) float64 {
	if regression == "ct" {
		// Trend stationarity
		switch {
		case stat > 0.216:
			return 0.01
		case stat > 0.146:
			return 0.05
		case stat > 0.119:
			return 0.10
		default:
			return math.Min(0.10+(0.119-stat)*2, 0.99)
		}
	}

	// Level stationarity
	switch {
	case stat > 0.739:
		return 0.01
	case stat > 0.463:
		return 0.05
	case stat > 0.347:
		return 0.10
	default:
		return math.Min(0.10+(0.347-stat)*0.5, 0.99)
	}
}
