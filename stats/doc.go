// Package stats provides statistical tests and analysis functions for time series.
//
// This package covers the three statistical stages of Box-Jenkins model
// identification: autocorrelation analysis, stationarity testing, and
// white-noise testing.
//
// # Autocorrelation Functions
//
// Compute correlation structure with significance bounds:
//
//	acf, err := stats.ACF(series, 20, stats.Confidence95)
//	pacf, err := stats.PACF(series, 20, stats.Confidence95)
//
//	// Values, the confidence band, and per-lag significance flags
//	fmt.Println(acf.Values, acf.ConfBound)
//	fmt.Println(acf.SignificantLags())
//
// # Stationarity Tests
//
// Run both unit-root tests and get a reconciled differencing recommendation:
//
//	// Augmented Dickey-Fuller: H0 = unit root (non-stationary)
//	adf, err := stats.ADF(series, 0, 0.05)
//
//	// KPSS: H0 = stationary
//	kpss, err := stats.KPSS(series, "c", 0, 0.05)
//
//	// Joint recommendation with disagreement surfaced
//	st, err := stats.TestStationarity(series, 0.05)
//	fmt.Printf("d=%d ambiguous=%v\n", st.Recommendation.D, st.Recommendation.Ambiguous)
//
// The two tests have complementary null hypotheses, so they can disagree;
// TestStationarity reports the disagreement instead of resolving it silently.
//
// # White-Noise Tests
//
// Test whether a series is distinguishable from white noise:
//
//	acf, _ := stats.ACF(series, 20, stats.Confidence95)
//	lb, err := stats.LjungBox(acf, 10, 0.05)
//	if lb.IsWhiteNoise {
//	    // no significant autocorrelation up to lag 10
//	}
//
//	// Box-Pierce variant
//	bp, err := stats.BoxPierce(acf, 10, 0.05)
//
// # Errors
//
// All failures are recoverable sentinel errors: ErrInvalidLag,
// ErrInsufficientData, and ErrDegenerateSeries, checkable with errors.Is.
package stats
