// Package tsident provides Box-Jenkins time series model identification.
//
// TSIdent analyzes a scalar time series and translates its statistical
// signature into ranked ARIMA order suggestions. It follows the classical
// identification methodology: compute the autocorrelation structure, test for
// stationarity and white noise, then read candidate model orders off the
// joint ACF/PACF pattern.
//
// # Features
//
//   - Autocorrelation analysis (ACF, PACF) with configurable confidence bounds
//   - Stationarity tests (ADF, KPSS) reconciled into a differencing recommendation
//   - White-noise tests (Ljung-Box, Box-Pierce)
//   - Pattern classification (cutoff / tailing / mixed) with configurable policy
//   - Ranked ARIMA(p,d,q) suggestions with plain-language rationales
//
// # Quick Start
//
// Identify candidate orders for a series:
//
//	series := timeseries.New(values)
//	acf, _ := stats.ACF(series, 20, stats.Confidence95)
//	pacf, _ := stats.PACF(series, 20, stats.Confidence95)
//	st, _ := stats.TestStationarity(series, 0.05)
//
//	sug, _ := identify.Suggest(acf, pacf, &st.Recommendation, identify.DefaultPolicy())
//	best := sug.Primary() // e.g. ARIMA(1,0,0) with rationale and confidence tier
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Time series data structures and utilities
//   - stats: ACF/PACF, stationarity and white-noise tests
//   - identify: Pattern classification and order suggestion
//   - cmd/tsident: Command-line analysis report
//
// # References
//
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
package tsident
