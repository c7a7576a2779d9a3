// Package identify implements Box-Jenkins model identification.
//
// Given the ACF and PACF of a series, the package labels each correlation
// sequence's decay pattern and maps the joint pattern through the classic
// identification table to ranked ARIMA(p,d,q) order candidates.
//
// # Classification
//
// Label a correlation sequence as cutoff, tailing, mixed, or inconclusive:
//
//	acf, _ := stats.ACF(series, 20, stats.Confidence95)
//	c := identify.Classify(acf, identify.DefaultPolicy())
//	fmt.Println(c.Pattern, c.CutoffOrder)
//
// The thresholds that define a "clean" cutoff (consecutive non-significant
// lags, how early the cutoff must start, how abrupt the drop must be) are
// policy constants on the Policy struct, not hard-coded.
//
// # Suggestion
//
// Combine both classifications with a differencing recommendation:
//
//	st, _ := stats.TestStationarity(series, 0.05)
//	sug, err := identify.Suggest(acf, pacf, &st.Recommendation, identify.DefaultPolicy())
//	for _, c := range sug.Candidates {
//	    fmt.Printf("ARIMA(%d,%d,%d) [%s] %s\n", c.P, c.D, c.Q, c.Tier, c.Rationale)
//	}
//
// The first candidate is the primary suggestion; alternates follow with their
// own rationales and confidence tiers. Feeding in an ACF and PACF computed
// under different parameters returns ErrMismatchedInput.
package identify
