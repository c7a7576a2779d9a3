package identify

import (
	"errors"
	"fmt"

	"github.com/sartorproj/tsident/stats"
)

// ErrMismatchedInput indicates ACF and PACF correlation series computed under
// different max lags or confidence levels, or passed in the wrong positions.
var ErrMismatchedInput = errors.New("mismatched correlation inputs")

// Tier is a qualitative confidence grade for a suggested model order.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// degrade lowers a tier by one step.
func (t Tier) degrade() Tier {
	if t > TierLow {
		return t - 1
	}
	return TierLow
}

// Candidate is one suggested ARIMA(p,d,q) order with its rationale.
type Candidate struct {
	P, D, Q   int
	Rationale string
	Tier      Tier
}

// Suggestion is the ranked outcome of Box-Jenkins identification. Candidates
// are ordered best first; the classifications that produced them are kept for
// display.
type Suggestion struct {
	Candidates []Candidate
	ACF        Classification
	PACF       Classification
	D          int
	// DAmbiguous is set when the stationarity tests disagreed and the
	// differencing order is a judgment call between D and D+1.
	DAmbiguous bool
}

// Primary returns the top-ranked candidate.
func (s *Suggestion) Primary() Candidate {
	return s.Candidates[0]
}

// patternPair is the lookup key of the identification decision table. Mixed
// and inconclusive labels are normalized to PatternInconclusive before lookup.
type patternPair struct {
	acf, pacf Pattern
}

// suggestContext carries everything a table entry needs to build candidates.
type suggestContext struct {
	acf, pacf Classification
	d         int
	ambiguous bool
	policy    Policy
}

// suggestionTable is the classic Box-Jenkins identification table, the single
// source of truth mapping joint ACF/PACF patterns to model orders:
//
//	ACF tailing, PACF cutoff at p  -> AR(p)
//	ACF cutoff at q, PACF tailing  -> MA(q)
//	both tailing                   -> ARMA(p,q) from the decay onsets
//	both cutoff                    -> low-order ARMA, under-determined
//
// Any mixed or inconclusive label falls through to default candidates.
var suggestionTable = map[patternPair]func(suggestContext) []Candidate{
	{PatternTailing, PatternCutoff}:  suggestAR,
	{PatternCutoff, PatternTailing}:  suggestMA,
	{PatternTailing, PatternTailing}: suggestARMA,
	{PatternCutoff, PatternCutoff}:   suggestAmbiguousARMA,
}

// Suggest maps the joint ACF/PACF pattern to ranked ARIMA order candidates.
// diff supplies the differencing order d; nil means d=0. The two correlation
// series must have been computed with the same max lag and confidence level.
func Suggest(acfCS, pacfCS *stats.CorrelationSeries, diff *stats.DifferencingRecommendation, policy Policy) (*Suggestion, error) {
	if acfCS.Kind != stats.KindACF || pacfCS.Kind != stats.KindPACF {
		return nil, fmt.Errorf("%w: expected ACF and PACF, got %s and %s",
			ErrMismatchedInput, acfCS.Kind, pacfCS.Kind)
	}
	if !acfCS.SameParameters(pacfCS) {
		return nil, fmt.Errorf("%w: ACF(maxLag=%d, confidence=%v) vs PACF(maxLag=%d, confidence=%v)",
			ErrMismatchedInput, acfCS.MaxLag, float64(acfCS.Confidence),
			pacfCS.MaxLag, float64(pacfCS.Confidence))
	}

	policy = policy.withDefaults()

	ctx := suggestContext{
		acf:    Classify(acfCS, policy),
		pacf:   Classify(pacfCS, policy),
		policy: policy,
	}
	if diff != nil {
		ctx.d = diff.D
		ctx.ambiguous = diff.Ambiguous
	}

	key := patternPair{normalize(ctx.acf.Pattern), normalize(ctx.pacf.Pattern)}
	build, ok := suggestionTable[key]
	if !ok {
		build = suggestDefaults
	}

	candidates := build(ctx)
	if ctx.ambiguous {
		for i := range candidates {
			candidates[i].Tier = candidates[i].Tier.degrade()
			candidates[i].Rationale += "; stationarity tests disagree, so d is uncertain"
		}
	}

	return &Suggestion{
		Candidates: candidates,
		ACF:        ctx.acf,
		PACF:       ctx.pacf,
		D:          ctx.d,
		DAmbiguous: ctx.ambiguous,
	}, nil
}

// normalize collapses mixed and inconclusive into a single fallback label so
// the table only deals in cutoff/tailing pairs.
func normalize(p Pattern) Pattern {
	if p == PatternMixed {
		return PatternInconclusive
	}
	return p
}

func suggestAR(ctx suggestContext) []Candidate {
	p := capOrder(ctx.pacf.CutoffOrder, ctx.policy)
	if p == 0 {
		return suggestWhiteNoise(ctx)
	}

	tier := TierMedium
	if ctx.pacf.Clean {
		tier = TierHigh
	}

	candidates := []Candidate{{
		P: p, D: ctx.d, Q: 0,
		Tier: tier,
		Rationale: fmt.Sprintf(
			"PACF cuts off after lag %d while the ACF tails off from lag %d, the signature of an AR(%d) process",
			p, ctx.acf.Onset, p),
	}}

	candidates = append(candidates, Candidate{
		P: p, D: ctx.d, Q: 1,
		Tier: TierLow,
		Rationale: fmt.Sprintf(
			"alternate: an ARMA(%d,1) can mimic the same pattern if a small MA component is present", p),
	})

	return candidates
}

func suggestMA(ctx suggestContext) []Candidate {
	q := capOrder(ctx.acf.CutoffOrder, ctx.policy)
	if q == 0 {
		return suggestWhiteNoise(ctx)
	}

	tier := TierMedium
	if ctx.acf.Clean {
		tier = TierHigh
	}

	candidates := []Candidate{{
		P: 0, D: ctx.d, Q: q,
		Tier: tier,
		Rationale: fmt.Sprintf(
			"ACF cuts off after lag %d while the PACF tails off from lag %d, the signature of an MA(%d) process",
			q, ctx.pacf.Onset, q),
	}}

	candidates = append(candidates, Candidate{
		P: 1, D: ctx.d, Q: q,
		Tier: TierLow,
		Rationale: fmt.Sprintf(
			"alternate: an ARMA(1,%d) can mimic the same pattern if a small AR component is present", q),
	})

	return candidates
}

func suggestARMA(ctx suggestContext) []Candidate {
	p := capOrder(ctx.pacf.Onset, ctx.policy)
	q := capOrder(ctx.acf.Onset, ctx.policy)
	if p == 0 {
		p = 1
	}
	if q == 0 {
		q = 1
	}

	candidates := []Candidate{{
		P: p, D: ctx.d, Q: q,
		Tier: TierMedium,
		Rationale: fmt.Sprintf(
			"both ACF (from lag %d) and PACF (from lag %d) tail off, suggesting a mixed ARMA(%d,%d) process",
			ctx.acf.Onset, ctx.pacf.Onset, p, q),
	}}

	if p != 1 || q != 1 {
		candidates = append(candidates, Candidate{
			P: 1, D: ctx.d, Q: 1,
			Tier:      TierLow,
			Rationale: "alternate: ARMA(1,1) is the usual starting point when both functions tail off",
		})
	}

	return candidates
}

// suggestAmbiguousARMA handles the under-determined case where both
// sequences cut off: few significant lags constrain the order only weakly.
func suggestAmbiguousARMA(ctx suggestContext) []Candidate {
	p := capOrder(ctx.pacf.CutoffOrder, ctx.policy)
	q := capOrder(ctx.acf.CutoffOrder, ctx.policy)
	if p == 0 && q == 0 {
		return suggestWhiteNoise(ctx)
	}

	candidates := []Candidate{{
		P: p, D: ctx.d, Q: q,
		Tier: TierLow,
		Rationale: fmt.Sprintf(
			"both ACF (cutoff %d) and PACF (cutoff %d) cut off early; a low-order ARMA(%d,%d) fits but the order is under-determined",
			q, p, p, q),
	}}

	if p > 0 {
		candidates = append(candidates, Candidate{
			P: p, D: ctx.d, Q: 0,
			Tier:      TierLow,
			Rationale: fmt.Sprintf("alternate: pure AR(%d) from the PACF cutoff alone", p),
		})
	}
	if q > 0 {
		candidates = append(candidates, Candidate{
			P: 0, D: ctx.d, Q: q,
			Tier:      TierLow,
			Rationale: fmt.Sprintf("alternate: pure MA(%d) from the ACF cutoff alone", q),
		})
	}

	return candidates
}

// suggestWhiteNoise covers sequences with no significant lags at all.
func suggestWhiteNoise(ctx suggestContext) []Candidate {
	return []Candidate{{
		P: 0, D: ctx.d, Q: 0,
		Tier:      TierHigh,
		Rationale: "no significant autocorrelation at any lag; the series is consistent with white noise",
	}}
}

// suggestDefaults is the fallback when either pattern is mixed or
// inconclusive: the evidence does not support a specific order, so the usual
// low-order starting points are offered.
func suggestDefaults(ctx suggestContext) []Candidate {
	rationale := fmt.Sprintf(
		"insufficient evidence: ACF is %s and PACF is %s, so no order is well determined",
		ctx.acf.Pattern, ctx.pacf.Pattern)

	return []Candidate{
		{P: 1, D: ctx.d, Q: 0, Tier: TierLow, Rationale: rationale + "; AR(1) offered as a default"},
		{P: 0, D: ctx.d, Q: 1, Tier: TierLow, Rationale: rationale + "; MA(1) offered as a default"},
		{P: 1, D: ctx.d, Q: 1, Tier: TierLow, Rationale: rationale + "; ARMA(1,1) offered as a default"},
	}
}

func capOrder(order int, policy Policy) int {
	if order > policy.MaxOrder {
		return policy.MaxOrder
	}
	if order < 0 {
		return 0
	}
	return order
}
