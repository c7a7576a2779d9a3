package identify

import (
	"math"

	"github.com/sartorproj/tsident/stats"
)

// Pattern labels the decay behavior of a correlation sequence.
type Pattern int

const (
	// PatternCutoff means the sequence drops inside the confidence band
	// abruptly after a small number of lags.
	PatternCutoff Pattern = iota
	// PatternTailing means the magnitude decays gradually across many lags.
	PatternTailing
	// PatternMixed means the sequence is significant without a decreasing
	// envelope, or alternates erratically around the band.
	PatternMixed
	// PatternInconclusive means too few lags were available to apply the
	// classification rules.
	PatternInconclusive
)

func (p Pattern) String() string {
	switch p {
	case PatternCutoff:
		return "cutoff"
	case PatternTailing:
		return "tailing"
	case PatternMixed:
		return "mixed"
	default:
		return "inconclusive"
	}
}

// Policy holds the classification thresholds. The exact values are judgment
// calls rather than theory, so they are configurable instead of hard-coded.
type Policy struct {
	// MinInsigRun is the number of consecutive non-significant lags required
	// to call a genuine cutoff, guarding against single-lag noise.
	MinInsigRun int
	// EarlyCutoffFrac is the fraction of the max lag within which a cutoff
	// must start to count as an early cutoff.
	EarlyCutoffFrac float64
	// CutoffDropFrac is the largest ratio between the first in-band value
	// and the last significant value that still counts as an abrupt drop.
	// A gradual geometric decay slides under the band with a ratio near its
	// decay rate and must be labeled tailing, not cutoff.
	CutoffDropFrac float64
	// MaxOrder caps the p and q orders the suggester will propose.
	MaxOrder int
}

// DefaultPolicy returns the standard classification thresholds: a cutoff
// needs 2 consecutive non-significant lags and must start within the first
// half of the scanned lags, and suggested orders are capped at 5.
func DefaultPolicy() Policy {
	return Policy{
		MinInsigRun:     2,
		EarlyCutoffFrac: 0.5,
		CutoffDropFrac:  0.5,
		MaxOrder:        5,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MinInsigRun <= 0 {
		p.MinInsigRun = 2
	}
	if p.EarlyCutoffFrac <= 0 || p.EarlyCutoffFrac > 1 {
		p.EarlyCutoffFrac = 0.5
	}
	if p.CutoffDropFrac <= 0 || p.CutoffDropFrac > 1 {
		p.CutoffDropFrac = 0.5
	}
	if p.MaxOrder <= 0 {
		p.MaxOrder = 5
	}
	return p
}

// peakTolerance is the slack allowed when requiring run peaks to be
// non-increasing, so that estimation noise does not break a genuine decay.
const peakTolerance = 1.05

// Classification is the pattern label assigned to one correlation sequence.
type Classification struct {
	Kind    stats.CorrelationKind
	Pattern Pattern

	// CutoffOrder is the last significant lag before the sequence stays
	// inside the band. Valid only when Pattern is PatternCutoff; an order of
	// 0 means no lag was significant at all.
	CutoffOrder int

	// Onset is the first significant lag (0 when none are significant).
	// For a tailing sequence it estimates where the decay begins.
	Onset int

	// Clean reports that no significant lag reappears after the cutoff run,
	// i.e. the cutoff is unambiguous.
	Clean bool

	SignificantLags []int
}

// sigRun is a maximal run of consecutive significant lags.
type sigRun struct {
	start, end int // inclusive lag range
	peak       float64
}

// Classify assigns a decay-pattern label to a correlation sequence by
// scanning lags 1..MaxLag against the confidence band:
//
//   - an early sustained drop inside the band is a cutoff at the last
//     significant lag
//   - no early cutoff but run peaks decreasing in magnitude is tailing
//     (geometric or damped-sinusoid decay)
//   - significance without a decreasing envelope is mixed
func Classify(cs *stats.CorrelationSeries, policy Policy) Classification {
	policy = policy.withDefaults()

	c := Classification{
		Kind:            cs.Kind,
		SignificantLags: cs.SignificantLags(),
	}

	maxLag := cs.MaxLag
	if maxLag < 2*policy.MinInsigRun {
		c.Pattern = PatternInconclusive
		return c
	}

	if len(c.SignificantLags) > 0 {
		c.Onset = c.SignificantLags[0]
	}

	// Find the smallest lag where the sequence enters the band and stays
	// there for at least MinInsigRun lags (shorter runs at the very end of
	// the scanned range also count, since there is nothing after them).
	cutoffStart := 0
	for k := 1; k <= maxLag; k++ {
		if cs.Significant[k] {
			continue
		}
		need := policy.MinInsigRun
		if maxLag-k+1 < need {
			need = maxLag - k + 1
		}
		sustained := true
		for j := k; j < k+need; j++ {
			if cs.Significant[j] {
				sustained = false
				break
			}
		}
		if sustained {
			cutoffStart = k
			break
		}
	}

	if cutoffStart > 0 && float64(cutoffStart) <= float64(maxLag)*policy.EarlyCutoffFrac {
		// The drop must be abrupt to be a cutoff. A geometric decay reaches
		// the band with the in-band value still a large fraction of the last
		// significant one; that is tailing and handled below.
		abrupt := cutoffStart == 1 ||
			math.Abs(cs.Values[cutoffStart]) <= policy.CutoffDropFrac*math.Abs(cs.Values[cutoffStart-1])
		if abrupt {
			c.Pattern = PatternCutoff
			c.CutoffOrder = cutoffStart - 1
			c.Clean = true
			for k := cutoffStart; k <= maxLag; k++ {
				if cs.Significant[k] {
					c.Clean = false
					break
				}
			}
			return c
		}
	}

	// No early cutoff. Check for a decaying envelope: the peak magnitude of
	// each successive significant run must be non-increasing.
	runs := significantRuns(cs)
	if len(runs) == 0 {
		// Unreachable in practice: no significant lags always yields an
		// early cutoff at order 0 above.
		c.Pattern = PatternInconclusive
		return c
	}

	decaying := true
	for i := 1; i < len(runs); i++ {
		if runs[i].peak > runs[i-1].peak*peakTolerance {
			decaying = false
			break
		}
	}

	if decaying && len(runs) == 1 {
		// A single long run: require decay within the run itself, otherwise
		// the sequence is significant throughout with no trend.
		run := runs[0]
		first := math.Abs(cs.Values[run.start])
		last := math.Abs(cs.Values[run.end])
		decaying = run.end > run.start && last < first
	}

	if decaying {
		c.Pattern = PatternTailing
		return c
	}

	c.Pattern = PatternMixed
	return c
}

func significantRuns(cs *stats.CorrelationSeries) []sigRun {
	var runs []sigRun
	for k := 1; k <= cs.MaxLag; k++ {
		if !cs.Significant[k] {
			continue
		}
		mag := math.Abs(cs.Values[k])
		if len(runs) > 0 && runs[len(runs)-1].end == k-1 {
			run := &runs[len(runs)-1]
			run.end = k
			if mag > run.peak {
				run.peak = mag
			}
		} else {
			runs = append(runs, sigRun{start: k, end: k, peak: mag})
		}
	}
	return runs
}
