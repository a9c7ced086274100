package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	sdkerrors "cosmossdk.io/errors"

	"github.com/numtools/numtools/types"
)

// ModePolicy selects how ties for the most frequent value are resolved.
type ModePolicy string

const (
	// ModeFirst keeps only the first value, in input order, that reaches the
	// maximal count.
	ModeFirst ModePolicy = "first"
	// ModeAll keeps every value that reaches the maximal count, in input order.
	ModeAll ModePolicy = "all"
)

// ParseModePolicy converts s into a ModePolicy, ignoring case.
func ParseModePolicy(s string) (ModePolicy, error) {
	switch p := ModePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ModeFirst, ModeAll:
		return p, nil
	default:
		return "", fmt.Errorf("invalid mode policy: %s", s)
	}
}

// String implements fmt.Stringer.
func (p ModePolicy) String() string {
	return string(p)
}

// Summary holds the descriptive statistics of a numeric sample.
type Summary struct {
	Count             int
	Mean              float64
	Median            float64
	Mode              []float64
	Variance          float64
	StandardDeviation float64
}

// Describe computes every statistic of values. The mean is computed first
// since the variance and the standard deviation derive from it.
func Describe(values []float64, policy ModePolicy) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, types.ErrEmptyResult
	}

	mean := Mean(values)
	mode, err := Mode(values, policy)
	if err != nil {
		return Summary{}, err
	}
	variance := Variance(values, mean)

	return Summary{
		Count:             len(values),
		Mean:              mean,
		Median:            Median(values),
		Mode:              mode,
		Variance:          variance,
		StandardDeviation: StandardDeviation(variance),
	}, nil
}

// Mean returns the arithmetic mean of values. values must not be empty.
func Mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of values once sorted, or the average of
// the two middle values for an even count. values is left untouched.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Mode returns the most frequent value(s) of values according to policy.
// Candidates are reported in the order they first appear in values.
func Mode(values []float64, policy ModePolicy) ([]float64, error) {
	if len(values) == 0 {
		return nil, types.ErrEmptyResult
	}

	var (
		counts   = make(map[float64]int, len(values))
		order    = make([]float64, 0, len(values))
		maxCount int
	)

	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}

	var modes []float64
	for _, v := range order {
		if counts[v] != maxCount {
			continue
		}
		switch policy {
		case ModeFirst, "":
			return []float64{v}, nil
		case ModeAll:
			modes = append(modes, v)
		default:
			return nil, sdkerrors.Wrapf(types.ErrInvalidConfig, "unknown mode policy %q", policy)
		}
	}
	return modes, nil
}

// Variance returns the population variance of values around mean.
func Variance(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(values))
}

// StandardDeviation returns the non-negative square root of variance.
func StandardDeviation(variance float64) float64 {
	return math.Sqrt(variance)
}
