package trust

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// Aggregator combines per-source trust tuples into a single claim-level tuple
type Aggregator interface {
	Aggregate(tuples []model.TrustTuple) model.TrustTuple
}

// NewAggregator selects an aggregation strategy by name. An empty name
// means the mean strategy.
func NewAggregator(name string) (Aggregator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mean":
		return MeanAggregator{}, nil
	case "weighted":
		return WeightedAggregator{}, nil
	default:
		return nil, fmt.Errorf("unknown trust aggregation %q (expected mean or weighted)", name)
	}
}

// emptyAggregate is the tuple returned when a claim carries no sources
func emptyAggregate() model.TrustTuple {
	return model.TrustTuple{M: 0, C: 0, Source: "aggregate", Details: "no sources provided"}
}

// MeanAggregator averages trust and confidence independently
type MeanAggregator struct{}

func (MeanAggregator) Aggregate(tuples []model.TrustTuple) model.TrustTuple {
	if len(tuples) == 0 {
		return emptyAggregate()
	}

	var mSum, cSum float64
	for _, t := range tuples {
		mSum += t.M
		cSum += t.C
	}
	n := float64(len(tuples))

	return model.TrustTuple{
		M:       mSum / n,
		C:       cSum / n,
		Source:  "aggregate",
		Details: fmt.Sprintf("aggregated over %d sources", len(tuples)),
	}
}

// WeightedAggregator weights each source's trust by its own confidence and
// derives the combined confidence from source count and agreement. Sources
// that disagree widely pull the aggregate confidence down even when each of
// them is individually confident.
type WeightedAggregator struct{}

func (WeightedAggregator) Aggregate(tuples []model.TrustTuple) model.TrustTuple {
	if len(tuples) == 0 {
		return emptyAggregate()
	}

	var cSum float64
	for _, t := range tuples {
		cSum += t.C
	}

	var m float64
	if cSum > 0 {
		for _, t := range tuples {
			m += t.M * t.C
		}
		m /= cSum
	} else {
		for _, t := range tuples {
			m += t.M
		}
		m /= float64(len(tuples))
	}

	var variance float64
	for _, t := range tuples {
		variance += (t.M - m) * (t.M - m)
	}
	variance /= float64(len(tuples))
	agreement := clamp(1.0 - math.Sqrt(variance))

	n := len(tuples)
	c := clamp(0.4 + 0.2*math.Log10(float64(n+1)) + 0.4*agreement)

	return model.TrustTuple{
		M:       m,
		C:       c,
		Source:  "aggregate",
		Details: fmt.Sprintf("n=%d, agreement≈%.2f", n, agreement),
	}
}
