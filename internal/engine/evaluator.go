package engine

import (
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/metrics"
)

// Evaluate applies a rule condition to a snapshot. A metric missing from
// the snapshot never triggers. EQ is an exact comparison; thresholds and
// snapshot values share the same two-decimal precision.
func Evaluate(cond domain.RuleCondition, snap metrics.Snapshot) bool {
	value, ok := snap.Lookup(cond.Metric)
	if !ok {
		return false
	}

	switch cond.Operator {
	case domain.OperatorGT:
		return value > cond.Value
	case domain.OperatorLT:
		return value < cond.Value
	case domain.OperatorEQ:
		return value == cond.Value
	default:
		return false
	}
}
