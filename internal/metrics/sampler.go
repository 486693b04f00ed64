package metrics

import (
	"context"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/logger"
)

// StateCounter reports how many live nodes sit in each lifecycle state
type StateCounter interface {
	CountByState() map[domain.NodeState]int
}

// NodeStateSampler copies state counts into the NodesByState gauge.
// It is a worker.Job, run on an interval by the scheduler.
type NodeStateSampler struct {
	source StateCounter
}

// NewNodeStateSampler creates a sampler reading from source
func NewNodeStateSampler(source StateCounter) *NodeStateSampler {
	return &NodeStateSampler{source: source}
}

// Process samples the current counts
func (s *NodeStateSampler) Process(ctx context.Context) error {
	counts := s.source.CountByState()
	for _, state := range domain.NodeStates() {
		NodesByState.WithLabelValues(string(state)).Set(float64(counts[state]))
	}
	logger.FromContext(ctx).Debug(LogMsgNodeStatesSampled, "counts", counts)
	return nil
}
