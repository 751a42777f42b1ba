package tally

import "github.com/modoterra/tally/pkg/seqlog"

// Shared bundles the state every worker touches. Each field carries its own
// lock; none of them is global.
type Shared struct {
	Aggregate *Aggregate
	Marker    *Marker
	Log       *seqlog.Logger
}

// NewShared creates fresh shared state around an existing sequenced logger.
func NewShared(log *seqlog.Logger) *Shared {
	return &Shared{
		Aggregate: NewAggregate(),
		Marker:    NewMarker(),
		Log:       log,
	}
}
