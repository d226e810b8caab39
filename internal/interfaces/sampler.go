package interfaces

import (
	"time"

	"fpl-cache/internal/models"
)

// Sampler records per-request latency tagged by the tier that satisfied it.
// It is a read-only consumer of coordinator outcomes and never influences
// cache decisions.
type Sampler interface {
	Record(tier models.Tier, d time.Duration)
}
