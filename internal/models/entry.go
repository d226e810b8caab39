package models

import "time"

// Tier identifies which cache layer satisfied a request.
type Tier string

const (
	TierLocal  Tier = "local"
	TierRemote Tier = "remote"
	TierSource Tier = "source"
	TierMiss   Tier = "miss"
)

// RemoteEnvelope is the JSON wrapper stored in the remote tier. The
// Compressed flag travels with the payload so a reader never has to guess
// the stored format.
type RemoteEnvelope struct {
	Data       []byte `json:"data"`
	CreatedAt  int64  `json:"created_at"`
	ExpiresAt  int64  `json:"expires_at"`
	Compressed bool   `json:"compressed"`
}

// IsExpired reports whether the envelope has outlived its TTL.
func (e *RemoteEnvelope) IsExpired() bool {
	return time.Now().Unix() > e.ExpiresAt
}

// RequestTiming is one latency sample recorded per cache request. Samples
// feed reporting only; they are never read back into cache decisions.
type RequestTiming struct {
	Duration    time.Duration
	SatisfiedBy Tier
	At          time.Time
}
