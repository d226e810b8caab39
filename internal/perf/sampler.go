package perf

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"fpl-cache/internal/interfaces"
	"fpl-cache/internal/models"
)

// defaultCapacity bounds the sample ring buffer when no capacity is given.
const defaultCapacity = 4096

// Ensure Sampler implements interfaces.Sampler
var _ interfaces.Sampler = (*Sampler)(nil)

// TierStats aggregates the samples satisfied by one tier.
type TierStats struct {
	Count  int     `json:"count"`
	MeanMs float64 `json:"mean_ms"`
	P95Ms  float64 `json:"p95_ms"`
}

// Stats is a point-in-time aggregate over the sample buffer plus process
// memory pressure.
type Stats struct {
	Samples        int                        `json:"samples"`
	HitRate        float64                    `json:"hit_rate"`
	Tiers          map[models.Tier]TierStats  `json:"tiers"`
	HeapAllocBytes uint64                     `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64                     `json:"heap_sys_bytes"`
	NumGC          uint32                     `json:"num_gc"`
}

// Sampler records request timings into a bounded ring buffer (oldest samples
// dropped first) and computes rolling aggregates for reporting. It never
// feeds back into cache decisions.
type Sampler struct {
	mu      sync.Mutex
	samples []models.RequestTiming
	next    int
	count   int
}

// NewSampler creates a Sampler holding at most capacity samples.
func NewSampler(capacity int) *Sampler {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return &Sampler{
		samples: make([]models.RequestTiming, capacity),
	}
}

// Record appends one sample, dropping the oldest once the buffer is full.
func (s *Sampler) Record(tier models.Tier, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples[s.next] = models.RequestTiming{
		Duration:    d,
		SatisfiedBy: tier,
		At:          time.Now(),
	}
	s.next = (s.next + 1) % len(s.samples)
	if s.count < len(s.samples) {
		s.count++
	}
}

// Snapshot computes aggregates over the current buffer contents.
func (s *Sampler) Snapshot() Stats {
	s.mu.Lock()
	byTier := make(map[models.Tier][]time.Duration)
	total := s.count
	for i := 0; i < s.count; i++ {
		sample := s.samples[i]
		byTier[sample.SatisfiedBy] = append(byTier[sample.SatisfiedBy], sample.Duration)
	}
	s.mu.Unlock()

	stats := Stats{
		Samples: total,
		Tiers:   make(map[models.Tier]TierStats, len(byTier)),
	}

	hits := 0
	for tier, durations := range byTier {
		stats.Tiers[tier] = aggregate(durations)
		if tier == models.TierLocal || tier == models.TierRemote {
			hits += len(durations)
		}
	}
	if total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.HeapAllocBytes = mem.HeapAlloc
	stats.HeapSysBytes = mem.HeapSys
	stats.NumGC = mem.NumGC

	return stats
}

func aggregate(durations []time.Duration) TierStats {
	if len(durations) == 0 {
		return TierStats{}
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := (len(sorted)*95 + 99) / 100
	if idx > 0 {
		idx--
	}

	return TierStats{
		Count:  len(durations),
		MeanMs: float64(sum.Microseconds()) / float64(len(durations)) / 1000,
		P95Ms:  float64(sorted[idx].Microseconds()) / 1000,
	}
}
