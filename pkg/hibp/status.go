package hibp

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of the lookups made by a Client.
type Stats struct {
	Requests         uint64  `json:"requests"`
	Failures         uint64  `json:"failures"`
	CacheHits        uint64  `json:"cacheHits"`
	CloudflareHits   uint64  `json:"cloudflareHits"`
	CloudflareMisses uint64  `json:"cloudflareMisses"`
	AverageMillis    float64 `json:"averageMillis"`
	Since            string  `json:"since"`
}

type status struct {
	requests                   uint64
	failures                   uint64
	cacheHits                  uint64
	cloudflareHits             uint64
	cloudflareMisses           uint64
	cloudflareRequestTimeTotal uint64
	start                      time.Time
}

func newStatus() *status {
	return &status{start: time.Now()}
}

func (s *status) CacheHit() {
	atomic.AddUint64(&s.cacheHits, 1)
}

func (s *status) RequestFailed() {
	atomic.AddUint64(&s.failures, 1)
}

func (s *status) RequestComplete(res *http.Response, millis int64) {
	atomic.AddUint64(&s.cloudflareRequestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.requests, 1)

	if cacheHit := res.Header.Get("CF-Cache-Status"); cacheHit == "HIT" {
		atomic.AddUint64(&s.cloudflareHits, 1)
	} else {
		atomic.AddUint64(&s.cloudflareMisses, 1)
	}
}

func (s *status) snapshot() Stats {
	st := Stats{
		Requests:         atomic.LoadUint64(&s.requests),
		Failures:         atomic.LoadUint64(&s.failures),
		CacheHits:        atomic.LoadUint64(&s.cacheHits),
		CloudflareHits:   atomic.LoadUint64(&s.cloudflareHits),
		CloudflareMisses: atomic.LoadUint64(&s.cloudflareMisses),
		Since:            s.start.UTC().Format(time.RFC3339),
	}
	if st.Requests > 0 {
		st.AverageMillis = float64(atomic.LoadUint64(&s.cloudflareRequestTimeTotal)) / float64(st.Requests)
	}
	return st
}
