// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"net/http"
	"sync/atomic"
	"time"
)

type status struct {
	requests         uint64
	requestTimeTotal uint64
	cloudflareHits   uint64
	cloudflareMisses uint64
	cacheHits        uint64
	start            time.Time
}

func newStatus() *status {
	return &status{start: time.Now()}
}

func (s *status) CacheHit() {
	atomic.AddUint64(&s.cacheHits, 1)
}

func (s *status) RequestComplete(res *http.Response, millis int64) {
	atomic.AddUint64(&s.requestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.requests, 1)

	if cacheHit := res.Header.Get("CF-Cache-Status"); cacheHit == "HIT" {
		atomic.AddUint64(&s.cloudflareHits, 1)
	} else {
		atomic.AddUint64(&s.cloudflareMisses, 1)
	}
}

// Lookups is the number of ranges resolved, from the API or the local cache.
func (s *status) Lookups() uint64 {
	return atomic.LoadUint64(&s.requests) + atomic.LoadUint64(&s.cacheHits)
}

func (s *status) Done() {
	requests := atomic.LoadUint64(&s.requests)
	if requests == 0 && atomic.LoadUint64(&s.cacheHits) == 0 {
		return
	}

	var requestAverage float64
	if requests > 0 {
		requestAverage = float64(atomic.LoadUint64(&s.requestTimeTotal)) / float64(requests)
	}

	p := message.NewPrinter(language.English)
	log.Debug().Msgf("resolved %s ranges in %v, %s from the local cache", p.Sprintf("%d", s.Lookups()),
		time.Since(s.start), p.Sprintf("%d", atomic.LoadUint64(&s.cacheHits)))
	log.Debug().Msgf("made %s range requests. Average response time %.2f ms. Cloudflare cache hits: %s, misses: %s",
		p.Sprintf("%d", requests), requestAverage,
		p.Sprintf("%d", atomic.LoadUint64(&s.cloudflareHits)), p.Sprintf("%d", atomic.LoadUint64(&s.cloudflareMisses)))
}
