// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package util

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"sync/atomic"
	"time"
)

// Progress logs how far a long-running job is every interval, until Done is called.
type Progress struct {
	task     string
	total    int64
	done     int64
	start    time.Time
	ticker   *time.Ticker
	progress chan bool
	p        *message.Printer
}

func NewProgress(task string, total int, interval time.Duration) *Progress {
	return &Progress{
		task:     task,
		total:    int64(total),
		start:    time.Now(),
		ticker:   time.NewTicker(interval),
		progress: make(chan bool),
		p:        message.NewPrinter(language.English),
	}
}

// Begin reports the progress of the job every interval.
func (s *Progress) Begin() {
	go func() {
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				log.Info().Msgf("%.2f%% of %s. %.0f passwords/s", s.Percent(), s.task, s.perSecond())
			}
		}
	}()
}

// Set records the number of items done so far. Safe for concurrent use, the largest value wins.
func (s *Progress) Set(done int) {
	n := int64(done)
	for {
		cur := atomic.LoadInt64(&s.done)
		if n <= cur || atomic.CompareAndSwapInt64(&s.done, cur, n) {
			return
		}
	}
}

func (s *Progress) Percent() float64 {
	if s.total == 0 {
		return 100
	}

	return float64(atomic.LoadInt64(&s.done)) * 100 / float64(s.total)
}

func (s *Progress) perSecond() float64 {
	elapsed := time.Since(s.start)
	done := float64(atomic.LoadInt64(&s.done))
	if elapsed.Nanoseconds() > 0 {
		return done / elapsed.Seconds()
	}

	return done
}

func (s *Progress) Done() {
	s.ticker.Stop()
	close(s.progress)
	log.Info().Msgf("finished %s of %s passwords in %v. %.0f passwords/s", s.task,
		s.p.Sprintf("%d", atomic.LoadInt64(&s.done)), time.Since(s.start), s.perSecond())
}
