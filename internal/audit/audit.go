// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package audit evaluates a list of candidates in bulk and summarises the
// results. Candidates are never logged or kept after evaluation.
package audit

import (
	"bufio"
	"context"
	"fmt"
	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/strength"
	"runtime"
	"strings"
	"sync"
)

type Options struct {
	// Workers evaluating candidates, runtime.NumCPU() when < 1.
	Workers int
	// MinScore below which a candidate counts as rejected.
	MinScore  int
	Estimator *strength.Estimator
}

type Report struct {
	Total    uint64                    `json:"total"`
	Labels   map[strength.Label]uint64 `json:"-"`
	Common   uint64                    `json:"common"`
	Rejected uint64                    `json:"rejected"`
	MinScore int                       `json:"minScore"`
	Mean     float64                   `json:"mean"`
	Median   uint64                    `json:"median"`
	P10      uint64                    `json:"p10"`
	P90      uint64                    `json:"p90"`
}

type collector struct {
	mu     sync.Mutex
	scores []uint64
	report *Report
}

func (c *collector) add(r strength.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scores = append(c.scores, uint64(r.Score))
	c.report.Total++
	c.report.Labels[r.Label]++
	if !r.Criteria.Uncommon {
		c.report.Common++
	}
	if r.Score < c.report.MinScore {
		c.report.Rejected++
	}
}

// Run evaluates every non empty line read from r on a bounded worker pool.
func Run(ctx context.Context, r io.Reader, opts Options) (*Report, error) {
	s := util.Stats()
	defer s()

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	estimator := opts.Estimator
	if estimator == nil {
		estimator = strength.NewEstimator()
	}

	pool, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * workers,
		NumWorkers:    workers,
	})
	if err != nil {
		return nil, err
	}

	c := &collector{
		report: &Report{
			Labels:   make(map[strength.Label]uint64, len(strength.Labels())),
			MinScore: opts.MinScore,
		},
	}

	log.Debug().Msgf("auditing with %d workers", workers)
	evaluate := func(candidate string) {
		c.add(estimator.Evaluate(candidate))
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err = pool.Publish(evaluate, line); err != nil {
			break
		}
	}

	pool.Wait()
	pool.Close()

	if err != nil {
		return nil, err
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading candidates: %w", err)
	}

	c.report.summarise(c.scores)
	return c.report, nil
}

func (r *Report) summarise(scores []uint64) {
	if len(scores) == 0 {
		return
	}

	sorty.SortSlice(scores)

	var sum uint64
	for _, s := range scores {
		sum += s
	}
	r.Mean = float64(sum) / float64(len(scores))
	r.Median = percentile(scores, 50)
	r.P10 = percentile(scores, 10)
	r.P90 = percentile(scores, 90)
}

// percentile uses the nearest rank method on sorted scores.
func percentile(sorted []uint64, p int) uint64 {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// Summary renders the report for a terminal.
func (r *Report) Summary() string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	p.Fprintf(&b, "Audited %d candidates\n", r.Total)
	if r.Total == 0 {
		return b.String()
	}

	for _, l := range strength.Labels() {
		n := r.Labels[l]
		p.Fprintf(&b, "  %-10s %8d (%5.1f%%)\n", l.String(), n, float64(n)*100/float64(r.Total))
	}
	p.Fprintf(&b, "Score mean %.1f, median %d, p10 %d, p90 %d\n", r.Mean, r.Median, r.P10, r.P90)
	p.Fprintf(&b, "Weak patterns: %d\n", r.Common)
	if r.MinScore > 0 {
		p.Fprintf(&b, "Below score %d: %d\n", r.MinScore, r.Rejected)
	}
	return b.String()
}
