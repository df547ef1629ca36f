// Package acmg implements the ACMG/AMP evidence rules. Each rule owns a
// disjoint set of evidence codes and writes only those on the records it
// evaluates.
package acmg

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// Rule evaluates one group of evidence codes on a single record.
type Rule interface {
	// Name identifies the rule in logs, e.g. "PM2/BA1/BS1".
	Name() string

	// Codes lists the evidence codes the rule may write.
	Codes() []variant.Code

	// Apply evaluates the record and writes the rule's flags.
	// It must not touch codes outside Codes().
	Apply(r *variant.Record)
}

// Engine runs rules over a store, one full pass per rule.
type Engine struct {
	rules   []Rule
	workers int
	logger  *zap.Logger
}

// NewEngine creates an engine. It fails if two rules claim the same code.
func NewEngine(rules ...Rule) (*Engine, error) {
	owner := make(map[variant.Code]string)
	for _, rule := range rules {
		for _, c := range rule.Codes() {
			if prev, ok := owner[c]; ok {
				return nil, fmt.Errorf("evidence code %s claimed by both %s and %s", c, prev, rule.Name())
			}
			owner[c] = rule.Name()
		}
	}
	return &Engine{rules: rules, workers: 1, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for pass summaries.
func (e *Engine) SetLogger(logger *zap.Logger) {
	e.logger = logger
}

// SetWorkers sets how many goroutines share a pass. If workers is 0,
// runtime.NumCPU() is used.
func (e *Engine) SetWorkers(workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	e.workers = workers
}

// Rules returns the rules in execution order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Run applies every rule to every record. Rules run sequentially; within a
// pass each record is handled by exactly one worker, so a rule has exclusive
// access to its codes for the duration of the pass.
func (e *Engine) Run(ctx context.Context, store *variant.Store) error {
	records := store.Records()
	for _, rule := range e.rules {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		e.pass(rule, records)

		fields := []zap.Field{
			zap.String("rule", rule.Name()),
			zap.Int("records", len(records)),
			zap.Duration("elapsed", time.Since(start)),
		}
		for _, c := range rule.Codes() {
			fields = append(fields, zap.Int(c.Key(), countAssigned(records, c)))
		}
		e.logger.Info("rule pass complete", fields...)
	}
	return nil
}

func (e *Engine) pass(rule Rule, records []*variant.Record) {
	if e.workers <= 1 || len(records) < 2*e.workers {
		for _, r := range records {
			rule.Apply(r)
		}
		return
	}

	items := make(chan *variant.Record, 2*e.workers)

	var wg sync.WaitGroup
	wg.Add(e.workers)
	for range e.workers {
		go func() {
			defer wg.Done()
			for r := range items {
				rule.Apply(r)
			}
		}()
	}

	for _, r := range records {
		items <- r
	}
	close(items)
	wg.Wait()
}

func countAssigned(records []*variant.Record, c variant.Code) int {
	n := 0
	for _, r := range records {
		if r.Flags.Assigned(c) {
			n++
		}
	}
	return n
}
