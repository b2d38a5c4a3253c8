// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package readout gathers the key/value facts shown in a report.
//
// Each Key has a Probe that reads one fact about the running system.
// A Collector runs the requested probes concurrently, each under its own
// timeout, and returns the results in the order requested. A probe that
// fails never aborts the others: its Readout carries the error and the
// Unavailable placeholder instead.
package readout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// Unavailable is displayed in place of a value that could not be read.
const Unavailable = "unavailable"

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 2 * time.Second

// ErrUnsupported is returned by probes that have no implementation for the
// running system.
var ErrUnsupported = errors.New("not supported on this system")

// Value is what a probe reports. Ratio is meaningful only when HasRatio
// is set and lies in [0, 1].
type Value struct {
	Text     string
	Ratio    float64
	HasRatio bool
}

// Readout is the outcome of probing one key.
type Readout struct {
	Key   Key
	Value Value
	Err   error
}

// OK reports whether the probe succeeded.
func (r Readout) OK() bool { return r.Err == nil }

// Text is the value to display.
func (r Readout) Text() string {
	if r.Err != nil {
		return Unavailable
	}
	return r.Value.Text
}

// Options tune how probes format their values.
type Options struct {
	LongUptime       bool
	LongShell        bool
	LongKernel       bool
	PhysicalCores    bool
	CurrentShell     bool
	MemoryPercentage bool
	DiskPercentage   bool
	Disks            []string
	Interface        string
}

// Probe reads one fact.
type Probe func(ctx context.Context, opts Options) (Value, error)

// Collector runs probes concurrently.
type Collector struct {
	Probes  map[Key]Probe
	Options Options
	Timeout time.Duration
	// Limit caps concurrently running probes; zero means no limit.
	Limit int
}

// NewCollector returns a Collector backed by the probes of sys.
func NewCollector(sys *System, opts Options) *Collector {
	return &Collector{
		Probes:  sys.Probes(),
		Options: opts,
		Timeout: DefaultTimeout,
	}
}

// Collect probes keys and returns one Readout per key, in the same order.
func (c *Collector) Collect(ctx context.Context, keys []Key) []Readout {
	out := make([]Readout, len(keys))

	var g errgroup.Group
	if c.Limit > 0 {
		g.SetLimit(c.Limit)
	}
	for i, k := range keys {
		g.Go(func() error {
			out[i] = c.run(ctx, k)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Collector) run(ctx context.Context, k Key) Readout {
	r := Readout{Key: k}
	probe, ok := c.Probes[k]
	if !ok {
		r.Err = ErrUnsupported
		log.Printf("PROBE_FAILED | key=%s error=%v", k, r.Err)
		return r
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   Value
		err error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("PROBE_PANIC | key=%s panic=%v\n%s", k, p, debug.Stack())
				done <- result{err: fmt.Errorf("probe panicked: %v", p)}
			}
		}()
		v, err := probe(ctx, c.Options)
		done <- result{v, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		r.Err = res.err
		log.Printf("PROBE_FAILED | key=%s duration=%s error=%v", k, time.Since(start).Round(time.Millisecond), res.err)
		return r
	}
	v := res.v
	if v.HasRatio {
		v.Ratio = min(max(v.Ratio, 0), 1)
	}
	r.Value = v
	return r
}
