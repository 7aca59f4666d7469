// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "sync"

// ContextOptions configures a BuilderFactory or DynamicDataFactory
// Context, an options struct threaded through the public API rather than
// free-standing package globals.
type ContextOptions struct {
	// LeakTracking enables the outstanding-builder / outstanding-data
	// registry used for leak diagnostics.
	LeakTracking bool

	// Logger receives the leak tracker's warnings about values and
	// builders still outstanding at Close. The codec does not log; a
	// failed Serialize/Deserialize is reported only by its bool result.
	// Defaults to a no-op logger when nil.
	Logger Logger
}

// registry is the mutex-guarded bookkeeping shared by BuilderFactory and
// DynamicDataFactory: registration/deregistration is guarded by a mutex so
// calls from any goroutine are safe.
type registry struct {
	mu      sync.Mutex
	opts    ContextOptions
	logger  Logger
	tracked map[uintptr]string // identity -> debug label, leak-tracking only
}

func newRegistry(opts ContextOptions) *registry {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	r := &registry{opts: opts, logger: logger}
	if opts.LeakTracking {
		r.tracked = make(map[uintptr]string)
	}
	return r
}

func (r *registry) track(id uintptr, label string) {
	if r.tracked == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked[id] = label
}

func (r *registry) untrack(id uintptr) {
	if r.tracked == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tracked, id)
}

func (r *registry) isTracked(id uintptr) bool {
	if r.tracked == nil {
		return true // tracking disabled: treat every id as live
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tracked[id]
	return ok
}

// Close logs a warning for every value/builder still outstanding. It does
// not itself free anything (there is nothing in Go to free); it only
// surfaces the leak-tracker's diagnostic.
func (r *registry) Close() {
	if r.tracked == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, label := range r.tracked {
		r.logger.Warnf("xtypes: outstanding %s at context close", label)
	}
}
