// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "sync"

// TypeHandle addresses a type node inside a typeArena. Representing the
// type graph as handles into a shared arena, rather than as a web of Go
// pointers owning each other, is what makes cyclic graphs (a STRUCTURE
// holding a SEQUENCE of itself) trivial: no node owns another, so there is
// nothing for a cycle to leak.
type TypeHandle uint32

// typeNode is one arena slot. It starts reserved-but-unfrozen (so a
// builder can hand out a DynamicType referencing it before the node's own
// build() completes, to support self-referential aggregates) and becomes
// frozen once its owning builder calls Build().
type typeNode struct {
	descriptor  TypeDescriptor
	annotations AnnotationStore
	frozen      bool
}

// typeArena owns every DynamicType node reachable from types it minted.
// It is dropped as a whole; individual nodes are never individually freed,
// which is what lets cyclic references exist without manual lifetime
// bookkeeping: a node's lifetime is the arena's lifetime, not any single
// holder's.
type typeArena struct {
	mu    sync.Mutex
	nodes []*typeNode
}

func newTypeArena() *typeArena {
	return &typeArena{}
}

// reserve appends an unfrozen placeholder node and returns its handle.
func (a *typeArena) reserve() TypeHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodes = append(a.nodes, &typeNode{})
	return TypeHandle(len(a.nodes) - 1)
}

// fill freezes handle h with its final descriptor and annotation set.
func (a *typeArena) fill(h TypeHandle, desc TypeDescriptor, ann AnnotationStore) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.nodes[h]
	n.descriptor = desc
	n.annotations = ann
	n.frozen = true
}

func (a *typeArena) node(h TypeHandle) *typeNode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nodes[h]
}
