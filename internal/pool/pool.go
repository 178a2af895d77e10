// Package pool provides a generic object pool for short-lived entities
// such as particles and pickups.
package pool

// Pool recycles *T instances. Every instance it has ever created is owned
// by exactly one of the free list or the active set.
type Pool[T any, A any] struct {
	factory func(args A) *T
	reset   func(obj *T, args A)

	free    []*T
	active  []*T
	index   map[*T]int // position of each active object in active
	created int
}

// New creates a pool. factory builds a fresh instance, reset reinitialises
// a recycled one with the same arguments Acquire received.
func New[T any, A any](factory func(args A) *T, reset func(obj *T, args A)) *Pool[T, A] {
	return &Pool[T, A]{
		factory: factory,
		reset:   reset,
		index:   make(map[*T]int),
	}
}

// Acquire returns an active instance initialised with args, reusing a
// free one when available.
func (p *Pool[T, A]) Acquire(args A) *T {
	var obj *T
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		if p.reset != nil {
			p.reset(obj, args)
		}
	} else {
		obj = p.factory(args)
		p.created++
	}

	p.index[obj] = len(p.active)
	p.active = append(p.active, obj)
	return obj
}

// Release returns obj to the free list. Releasing an object that is not
// active is a no-op and reports false.
func (p *Pool[T, A]) Release(obj *T) bool {
	i, ok := p.index[obj]
	if !ok {
		return false
	}

	last := len(p.active) - 1
	if i != last {
		moved := p.active[last]
		p.active[i] = moved
		p.index[moved] = i
	}
	p.active[last] = nil
	p.active = p.active[:last]
	delete(p.index, obj)

	p.free = append(p.free, obj)
	return true
}

// ReleaseAll moves every active object to the free list.
func (p *Pool[T, A]) ReleaseAll() {
	for i, obj := range p.active {
		p.free = append(p.free, obj)
		delete(p.index, obj)
		p.active[i] = nil
	}
	p.active = p.active[:0]
}

// ReleaseIf releases every active object for which fn returns true.
func (p *Pool[T, A]) ReleaseIf(fn func(obj *T) bool) int {
	var drop []*T
	for _, obj := range p.active {
		if fn(obj) {
			drop = append(drop, obj)
		}
	}
	for _, obj := range drop {
		p.Release(obj)
	}
	return len(drop)
}

// Each calls fn for every active object. fn must not acquire or release.
func (p *Pool[T, A]) Each(fn func(obj *T)) {
	for _, obj := range p.active {
		fn(obj)
	}
}

// ActiveCount returns the number of objects currently handed out.
func (p *Pool[T, A]) ActiveCount() int { return len(p.active) }

// PooledCount returns the number of free objects waiting for reuse.
func (p *Pool[T, A]) PooledCount() int { return len(p.free) }

// Created returns how many objects the factory has built.
func (p *Pool[T, A]) Created() int { return p.created }
