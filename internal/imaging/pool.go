// Package imaging provides pixel buffer management and resampling for
// the compositing engine.
package imaging

import "sync"

// Pool is a thread-safe pool for reusing pixel buffers.
//
// Buffers are grouped by their byte length, allowing efficient reuse of
// identically-sized buffers. The composite pass allocates one scratch
// buffer per masked layer; pooling keeps that from becoming GC pressure
// when recompositing on every parameter change.
//
// Thread safety: all methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]uint8
	maxSize int // max buffers per bucket
}

// NewPool creates a pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]uint8),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a zeroed buffer of the given length from the pool, or
// allocates a new one.
func (p *Pool) Get(n int) []uint8 {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]uint8, n)
}

// Put returns a buffer to the pool for reuse.
// Nil buffers and buffers beyond the bucket capacity are discarded.
func (p *Pool) Put(buf []uint8) {
	if buf == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(buf)
	if p.maxSize > 0 && len(p.buckets[n]) >= p.maxSize {
		return
	}
	p.buckets[n] = append(p.buckets[n], buf)
}

// Size returns the total number of pooled buffers.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, bucket := range p.buckets {
		total += len(bucket)
	}
	return total
}
