package mboard

import "sync"

// chunkPool provides efficient reuse of rasterChunk instances via sync.Pool.
//
// A canvas uses a single chunk edge length, but layers created standalone
// may use others, so pools are kept per edge length. When a chunk is
// returned to the pool its pixels and written bits are cleared.
//
// Thread safety: chunkPool is safe for concurrent use.
type chunkPool struct {
	// pools holds a *sync.Pool per edge length.
	pools sync.Map // int -> *sync.Pool
}

// newChunkPool creates a new chunk pool.
func newChunkPool() *chunkPool {
	return &chunkPool{}
}

// get retrieves a default-filled chunk of the given edge length.
func (p *chunkPool) get(edge int) *rasterChunk {
	return p.poolFor(edge).Get().(*rasterChunk)
}

// put returns a chunk to the pool for reuse.
// If c is nil, this is a no-op.
func (p *chunkPool) put(c *rasterChunk) {
	if c == nil {
		return
	}
	c.reset()
	p.poolFor(c.edge).Put(c)
}

// poolFor gets or creates the sync.Pool for edge.
func (p *chunkPool) poolFor(edge int) *sync.Pool {
	if pool, ok := p.pools.Load(edge); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return newRasterChunk(edge)
		},
	}

	// Try to store; if another goroutine beat us, use theirs
	actual, _ := p.pools.LoadOrStore(edge, newPool)
	return actual.(*sync.Pool)
}

// defaultChunkPool backs layers that were not created through a Canvas.
var defaultChunkPool = newChunkPool()
