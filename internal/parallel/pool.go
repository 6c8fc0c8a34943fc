// Package parallel provides the goroutine pool behind mboard's optional
// parallel compositing path.
//
// Compositing a frame splits into one task per chunk cell of the requested
// region. Tasks write disjoint parts of the output buffer, so they can run
// on any worker without synchronization beyond waiting for the batch.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of tasks on a fixed set of goroutines.
//
// Each worker owns a queue. Tasks are dealt round-robin; an idle worker
// steals from the other queues before blocking on its own, which keeps
// workers busy when chunk cells take uneven time (empty cells are cheap,
// cells with many layers are not).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)
	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop of worker id.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case task := <-own:
			task()
			continue
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case task := <-own:
			task()
		}
	}
}

// drain runs whatever is left in q.
func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case task := <-q:
			task()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.queues {
		if i == id {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and returns when all have finished.
// Nil tasks are skipped. If the pool is closed (or closes mid-batch) the
// remaining tasks run on the calling goroutine, so the batch always
// completes.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if !p.running.Load() {
		for _, task := range tasks {
			if task != nil {
				task()
			}
		}
		return
	}

	var batch sync.WaitGroup
	for i, task := range tasks {
		if task == nil {
			continue
		}
		batch.Add(1)
		wrapped := func() {
			defer batch.Done()
			task()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	batch.Wait()
}

// Close stops accepting work, lets queued tasks finish and stops the
// workers. Close is safe to call multiple times, but must not run
// concurrently with ExecuteAll.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
