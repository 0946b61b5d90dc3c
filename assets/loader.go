package assets

import (
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/ybot/anim"
	"github.com/panjf2000/ants/v2"
)

// Callback receives a finished skeleton load.
type Callback func(skel *anim.Skeleton, err error)

type loadResult struct {
	name string
	skel *anim.Skeleton
	err  error
	cb   Callback
}

// Loader decodes skeleton assets on a worker pool. Results are held until
// Poll runs, so callbacks always fire on the goroutine that calls Poll.
type Loader struct {
	dir     string
	pool    *ants.Pool
	results chan loadResult
	pending int

	done    chan struct{}
	once    sync.Once
	running sync.WaitGroup
}

// NewLoader creates a loader reading from dir (embedded assets when empty)
// with the given number of workers.
func NewLoader(dir string, workers int) (*Loader, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers,
		ants.WithPanicHandler(func(p any) {
			log.Printf("assets: loader worker panic: %v", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("assets: create loader pool: %w", err)
	}
	return &Loader{
		dir:     dir,
		pool:    pool,
		results: make(chan loadResult, 16),
		done:    make(chan struct{}),
	}, nil
}

// Load starts decoding name in the background. cb runs from a later Poll.
func (l *Loader) Load(name string, cb Callback) error {
	if l == nil {
		return fmt.Errorf("assets: load %s: nil loader", name)
	}
	dir := l.dir
	l.running.Add(1)
	err := l.pool.Submit(func() {
		defer l.running.Done()
		skel, err := LoadSkeleton(dir, name)
		select {
		case l.results <- loadResult{name: name, skel: skel, err: err, cb: cb}:
		case <-l.done:
		}
	})
	if err != nil {
		l.running.Done()
		return fmt.Errorf("assets: submit %s: %w", name, err)
	}
	l.pending++
	return nil
}

// Pending returns how many loads have not been delivered yet.
func (l *Loader) Pending() int {
	if l == nil {
		return 0
	}
	return l.pending
}

// Poll delivers every finished load without blocking and returns how many
// callbacks ran.
func (l *Loader) Poll() int {
	if l == nil {
		return 0
	}
	delivered := 0
	for {
		select {
		case res := <-l.results:
			l.pending--
			delivered++
			if res.err != nil {
				log.Printf("assets: load %s failed: %v", res.name, res.err)
			}
			if res.cb != nil {
				res.cb(res.skel, res.err)
			}
		default:
			return delivered
		}
	}
}

// Close stops the worker pool and waits for running loads to return.
// Their results are dropped.
func (l *Loader) Close() {
	if l == nil || l.pool == nil {
		return
	}
	l.once.Do(func() {
		close(l.done)
		l.running.Wait()
		l.pool.Release()
	})
}
