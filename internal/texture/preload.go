package texture

import (
	"sync"
	"sync/atomic"
)

// Result holds the outcome of loading one texture.
type Result struct {
	Name    string
	Success bool
	Error   string
}

// Preload adds names to m using a pool of workers. onProgress, if set, is
// called after each texture with the number finished so far; calls may
// come from any worker.
func (m *Manager) Preload(names []string, workers int, onProgress func(done, total int)) []Result {
	if workers < 1 {
		workers = 1
	}
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = m.preloadOne(names[idx])
				p := processed.Add(1)
				if onProgress != nil {
					onProgress(int(p), total)
				}
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (m *Manager) preloadOne(name string) Result {
	if _, err := m.Add(name); err != nil {
		return Result{Name: name, Error: err.Error()}
	}
	return Result{Name: name, Success: true}
}
