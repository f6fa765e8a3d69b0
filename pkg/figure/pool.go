package figure

import "sync"

// DefaultWorkers is the worker budget for one pool. File-level and
// page-level pools are independent, so converting several multi-page
// documents at once can run up to DefaultWorkers² units concurrently.
// That trade-off favors throughput over a strict global cap.
const DefaultWorkers = 8

// forEach executes fn(i) for every i in [0, n) on at most workers
// goroutines and blocks until all calls have returned. Every index runs
// exactly once; a failing unit never cancels or blocks its siblings
// (failures are reported through whatever fn writes, not through the pool).
func forEach(workers, n int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers > n {
		workers = n
	}

	indices := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				fn(i)
			}
		}()
	}

	for i := range n {
		indices <- i
	}
	close(indices)
	wg.Wait()
}
