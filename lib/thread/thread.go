/*package thread contains functions useful for multi-threading: choosing a
thread count and splitting work on an array between workers.
*/
package thread

import (
	"fmt"
	"runtime"
	"sync"
)

// Set sets the number of threads used by the process and returns the number
// that was chosen. n = -1 uses every core.
func Set(n int) (int, error) {
	cores := runtime.NumCPU()
	if n == -1 {
		n = cores
	} else if n < 1 {
		return 0, fmt.Errorf("%d threads requested, but at least one thread "+
			"is needed. Set Workers=-1 to use every core.", n)
	} else if n > cores {
		return 0, fmt.Errorf("%d threads requested, but your system only "+
			"has %d cores. Set Workers=-1 to use every core.", n, cores)
	}

	runtime.GOMAXPROCS(n)
	return n, nil
}

// Workers returns the number of workers that should be used for n items
// when the user asked for the given number. Values below 1 mean one worker
// per core. There are never more workers than items.
func Workers(requested, n int) int {
	if requested < 1 {
		requested = runtime.GOMAXPROCS(0)
	}
	if requested > n {
		requested = n
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// SplitArray splits the range [0, n) into workers contiguous [start, end)
// ranges whose lengths differ by at most one. Earlier ranges are the longer
// ones.
func SplitArray(n, workers int) [][2]int {
	if workers < 1 {
		panic(fmt.Sprintf("Internal error: SplitArray called with %d workers",
			workers))
	}

	out := make([][2]int, workers)
	base, extra := n/workers, n%workers
	start := 0
	for i := range out {
		end := start + base
		if i < extra {
			end++
		}
		out[i] = [2]int{start, end}
		start = end
	}
	return out
}

// Range calls fn once for each range returned by SplitArray(n, workers), each
// in its own goroutine, and waits for all of them to finish. The first
// error returned by any call is returned.
func Range(n, workers int, fn func(start, end int) error) error {
	ranges := SplitArray(n, workers)
	errs := make([]error, len(ranges))

	wg := &sync.WaitGroup{}
	wg.Add(len(ranges))
	for i := range ranges {
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(ranges[i][0], ranges[i][1])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
