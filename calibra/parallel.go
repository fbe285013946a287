package calibra

import (
	"runtime"
	"sync"
)

type indexedTask[T any] struct {
	index int
	element T
}

// parallelMap evaluates the callback over all elements using one worker per
// CPU. The output slice is addressed by input index, so the result order is
// the input order regardless of completion order.
func parallelMap[A, B any](elements []A, callback func(A) B) []B {
	workers := runtime.NumCPU()
	taskChan := make(chan indexedTask[A], len(elements))
	for i, element := range elements {
		taskChan <- indexedTask[A]{
			index: i,
			element: element,
		}
	}
	close(taskChan)
	output := make([]B, len(elements))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range taskChan {
				output[task.index] = callback(task.element)
			}
		}()
	}
	wg.Wait()
	return output
}
