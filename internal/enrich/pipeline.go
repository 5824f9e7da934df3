package enrich

import (
	"context"
	"log"
	"sync"
)

// Pipeline coordinates the execution of a sequence of stages over a slice of
// items. For each item, steps within the same stage run in parallel, and
// stages themselves run sequentially (a stage barrier), so a later stage can
// depend on fields an earlier stage filled in. Step errors are logged and do
// not stop processing of the current item.
//
// Pipeline is generic over the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each item in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run applies all stages to every item in the slice. Items are processed in
// order; within an item:
//   - All steps in a stage are started concurrently and must complete before
//     moving to the next stage.
//   - Errors returned by steps are logged and ignored so the pipeline can
//     continue processing.
//   - The provided context can be observed by steps for cancellation; the
//     pipeline itself keeps running until the slice is exhausted.
func (p *Pipeline[T]) Run(ctx context.Context, items []*T) {
	for _, item := range items {
		for _, stage := range p.stages {
			var wg sync.WaitGroup
			for _, step := range stage.steps {
				wg.Add(1)
				go func(step Step[T]) {
					defer wg.Done()
					if err := step(ctx, item); err != nil {
						log.Printf("Step failed: %v", err)
					}
				}(step)
			}
			wg.Wait() // stage barrier: ensure all steps finished before the next stage
		}
	}
}
