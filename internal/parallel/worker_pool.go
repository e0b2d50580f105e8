// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"runtime"
	"sync"
	"time"

	"p2pkh-filter/internal/detector"
	"p2pkh-filter/internal/observability"
)

// maxRecommendedWorkers caps RecommendedWorkers on large machines
const maxRecommendedWorkers = 8

// RecommendedWorkers returns a worker count suited to this machine
func RecommendedWorkers() int {
	workers := runtime.NumCPU()
	if workers > maxRecommendedWorkers {
		workers = maxRecommendedWorkers
	}
	return workers
}

// Batch is a run of consecutive input lines classified together
type Batch struct {
	Seq      uint64
	Lines    []string
	Verdicts []bool // Verdicts[i] is the classification of Lines[i]

	done chan struct{}
}

// NewBatch wraps lines in a Batch ready for submission
func NewBatch(lines []string) *Batch {
	return &Batch{Lines: lines, done: make(chan struct{})}
}

// Source produces the next batch. It returns a nil batch once the input is
// exhausted. A batch returned together with an error is still delivered.
type Source func() (*Batch, error)

// Sink consumes batches in the order Source produced them
type Sink func(*Batch) error

// Stats describes a completed pool run
type Stats struct {
	Batches  uint64        `json:"batches"`
	Lines    uint64        `json:"lines"`
	Workers  int           `json:"workers"`
	Duration time.Duration `json:"duration_ms"`
}

// WorkerPool classifies batches concurrently and hands them back in order
type WorkerPool struct {
	workers    int
	classifier detector.Classifier
	observer   *observability.StandardObserver
}

// NewWorkerPool creates a pool; workers < 1 selects RecommendedWorkers
func NewWorkerPool(workers int, classifier detector.Classifier, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = RecommendedWorkers()
	}
	return &WorkerPool{
		workers:    workers,
		classifier: classifier,
		observer:   observer,
	}
}

// Workers returns the number of classification goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Run pulls batches from source, classifies them on the pool and passes them
// to sink strictly in production order. sink runs on the calling goroutine.
// At most workers*2 batches are in flight at once. The first sink error stops
// the run; otherwise the source error, if any, is returned after every batch
// produced before it has been delivered.
func (wp *WorkerPool) Run(source Source, sink Sink) (Stats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "classify_batches", "")
	}

	jobs := make(chan *Batch, wp.workers*2)
	ordered := make(chan *Batch, wp.workers*2)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go wp.worker(jobs, &wg)
	}

	var sourceErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		defer close(ordered)

		var seq uint64
		for {
			batch, err := source()
			if batch != nil && len(batch.Lines) > 0 {
				batch.Seq = seq
				seq++
				select {
				case ordered <- batch:
				case <-stop:
					return
				}
				select {
				case jobs <- batch:
				case <-stop:
					return
				}
			}
			if err != nil || batch == nil {
				sourceErr = err
				return
			}
		}
	}()

	stats := Stats{Workers: wp.workers}
	var sinkErr error
	for batch := range ordered {
		<-batch.done
		if err := sink(batch); err != nil {
			sinkErr = err
			close(stop)
			break
		}
		stats.Batches++
		stats.Lines += uint64(len(batch.Lines))
	}

	wg.Wait()
	stats.Duration = time.Since(start)

	err := sinkErr
	if err == nil {
		err = sourceErr
	}

	if finishTiming != nil {
		metadata := map[string]interface{}{
			"workers": wp.workers,
			"batches": stats.Batches,
			"lines":   stats.Lines,
		}
		if err != nil {
			metadata["error"] = err.Error()
		}
		finishTiming(err == nil, metadata)
	}

	return stats, err
}

// worker classifies every line of each batch it receives
func (wp *WorkerPool) worker(jobs <-chan *Batch, wg *sync.WaitGroup) {
	defer wg.Done()

	for batch := range jobs {
		verdicts := make([]bool, len(batch.Lines))
		for i, line := range batch.Lines {
			verdicts[i] = wp.classifier.Classify(line)
		}
		batch.Verdicts = verdicts
		close(batch.done)
	}
}
