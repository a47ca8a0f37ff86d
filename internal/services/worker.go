package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// SessionScorer evaluates a completed interview session.
type SessionScorer interface {
	ScoreSession(ctx context.Context, interviewID uuid.UUID) error
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(interviewID uuid.UUID)
}

type worker struct {
	scorer      SessionScorer
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(scorer SessionScorer, concurrency int) Worker {
	return &worker{
		scorer:      scorer,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting scoring worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Scoring worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping scoring worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Scoring worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(interviewID uuid.UUID) {
	select {
	case w.jobQueue <- interviewID:
		log.Printf("📥 Scoring job %s enqueued\n", interviewID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", interviewID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case interviewID := <-w.jobQueue:
			log.Printf("👷 Worker #%d scoring interview %s\n", workerID, interviewID)
			if err := w.scorer.ScoreSession(ctx, interviewID); err != nil {
				log.Printf("❌ Worker #%d failed to score interview %s: %v\n", workerID, interviewID, err)
			} else {
				log.Printf("✅ Worker #%d scored interview %s\n", workerID, interviewID)
			}
		}
	}
}
