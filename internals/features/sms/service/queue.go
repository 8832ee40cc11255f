package service

import (
	"context"

	"coachingku_backend/internals/logger"
)

// Task is one unit of background SMS work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Queue is a small in-process task queue: one worker drains a buffered
// channel so bulk sends never block the request that triggered them, and a
// panicking task cannot take the worker down.
type Queue struct {
	tasks chan Task
	done  chan struct{}
}

var DefaultQueue = NewQueue(64)

func NewQueue(size int) *Queue {
	q := &Queue{
		tasks: make(chan Task, size),
		done:  make(chan struct{}),
	}
	go q.worker()
	return q
}

// Enqueue hands a task to the worker. When the buffer is full the task is
// dropped with a log entry rather than blocking the caller.
func (q *Queue) Enqueue(t Task) bool {
	select {
	case q.tasks <- t:
		return true
	default:
		logger.Log.Warnf("⚠️ SMS queue full, dropping task: %s", t.Name)
		return false
	}
}

func (q *Queue) Close() { close(q.done) }

func (q *Queue) worker() {
	for {
		select {
		case <-q.done:
			return
		case t := <-q.tasks:
			q.runOne(t)
		}
	}
}

func (q *Queue) runOne(t Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("SMS task %s panicked: %v", t.Name, r)
		}
	}()
	if err := t.Run(context.Background()); err != nil {
		logger.Log.Errorf("SMS task %s failed: %v", t.Name, err)
	}
}
