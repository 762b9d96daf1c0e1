package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Queue decouples notification publishing from delivery. The server always
// talks to this interface; whether jobs are handled in-process or by a
// separate worker is a deployment choice.
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue dispatches jobs to in-process subscribers with retry.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// jobEnvelope wraps a payload with retry bookkeeping.
type jobEnvelope struct {
	payload    any
	retryCount int
	maxRetries int
}

// Publish hands the payload to every subscriber asynchronously. The caller
// gets an error only when nobody is listening; handler failures are retried
// and ultimately logged, never surfaced.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobEnvelope{payload: payload, maxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(topic, handler, job)
	}
	return nil
}

func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, job jobEnvelope) {
	for {
		err := handler(job.payload)
		if err == nil {
			return
		}

		job.retryCount++
		if job.retryCount > job.maxRetries {
			logrus.WithFields(logrus.Fields{
				"topic": topic,
				"error": err,
			}).Errorf("job permanently failed after %d attempts", job.maxRetries)
			return
		}
		logrus.WithFields(logrus.Fields{
			"topic":   topic,
			"attempt": job.retryCount,
			"error":   err,
		}).Warn("job failed, retrying")
		time.Sleep(time.Duration(job.retryCount*500) * time.Millisecond)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
