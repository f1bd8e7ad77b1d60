// Package notify prints reminder and timer notifications to the
// terminal through an async queue with a token-bucket rate limit, so a
// burst of fired reminders can't flood the screen.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"studycompanion/internal/config"
	"studycompanion/pkg/logx"
)

var (
	ErrQueueFull = errors.New("notify queue full")
	ErrStopped   = errors.New("notify stopped")
)

// Notification is one message shown to the user.
type Notification struct {
	Title   string
	Message string
	Time    time.Time
}

// Service implements an async notification pipeline: queue + worker +
// rate limit. It is safe for concurrent use.
type Service struct {
	mu sync.Mutex

	log logx.Logger
	out io.Writer

	cfg     config.NotifyConfig
	limiter *rate.Limiter

	queue     chan Notification
	accepting bool
	done      chan struct{}

	// sendWG counts in-flight Notify sends so Stop never closes the
	// queue underneath one.
	sendWG sync.WaitGroup
}

func New(cfg config.NotifyConfig, log logx.Logger, out io.Writer) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	if out == nil {
		out = logx.Stdout()
	}
	s := &Service{log: log, out: out}
	s.applyLocked(cfg)
	return s
}

// Apply swaps rate limit and bell settings at runtime. Queue size only
// takes effect on the next Start.
func (s *Service) Apply(cfg config.NotifyConfig) {
	s.mu.Lock()
	s.applyLocked(cfg)
	s.mu.Unlock()
}

func (s *Service) applyLocked(cfg config.NotifyConfig) {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	s.cfg = cfg
	// Token bucket: burst = rate per sec, so short spikes don't block too hard.
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
}

// Start launches the delivery worker. Idempotent.
func (s *Service) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	if s.queue != nil {
		s.mu.Unlock()
		return
	}
	s.queue = make(chan Notification, s.cfg.QueueSize)
	s.accepting = true
	s.done = make(chan struct{})
	q, done := s.queue, s.done
	s.mu.Unlock()

	go s.workerLoop(ctx, q, done)
}

// Stop blocks new notifications and drains the queue until ctx expires.
func (s *Service) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	q := s.queue
	done := s.done
	if q == nil {
		s.mu.Unlock()
		return
	}
	s.accepting = false
	s.queue = nil
	s.done = nil
	s.mu.Unlock()

	// Wait out Notify calls that grabbed the queue before intake closed.
	s.sendWG.Wait()
	close(q)
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Notify enqueues a notification without blocking. On a full queue the
// notification is dropped and ErrQueueFull returned.
func (s *Service) Notify(title, message string) error {
	s.mu.Lock()
	q := s.queue
	if q == nil || !s.accepting {
		s.mu.Unlock()
		return ErrStopped
	}
	// Register the send while still holding the lock, so a concurrent
	// Stop waits for it before closing the queue.
	s.sendWG.Add(1)
	s.mu.Unlock()
	defer s.sendWG.Done()

	n := Notification{Title: title, Message: message, Time: time.Now()}
	select {
	case q <- n:
		return nil
	default:
		s.log.Warn("notification dropped, queue full", logx.String("title", title))
		return ErrQueueFull
	}
}

func (s *Service) workerLoop(ctx context.Context, q chan Notification, done chan struct{}) {
	defer close(done)
	for n := range q {
		s.mu.Lock()
		lim := s.limiter
		bell := s.cfg.Bell
		s.mu.Unlock()

		if err := lim.Wait(ctx); err != nil {
			return
		}
		s.deliver(n, bell)
	}
}

func (s *Service) deliver(n Notification, bell bool) {
	prefix := ""
	if bell {
		prefix = "\a"
	}
	if _, err := fmt.Fprintf(s.out, "%s[%s] %s: %s\n",
		prefix, n.Time.Format("15:04"), n.Title, n.Message); err != nil {
		s.log.Warn("notification write failed", logx.Err(err))
	}
}
