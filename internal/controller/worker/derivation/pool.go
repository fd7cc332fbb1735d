package derivation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Media-Service/internal/dto"
	"github.com/andreyxaxa/Media-Service/internal/usecase"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/andreyxaxa/Media-Service/pkg/types/errs"
)

const (
	_defaultQueueSize      = 256
	_defaultProcessTimeout = 30 * time.Second
)

// Pool runs derivation tasks on a fixed set of goroutines fed by a bounded
// queue. Tasks are held in memory only; whatever is queued or running when
// Shutdown gives up is lost.
type Pool struct {
	uc     usecase.DerivationUseCase
	logger logger.Interface

	workers        int
	queueSize      int
	processTimeout time.Duration

	mu     sync.RWMutex
	tasks  chan dto.DerivationTask
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

var _ usecase.Scheduler = (*Pool)(nil)

func New(uc usecase.DerivationUseCase, l logger.Interface, opts ...Option) *Pool {
	p := &Pool{
		uc:             uc,
		logger:         l,
		workers:        runtime.NumCPU(),
		queueSize:      _defaultQueueSize,
		processTimeout: _defaultProcessTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.tasks = make(chan dto.DerivationTask, p.queueSize)

	return p
}

func (p *Pool) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Pool - Start - pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.logger.Info("Pool - Start - %d derivation workers", p.workers)

	return nil
}

// Schedule enqueues a task without waiting for it. A full queue drops the task.
func (p *Pool) Schedule(task dto.DerivationTask) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("Pool - Schedule - key=%s: %w", task.FileKey, errs.ErrSchedulerClosed)
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return fmt.Errorf("Pool - Schedule - key=%s: %w", task.FileKey, errs.ErrQueueFull)
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	// runs until Shutdown closes the queue
	for task := range p.tasks {
		// canceled: drain without processing
		if p.ctx.Err() != nil {
			continue
		}
		p.process(task)
	}
}

func (p *Pool) process(task dto.DerivationTask) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(fmt.Errorf("panic %v", r), "Pool - process - panic: key=%s", task.FileKey)
		}
	}()

	ctx, cancel := context.WithTimeout(p.ctx, p.processTimeout)
	defer cancel()

	res, err := p.uc.Derive(ctx, task)
	if err != nil {
		p.logger.Error(err, "Pool - process - p.uc.Derive: key=%s", task.FileKey)

		return
	}

	p.logger.Debug("Pool - process - derived key=%s thumbnail=%s webp=%s", task.FileKey, res.ThumbnailKey, res.WebPKey)
}

// Shutdown stops accepting tasks and lets the workers drain the queue until
// ctx expires. After that running derivations are canceled and the rest of
// the queue is abandoned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	if !p.started.Load() {
		return nil
	}

	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()

		return nil
	case <-ctx.Done():
		abandoned := len(p.tasks)
		p.cancel()
		p.logger.Warn("Pool - Shutdown - drain timeout, abandoned %d queued tasks", abandoned)

		return fmt.Errorf("Pool - Shutdown: %w", ctx.Err())
	}
}

// Len reports the number of queued tasks.
func (p *Pool) Len() int {
	return len(p.tasks)
}
