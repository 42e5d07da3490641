// Package remote is the async execution handle shared by the dapps middleware.
package remote

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/xuperchain/xdapps/lib/logs"
)

const (
	DefaultConcurrency = 64
	SubModName         = "remote"
)

var ErrRemoteClosed = errors.New("remote closed")

// Task runs on the remote; ctx is cancelled when the remote closes
type Task func(ctx context.Context)

// Remote runs tasks on goroutines with bounded concurrency
type Remote struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	log    logs.Logger
}

func NewRemote(concurrency int64) *Remote {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	log, _ := logs.NewLogger("", SubModName)
	ctx, cancel := context.WithCancel(context.Background())
	return &Remote{
		sem:    semaphore.NewWeighted(concurrency),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Spawn runs task in the background without waiting for it
func (r *Remote) Spawn(task Task) error {
	if !r.enter() {
		return ErrRemoteClosed
	}

	go func() {
		defer r.wg.Done()
		// 已提交的任务总会执行，关闭后通过ctx感知取消
		_ = r.sem.Acquire(context.Background(), 1)
		defer r.sem.Release(1)
		r.run(r.ctx, task)
	}()
	return nil
}

// Exec runs task on the remote and blocks until it finishes or ctx is done
func (r *Remote) Exec(ctx context.Context, task Task) error {
	if !r.enter() {
		return ErrRemoteClosed
	}
	defer r.wg.Done()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer r.sem.Release(1)

	tctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.ctx, cancel)
	defer stop()

	r.run(tctx, task)
	return ctx.Err()
}

// Close cancels running tasks and waits for them, idempotent
func (r *Remote) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

func (r *Remote) enter() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	r.wg.Add(1)
	return true
}

func (r *Remote) run(ctx context.Context, task Task) {
	defer func() {
		if e := recover(); e != nil {
			r.log.Error("remote task panic", "error", e)
		}
	}()
	task(ctx)
}
