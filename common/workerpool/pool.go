package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"yakuchecker/common/log"
)

var (
	// ErrClosed 池已关闭
	ErrClosed = errors.New("worker pool 已关闭")
	// ErrQueueFull 队列已满
	ErrQueueFull = errors.New("worker pool 队列已满")
)

// Task 定义任务函数类型
type Task func()

// Pool Worker Pool 实现，限制并发的牌效计算数量
type Pool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
}

// New 创建一个新的 Worker Pool
// workers: worker 数量
// queueSize: 任务队列大小
func New(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	pool := &Pool{
		workers:   workers,
		taskQueue: make(chan Task, queueSize),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	log.Info("Worker pool 启动, workers=%d, queue=%d", workers, queueSize)
	return pool
}

// worker 工作协程，队列关闭后退出
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Task panic recovered, worker=%d, panic=%v", id, r)
				}
			}()
			task()
		}()
	}
}

// TrySubmit 尝试提交任务，如果队列满了立即返回 false
func (p *Pool) TrySubmit(task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.taskQueue <- task:
		return true
	default:
		return false
	}
}

// Do 提交计算并等待结果，ctx 到期时立即返回，计算本身仍会在后台跑完
func Do[T any](ctx context.Context, p *Pool, fn func() T) (T, error) {
	var zero T
	done := make(chan T, 1)
	panicked := make(chan struct{})
	ok := p.TrySubmit(func() {
		defer func() {
			if r := recover(); r != nil {
				close(panicked)
				panic(r)
			}
		}()
		done <- fn()
	})
	if !ok {
		p.mu.RLock()
		closed := p.closed
		p.mu.RUnlock()
		if closed {
			return zero, ErrClosed
		}
		return zero, ErrQueueFull
	}

	select {
	case v := <-done:
		return v, nil
	case <-panicked:
		return zero, fmt.Errorf("任务执行失败")
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Pending 排队中的任务数
func (p *Pool) Pending() int {
	return len(p.taskQueue)
}

// Workers worker 数量
func (p *Pool) Workers() int {
	return p.workers
}

// Shutdown 优雅关闭 Worker Pool，等待已提交的任务完成
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.taskQueue)
	p.mu.Unlock()

	p.wg.Wait()
	log.Info("Worker pool 已关闭")
}
