package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// shutdownTimeout is the shared deadline for all registered cleanup tasks.
const shutdownTimeout = 15 * time.Second

// ShutdownManager cancels the base context and runs registered cleanup tasks
// when the process receives SIGINT or SIGTERM. Tasks run in registration
// order under one deadline.
type ShutdownManager struct {
	cancel context.CancelFunc

	mu    sync.Mutex
	tasks []func(context.Context) error
}

func NewShutdownManager(ctx context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &ShutdownManager{cancel: cancel}
}

// Register adds a cleanup task. Safe to call from any goroutine.
func (sm *ShutdownManager) Register(task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tasks = append(sm.tasks, task)
}

// StartListening installs the signal handler. On the first SIGINT or SIGTERM
// it cancels the base context, runs every registered task and exits.
func (sm *ShutdownManager) StartListening() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("[SHUTDOWN] Caught %v, stopping", sig)
		sm.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		sm.mu.Lock()
		tasks := sm.tasks
		sm.mu.Unlock()

		for _, task := range tasks {
			if err := task(ctx); err != nil {
				log.Printf("[SHUTDOWN] Cleanup task failed: %v", err)
			}
		}

		log.Println("[SHUTDOWN] Done")
		os.Exit(0)
	}()
}
