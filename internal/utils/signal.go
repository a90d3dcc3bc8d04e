package utils

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// exit 测试中替换
var exit = os.Exit

// SetupCloseHandler 第一次收到 SIGINT/SIGTERM 时调用 callback，
// 第二次收到信号时立即以状态 1 退出。返回的 stop 取消信号监听。
func SetupCloseHandler(logger *zap.Logger, callback func()) (stop func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("signal")

	c := make(chan os.Signal, 2)
	done := make(chan struct{})
	var once sync.Once

	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for {
			select {
			case sig := <-c:
				first := false
				once.Do(func() {
					first = true
					logger.Info("shutting down", zap.Stringer("signal", sig))
					go callback()
				})
				if !first {
					logger.Warn("forced exit", zap.Stringer("signal", sig))
					exit(1)
					return
				}
			case <-done:
				return
			}
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(c)
			close(done)
		})
	}
}
