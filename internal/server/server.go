package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"counter-go/internal/constants"
	"counter-go/internal/interfaces"
	"counter-go/internal/models"
	"counter-go/internal/protocol"

	"go.uber.org/zap"
)

// Dispatcher 根据解析结果生成响应
type Dispatcher interface {
	Serve(req *protocol.Request, parseErr error) (*protocol.Response, models.Route)
}

// Server 每个连接一个 goroutine，不限制并发连接数，也没有读写超时
type Server struct {
	addr     string
	handler  Dispatcher
	metrics  interfaces.MetricsCollector
	logger   *zap.Logger
	listener atomic.Pointer[net.Listener]
	wg       sync.WaitGroup
}

func New(addr string, handler Dispatcher, metrics interfaces.MetricsCollector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		addr:    addr,
		handler: handler,
		metrics: metrics,
		logger:  logger.Named("server"),
	}
}

// ListenAndServe 绑定地址后进入接受循环，绑定失败直接返回错误
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve 接受连接直到 ctx 取消。单个连接的错误不会结束循环。
// 返回时监听已关闭，正在处理的连接继续执行，可用 Wait 等待。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.listener.Store(&ln)
	s.logger.Info("server started", zap.String("addr", ln.Addr().String()))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		if err := ln.Close(); err != nil && !stderrors.Is(err, net.ErrClosed) {
			s.logger.Warn("close listener", zap.Error(err))
		}
	}()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("server stopped")
				return nil
			}
			if stderrors.Is(err, net.ErrClosed) {
				return fmt.Errorf("listener closed: %w", err)
			}

			// 例如文件描述符耗尽，退避后重试
			if backoff == 0 {
				backoff = constants.AcceptBackoffMin
			} else if backoff *= 2; backoff > constants.AcceptBackoffMax {
				backoff = constants.AcceptBackoffMax
			}
			s.logger.Warn("accept failed, retrying", zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				s.logger.Info("server stopped")
				return nil
			}
			continue
		}
		backoff = 0

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// Addr 返回实际监听地址，Serve 之前为 nil
func (s *Server) Addr() net.Addr {
	if ln := s.listener.Load(); ln != nil {
		return (*ln).Addr()
	}
	return nil
}

// Wait 等待所有已接受的连接处理完毕
func (s *Server) Wait() {
	s.wg.Wait()
}
