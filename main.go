package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"counter-go/internal/config"
	"counter-go/internal/counter"
	"counter-go/internal/handler"
	"counter-go/internal/metrics"
	"counter-go/internal/server"
	"counter-go/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置并创建日志器
	cfg, logger, err := config.Init(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "init config: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 计数器与统计在进程内只创建一次
	store := counter.NewStore()
	collector := metrics.NewCollector(logger)
	srv := server.New(cfg.ListenAddr(), handler.New(store, collector, logger), collector, logger)

	var expoLn net.Listener
	if cfg.MetricsAddr != "" {
		if expoLn, err = net.Listen("tcp", cfg.MetricsAddr); err != nil {
			logger.Fatal("failed to bind exposition listener", zap.String("addr", cfg.MetricsAddr), zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := utils.SetupCloseHandler(logger, cancel)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// 绑定失败是唯一的致命错误
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("counter server: %w", err)
		}
		return nil
	})
	if expoLn != nil {
		reg := metrics.NewRegistry(collector)
		g.Go(func() error {
			return metrics.ServeExposition(ctx, expoLn, reg, logger)
		})
	}

	err = g.Wait()

	// 等待正在处理的连接结束
	srv.Wait()
	collector.LogSummary()

	if err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
	logger.Info("bye")
}
