package server

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"counter-go/internal/constants"
	"counter-go/internal/errors"
	"counter-go/internal/models"
	"counter-go/internal/protocol"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// connection 单个连接的处理状态，依次经过 读取 -> 分发 -> 写出 -> 记录 -> 关闭
type connection struct {
	id       string
	conn     net.Conn
	start    time.Time
	route    models.Route
	status   int
	bytesIn  int64
	bytesOut int64
}

// handleConnection 任何路径（包括 panic）都会先记录统计再关闭连接，且只关闭一次
func (s *Server) handleConnection(conn net.Conn) {
	c := &connection{
		id:    uuid.NewString(),
		conn:  conn,
		start: time.Now(),
		route: models.RouteOther,
	}

	var begun bool
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("connection panic",
				zap.String("conn_id", c.id),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"),
			)
		}

		latency := time.Since(c.start)
		s.metrics.RecordRequest(c.bytesIn, c.bytesOut, latency, c.route)
		if begun {
			s.metrics.EndRequest()
		}

		if err := conn.Close(); err != nil {
			s.logger.Debug("close connection", zap.String("conn_id", c.id), zap.Error(err))
		}
		s.logger.Debug("connection done",
			zap.String("conn_id", c.id),
			zap.Stringer("remote", conn.RemoteAddr()),
			zap.Stringer("route", c.route),
			zap.Int("status", c.status),
			zap.Int64("bytes_in", c.bytesIn),
			zap.Int64("bytes_out", c.bytesOut),
			zap.Duration("latency", latency),
		)
		s.wg.Done()
	}()

	s.metrics.BeginRequest()
	begun = true
	c.serve(s)
}

func (c *connection) serve(s *Server) {
	// 读取
	br := bufio.NewReaderSize(c.conn, constants.ReadBufferSize)
	req, err := protocol.ReadRequest(br)
	c.bytesIn = req.BytesRead
	if errors.CodeOf(err) == errors.ErrIO {
		// 对端已关闭或重置，放弃该连接
		s.logger.Debug("read request failed", zap.String("conn_id", c.id), zap.Error(err))
		return
	}

	// 分发
	resp, route := s.handler.Serve(req, err)
	c.route = route
	c.status = resp.Status

	// 写出
	n, err := resp.WriteTo(c.conn)
	c.bytesOut = n
	if err != nil {
		s.logger.Debug("write response failed",
			zap.String("conn_id", c.id),
			zap.Int64("written", n),
			zap.Error(err),
		)
	}
}
