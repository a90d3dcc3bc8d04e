package constants

import "time"

var (
	// 监听相关
	DefaultPort = 8080 // 默认监听端口

	// 接受连接失败时的退避
	AcceptBackoffMin = 5 * time.Millisecond
	AcceptBackoffMax = time.Second

	// 读缓冲大小
	ReadBufferSize = 4096
)

// Banner 根路径返回的说明文本
const Banner = `counter-go

Endpoints:
  GET /count/{id}   increment counter {id} and the global counter
  GET /peek/{id}    read counter {id} and the global counter without changing them
  GET /metrics      request metrics as JSON
`

// 错误响应文本
const (
	MsgBadRequest       = "Bad Request"
	MsgNotFound         = "Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgCounterOverflow  = "Counter Overflow"
)
