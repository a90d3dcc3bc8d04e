package testutil

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response 客户端侧解析出的响应
type Response struct {
	Status  int
	Reason  string
	Headers map[string]string
	Body    []byte
}

// ReadResponse 读取服务端写出的响应，按 Content-Length 读取响应体
func ReadResponse(br *bufio.Reader) (*Response, error) {
	line, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("read status line: %w", err)
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "HTTP/") {
		return nil, fmt.Errorf("bad status line %q", line)
	}
	status, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("bad status code %q: %w", parts[1], err)
	}

	resp := &Response{Status: status, Reason: parts[2], Headers: make(map[string]string)}
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("bad header %q", line)
		}
		resp.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	length, err := strconv.Atoi(resp.Headers["Content-Length"])
	if err != nil {
		return nil, fmt.Errorf("bad content length: %w", err)
	}
	resp.Body = make([]byte, length)
	if _, err := io.ReadFull(br, resp.Body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return resp, nil
}

// readLine 读取一行并去掉 CRLF，EOF 前的不完整行视为错误
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
