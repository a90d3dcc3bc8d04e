package protocol

import (
	"bufio"
	stderrors "errors"
	"io"
	"strings"

	"counter-go/internal/errors"
)

// MaxLineLength 单行（请求行或请求头）的最大字节数
const MaxLineLength = 8 << 10

var errLineTooLong = stderrors.New("line too long")

// Request 只保留请求行，请求头只统计字节数
type Request struct {
	Method      string
	Target      string
	Proto       string
	HeaderBytes int64
	BytesRead   int64
}

// IsGet 方法名不区分大小写
func (r *Request) IsGet() bool {
	return strings.EqualFold(r.Method, "GET")
}

// ReadRequest 读取一个请求：请求行加若干请求头，空行结束。
// 出错时返回的 Request 仍带有已读取的字节数，调用方据此记账。
func ReadRequest(br *bufio.Reader) (*Request, error) {
	req := &Request{}

	line, n, err := readLine(br)
	req.BytesRead += n
	if err != nil {
		if err == errLineTooLong {
			return req, errors.Wrap(errors.ErrMalformedRequest, err, "request line")
		}
		return req, errors.Wrap(errors.ErrIO, err, "read request line")
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return req, errors.New(errors.ErrMalformedRequest, "bad request line %q", line)
	}
	req.Method, req.Target, req.Proto = fields[0], fields[1], fields[2]

	// 读取请求头直到空行，连接在请求头中途关闭也视为结束
	for {
		line, n, err := readLine(br)
		req.BytesRead += n
		req.HeaderBytes += n
		if err != nil {
			if err == errLineTooLong {
				return req, errors.Wrap(errors.ErrMalformedRequest, err, "header line")
			}
			if err == io.EOF {
				return req, nil
			}
			return req, errors.Wrap(errors.ErrIO, err, "read header")
		}
		if line == "" {
			return req, nil
		}
	}
}

// readLine 读取一行，去掉结尾的 CRLF（容忍单独的 LF），返回消耗的字节数。
// 在 EOF 前读到的不完整行按一行返回。
func readLine(br *bufio.Reader) (string, int64, error) {
	var (
		buf []byte
		n   int64
	)
	for {
		chunk, err := br.ReadSlice('\n')
		n += int64(len(chunk))
		if len(buf)+len(chunk) > MaxLineLength {
			return "", n, errLineTooLong
		}
		buf = append(buf, chunk...)

		switch err {
		case nil:
			return trimEOL(buf), n, nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(buf) == 0 {
				return "", n, io.EOF
			}
			return trimEOL(buf), n, nil
		default:
			return "", n, err
		}
	}
}

func trimEOL(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}
	return string(b)
}
