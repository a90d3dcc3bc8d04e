package protocol

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"

	// RFC 1123，时区固定为 GMT
	dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

var statusText = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

// StatusText 未登记的状态码沿用 "OK"
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "OK"
}

// Response 一个完整的响应，写出后连接即关闭
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	// Date 为零值时使用当前时间
	Date time.Time
}

func JSONResponse(status int, v interface{}) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Response{Status: status, ContentType: ContentTypeJSON, Body: body}, nil
}

func TextResponse(status int, text string) *Response {
	return &Response{Status: status, ContentType: ContentTypeText, Body: []byte(text)}
}

// WriteTo 依次写出状态行、四个固定头、空行和响应体，返回写出的字节数
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(128 + len(r.Body))
	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(strconv.Itoa(r.Status))
	buf.WriteByte(' ')
	buf.WriteString(StatusText(r.Status))
	buf.WriteString("\r\nDate: ")
	buf.WriteString(date.UTC().Format(dateFormat))
	buf.WriteString("\r\nConnection: close\r\nContent-Type: ")
	buf.WriteString(r.ContentType)
	buf.WriteString("\r\nContent-Length: ")
	buf.WriteString(strconv.Itoa(len(r.Body)))
	buf.WriteString("\r\n\r\n")
	buf.Write(r.Body)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
