package protocol

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"counter-go/internal/models"
	"counter-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedDate = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func TestResponseWriteTo(t *testing.T) {
	resp, err := JSONResponse(200, models.CounterReport{ID: 7, PerIDCount: 1, GlobalCount: 1})
	require.NoError(t, err)
	resp.Date = fixedDate

	var buf bytes.Buffer
	n, err := resp.WriteTo(&buf)
	require.NoError(t, err)

	want := "HTTP/1.1 200 OK\r\n" +
		"Date: Tue, 05 Mar 2024 14:07:09 GMT\r\n" +
		"Connection: close\r\n" +
		"Content-Type: application/json; charset=utf-8\r\n" +
		"Content-Length: 39\r\n" +
		"\r\n" +
		`{"id":7,"perIdCount":1,"globalCount":1}`
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestResponseDateInGMT(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	resp := TextResponse(200, "hi")
	resp.Date = fixedDate.In(loc)

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Date: Tue, 05 Mar 2024 14:07:09 GMT\r\n")
}

func TestResponseRoundTrip(t *testing.T) {
	tests := []struct {
		status int
		reason string
		body   interface{}
		want   string
	}{
		{400, "Bad Request", models.ErrorBody{Error: "Bad Request"}, `{"error":"Bad Request"}`},
		{404, "Not Found", models.ErrorBody{Error: "Not Found"}, `{"error":"Not Found"}`},
		{405, "Method Not Allowed", models.ErrorBody{Error: "Method Not Allowed"}, `{"error":"Method Not Allowed"}`},
		{500, "Internal Server Error", models.ErrorBody{Error: "Counter Overflow"}, `{"error":"Counter Overflow"}`},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			resp, err := JSONResponse(tt.status, tt.body)
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = resp.WriteTo(&buf)
			require.NoError(t, err)

			got, err := testutil.ReadResponse(bufio.NewReader(&buf))
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Equal(t, tt.want, string(got.Body))
			assert.Equal(t, "close", got.Headers["Connection"])
			assert.Equal(t, ContentTypeJSON, got.Headers["Content-Type"])
			_, err = time.Parse(dateFormat, got.Headers["Date"])
			assert.NoError(t, err)
		})
	}
}

func TestTextResponse(t *testing.T) {
	resp := TextResponse(200, "héllo\n")
	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)

	got, err := testutil.ReadResponse(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, ContentTypeText, got.Headers["Content-Type"])
	assert.Equal(t, "7", got.Headers["Content-Length"], "length counts bytes, not runes")
	assert.Equal(t, "héllo\n", string(got.Body))
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", StatusText(200))
	assert.Equal(t, "Bad Request", StatusText(400))
	assert.Equal(t, "Not Found", StatusText(404))
	assert.Equal(t, "Method Not Allowed", StatusText(405))
	assert.Equal(t, "Internal Server Error", StatusText(500))
	assert.Equal(t, "OK", StatusText(418))
}

type shortWriter struct {
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, stderrors.New("broken pipe")
	}
	return len(p), nil
}

func TestResponseWriteToPartial(t *testing.T) {
	resp := TextResponse(200, "banner")
	n, err := resp.WriteTo(&shortWriter{limit: 10})
	assert.Error(t, err)
	assert.Equal(t, int64(10), n)
}
