package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, ErrMalformedRequest.HTTPStatus())
	assert.Equal(t, 405, ErrMethodNotAllowed.HTTPStatus())
	assert.Equal(t, 404, ErrRouteNotFound.HTTPStatus())
	assert.Equal(t, 500, ErrCounterOverflow.HTTPStatus())
	assert.Equal(t, 0, ErrIO.HTTPStatus())
	assert.Equal(t, "error code 42", ErrorCode(42).String())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad request line \"x\"", New(ErrMalformedRequest, "bad request line %q", "x").Error())
	assert.Equal(t, "read header: EOF", Wrap(ErrIO, io.EOF, "read header").Error())
	assert.Equal(t, "route not found", (&ProtocolError{Code: ErrRouteNotFound}).Error())
}

func TestIsAndCodeOf(t *testing.T) {
	err := fmt.Errorf("serve: %w", Wrap(ErrIO, io.ErrUnexpectedEOF, "read request line"))

	assert.True(t, stderrors.Is(err, ErrConnection))
	assert.False(t, stderrors.Is(err, ErrMalformed))
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, ErrIO, CodeOf(err))

	assert.Equal(t, ErrorCode(0), CodeOf(nil))
	assert.Equal(t, ErrorCode(0), CodeOf(io.EOF))
	assert.True(t, stderrors.Is(New(ErrCounterOverflow, "key %d", 1), ErrOverflow))
}
