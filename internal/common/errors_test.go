package common

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusError_Matching(t *testing.T) {
	notFound := NewStatusError("get link", "https://x/api/links/1", 404, nil)
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.ErrorIs(t, notFound, ErrInvalidResponse)

	teapot := NewStatusError("create container", "https://x/api/containers", 418, []byte("nope"))
	assert.ErrorIs(t, teapot, ErrInvalidResponse)
	assert.NotErrorIs(t, teapot, ErrNotFound)
	assert.Contains(t, teapot.Error(), "418")
	assert.Contains(t, teapot.Error(), "nope")

	var se *StatusError
	wrapped := errors.Join(errors.New("upload"), teapot)
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, 418, se.StatusCode)
}

func TestNewStatusError_TruncatesBody(t *testing.T) {
	e := NewStatusError("op", "u", 500, []byte(strings.Repeat("a", 1000)))
	assert.Len(t, e.Body, maxBodyInError+3)
	assert.True(t, strings.HasSuffix(e.Body, "..."))
}

func TestWrappingErrors_Unwrap(t *testing.T) {
	fe := &FileError{Op: "read", Path: "/tmp/a", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, fe, io.ErrUnexpectedEOF)
	assert.Equal(t, "read /tmp/a: unexpected EOF", fe.Error())

	te := &TransportError{Method: "GET", URL: "https://x", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, te, context.DeadlineExceeded)

	de := &DecodeError{Op: "get link", Err: errors.New("missing data.linkUUID")}
	assert.ErrorIs(t, de, ErrInvalidResponse)
	assert.Contains(t, de.Error(), "missing data.linkUUID")
}
