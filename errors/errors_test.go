package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAkismetErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *AkismetError
		want string
	}{
		{"config", NewConfigError("no api key"), "Configuration error: no api key"},
		{"transport", NewTransportError("dial failed", io.EOF), "Transport error: dial failed"},
		{"malformed", NewMalformedResponseError("missing header boundary"), "Malformed response: missing header boundary"},
		{"io", NewIOError(io.ErrUnexpectedEOF), "IO error: unexpected EOF"},
		{"storage", NewStorageError("read option", nil), "Settings storage error: read option"},
		{"encryption", NewEncryptionError("bad tag"), "Encryption error: bad tag"},
		{"unknown", NewUnknownError(), "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	err := fmt.Errorf("send: %w", NewTransportError("dial failed", io.EOF))
	require.True(t, stderrors.Is(err, io.EOF))
	assert.Equal(t, TransportError, TypeOf(err))
}

func TestClassification(t *testing.T) {
	assert.True(t, IsConfigError(NewConfigError("x")))
	assert.False(t, IsConfigError(nil))
	assert.False(t, IsConfigError(io.EOF))

	assert.True(t, IsIndeterminate(NewTransportError("x", nil)))
	assert.True(t, IsIndeterminate(NewMalformedResponseError("x")))
	assert.True(t, IsIndeterminate(NewIOError(io.EOF)))
	assert.False(t, IsIndeterminate(NewConfigError("x")))
	assert.False(t, IsIndeterminate(nil))

	assert.Equal(t, UnknownError, TypeOf(io.EOF))
	assert.Equal(t, "malformed_response", MalformedResponseError.String())
}
