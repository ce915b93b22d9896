package trace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketgeek/akismetclient-go/client"
	"github.com/rocketgeek/akismetclient-go/protocol"
)

func TestRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.zst")
	rec, err := Create(path)
	require.NoError(t, err)

	first := client.Exchange{
		ID:       "1",
		Time:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Command:  "verify-key",
		Path:     "/1.1/verify-key",
		Fields:   protocol.Fields{}.Add("key", "[REDACTED]").Add("blog", "http://a.com"),
		Status:   "HTTP/1.0 200 OK",
		Body:     "valid",
		Duration: 120 * time.Millisecond,
	}
	second := client.Exchange{ID: "2", Command: "comment-check", Error: "Transport error: connection failed"}
	require.NoError(t, rec.Record(first))
	require.NoError(t, rec.Record(second))
	require.NoError(t, rec.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4], "zstd frame magic")

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second.Error, got[1].Error)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}
