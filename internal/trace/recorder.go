// Package trace keeps a zstd-compressed JSON-lines log of provider exchanges.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/rocketgeek/akismetclient-go/client"
)

// Recorder implements client.Recorder. Each exchange is one JSON line in a
// zstd stream; the stream is complete only after Close.
type Recorder struct {
	mu      sync.Mutex
	file    *os.File
	encoder *zstd.Encoder
	json    *json.Encoder
}

var _ client.Recorder = (*Recorder)(nil)

// Create truncates path and starts a new trace
func Create(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return &Recorder{file: f, encoder: enc, json: json.NewEncoder(enc)}, nil
}

// Record implements client.Recorder
func (r *Recorder) Record(ex client.Exchange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.json.Encode(ex); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// Close flushes the stream and closes the file
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	encErr := r.encoder.Close()
	fileErr := r.file.Close()
	if encErr != nil {
		return fmt.Errorf("close zstd writer: %w", encErr)
	}
	return fileErr
}

// Read decodes every exchange from a trace stream
func Read(rd io.Reader) ([]client.Exchange, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	var out []client.Exchange
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var ex client.Exchange
		if err := json.Unmarshal(scanner.Bytes(), &ex); err != nil {
			return nil, fmt.Errorf("decode trace entry %d: %w", len(out)+1, err)
		}
		out = append(out, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return out, nil
}

// ReadFile decodes every exchange from the trace at path
func ReadFile(path string) ([]client.Exchange, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return Read(f)
}
