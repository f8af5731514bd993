// Package journal persists an append-only audit trail of upstream price
// fetches, encoded as a msgpack record stream.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// FetchRecord captures one upstream history fetch for audit and analysis.
type FetchRecord struct {
	Timestamp    time.Time `msgpack:"timestamp"`
	Provider     string    `msgpack:"provider"`
	Ticker       string    `msgpack:"ticker"`
	Start        string    `msgpack:"start"` // calendar date, 2006-01-02
	End          string    `msgpack:"end"`
	Bars         int       `msgpack:"bars"`
	DurationMs   int64     `msgpack:"duration_ms"`
	Success      bool      `msgpack:"success"`
	ErrorMessage string    `msgpack:"error_message,omitempty"`
}

// Writer appends fetch records to a msgpack stream file.
type Writer struct {
	mu    sync.Mutex
	file  *os.File
	enc   *msgpack.Encoder
	nowFn func() time.Time
}

// NewWriter opens (or creates) the journal file in append mode.
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		path = filepath.Join("journal", "fetches.msgpack")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: mkdir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	return &Writer{
		file:  file,
		enc:   msgpack.NewEncoder(file),
		nowFn: time.Now,
	}, nil
}

// Append writes one record to the journal.
func (w *Writer) Append(rec *FetchRecord) error {
	if rec == nil {
		return fmt.Errorf("journal: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("journal: encode record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ReadAll decodes every record from a journal file, oldest first.
func ReadAll(path string) ([]FetchRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer file.Close()

	dec := msgpack.NewDecoder(file)
	var records []FetchRecord
	for {
		var rec FetchRecord
		if err := dec.Decode(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}
