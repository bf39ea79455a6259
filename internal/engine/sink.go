package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// flushBatchSize is the number of pending errors accumulated before a
// streaming sink flushes to disk (spec §3, §4.8).
const flushBatchSize = 1000

// ErrorSink is the streaming/buffered error output abstraction driving C8.
// Buffered mode simply appends to Errors; streaming mode additionally
// batches writes to disk every flushBatchSize errors.
type ErrorSink struct {
	mu      sync.Mutex
	pending []ValidationError

	// Errors accumulates every record ever added, returned to the caller
	// in buffered mode. In streaming mode this is left empty by Finalize
	// (spec §6.4: "In streaming mode, errors is empty").
	Errors []ValidationError

	errorCount   int
	warningCount int

	streaming bool
	file      *os.File
	writer    *bufio.Writer
}

// NewBufferedSink returns a sink that keeps every error in memory.
func NewBufferedSink() *ErrorSink {
	return &ErrorSink{}
}

// NewStreamingSink returns a sink that appends batches of flushBatchSize
// records to path. The caller must call Finalize to flush the tail and
// release the file handle, on every exit path including cancellation.
func NewStreamingSink(path string) (*ErrorSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create streaming error file %q: %w", path, err)
	}
	return &ErrorSink{
		streaming: true,
		file:      f,
		writer:    bufio.NewWriter(f),
	}, nil
}

// Add records one validation error. Thread-safe: producers serialize on a
// single lock around the pending buffer; the flush operation releases the
// lock by copying the batch out first (spec §4.8, §9).
func (s *ErrorSink) Add(e ValidationError) {
	s.mu.Lock()
	if e.Severity == SeverityWarning {
		s.warningCount++
	} else {
		s.errorCount++
	}

	if !s.streaming {
		s.Errors = append(s.Errors, e)
		s.mu.Unlock()
		return
	}

	s.pending = append(s.pending, e)
	var batch []ValidationError
	if len(s.pending) >= flushBatchSize {
		batch = s.pending
		s.pending = nil
	}
	s.mu.Unlock()

	if batch != nil {
		s.flushBatch(batch)
	}
}

// AddAll records a batch of errors in their given order.
func (s *ErrorSink) AddAll(errs []ValidationError) {
	for _, e := range errs {
		s.Add(e)
	}
}

func (s *ErrorSink) flushBatch(batch []ValidationError) {
	if s.writer == nil {
		return
	}
	enc := json.NewEncoder(s.writer)
	for _, e := range batch {
		_ = enc.Encode(e) // best-effort: an I/O error here surfaces at Finalize via writer.Flush
	}
}

// Finalize flushes any pending tail batch and releases the file handle (if
// streaming), and returns the running totals. Must be called on every exit
// path, including cancellation (spec §4.8, §5).
func (s *ErrorSink) Finalize() (errorCount, warningCount int, err error) {
	s.mu.Lock()
	tail := s.pending
	s.pending = nil
	errorCount, warningCount = s.errorCount, s.warningCount
	s.mu.Unlock()

	if !s.streaming {
		return errorCount, warningCount, nil
	}

	if len(tail) > 0 {
		s.flushBatch(tail)
	}
	if s.writer != nil {
		if ferr := s.writer.Flush(); ferr != nil {
			err = fmt.Errorf("flush streaming error file: %w", ferr)
		}
	}
	if s.file != nil {
		if cerr := s.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close streaming error file: %w", cerr)
		}
	}
	return errorCount, warningCount, err
}

// IsStreaming reports whether this sink writes to disk.
func (s *ErrorSink) IsStreaming() bool {
	return s.streaming
}
