// Package scanner provides streaming, bufio.Scanner-style tokenization
// over an io.Reader, for inputs too large to read into memory before
// encoding (spec.md's supplemented streaming surface; the core interface
// itself only defines whole-buffer Encode/Decode).
package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Tokenizer is the minimal interface scanner needs from a
// *tiktoken.Tokenizer, kept narrow to avoid an import cycle between this
// package and the root package.
type Tokenizer interface {
	Encode(text string) []uint32
}

// Scanner streams token IDs out of an io.Reader, one at a time, following
// the bufio.Scanner convention of Scan/Token/Err.
type Scanner interface {
	// Scan advances to the next token. Returns false at EOF or on error.
	Scan() bool
	// Token returns the most recent token produced by Scan.
	Token() uint32
	// Err returns the first error encountered during scanning, if any.
	Err() error
}

// scanner implements Scanner by accumulating bytes up to a tokenization
// boundary (whitespace, or a buffer-size backstop), encoding the
// accumulated chunk, and replaying its tokens one at a time. Each chunk is
// encoded on its own, so whitespace that ends a chunk is tokenized there
// rather than joining the next chunk's first word, and a max-buffer cut
// splits the run it lands in: tokens near a chunk boundary can differ
// from a single whole-buffer Encode call — an accepted tradeoff of
// streaming at all, same as the teacher's scanner.
type scanner struct {
	t Tokenizer
	r *bufio.Reader

	textBuf  bytes.Buffer
	tokens   []uint32
	tokIndex int
	pending  []byte

	err  error
	done bool

	bufSize   int
	maxBuffer int
}

// Option configures scanner behavior.
type Option func(*scanner)

// WithBufferSize sets the internal read buffer size. Default 4096 bytes.
func WithBufferSize(size int) Option {
	return func(s *scanner) {
		if size > 0 {
			s.bufSize = size
		}
	}
}

// WithMaxBuffer sets the maximum accumulation buffer size before a chunk
// is forcibly tokenized regardless of whitespace boundaries. Default 1MB.
func WithMaxBuffer(size int) Option {
	return func(s *scanner) {
		if size > 0 {
			s.maxBuffer = size
		}
	}
}

// New creates a Scanner with default options.
func New(t Tokenizer, r io.Reader) Scanner {
	return NewWithOptions(t, r)
}

// NewWithOptions creates a Scanner with custom options.
func NewWithOptions(t Tokenizer, r io.Reader, opts ...Option) Scanner {
	s := &scanner{
		t:         t,
		tokens:    make([]uint32, 0, 32),
		bufSize:   4096,
		maxBuffer: 1024 * 1024,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.r = bufio.NewReaderSize(r, s.bufSize)
	return s
}

func (s *scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	if s.tokIndex < len(s.tokens) {
		s.tokIndex++
		return true
	}

	if s.done && s.textBuf.Len() == 0 {
		return false
	}

	s.tokens = s.tokens[:0]
	s.tokIndex = 0

	if err := s.accumulate(); err != nil {
		s.err = &ScanError{Offset: int64(s.textBuf.Len()), Err: err}
		return false
	}

	if s.textBuf.Len() == 0 {
		return false
	}

	s.tokens = s.t.Encode(s.textBuf.String())
	s.textBuf.Reset()

	if len(s.tokens) == 0 {
		return s.Scan()
	}
	s.tokIndex = 1
	return true
}

// accumulate reads from r until a tokenization boundary is reached: a
// trailing whitespace byte, EOF, or the configured max buffer size.
func (s *scanner) accumulate() error {
	for {
		buf := make([]byte, s.bufSize)
		n, err := s.r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(s.pending) > 0 {
				chunk = append(s.pending, chunk...)
				s.pending = nil
			}
			s.textBuf.Write(chunk)
		}

		if s.textBuf.Len() >= s.maxBuffer {
			s.truncateToBoundary()
			return nil
		}

		if err == io.EOF {
			if len(s.pending) > 0 {
				s.textBuf.Write(s.pending)
				s.pending = nil
			}
			s.done = true
			return nil
		}
		if err != nil {
			return err
		}

		if s.atBoundary() {
			return nil
		}
	}
}

func (s *scanner) atBoundary() bool {
	buf := s.textBuf.Bytes()
	if len(buf) == 0 {
		return false
	}
	last := buf[len(buf)-1]
	return last == ' ' || last == '\n' || last == '\t' || last == '\r'
}

// truncateToBoundary shrinks the buffer to the last ASCII-safe UTF-8
// boundary when the max-buffer backstop is hit mid character, carrying
// the remainder over as pending bytes for the next read.
func (s *scanner) truncateToBoundary() {
	buf := s.textBuf.Bytes()
	cut := len(buf)
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-4; i-- {
		if buf[i]&0xC0 != 0x80 {
			cut = i
			break
		}
	}
	if cut < len(buf) && cut > 0 {
		s.pending = append([]byte(nil), buf[cut:]...)
		s.textBuf.Truncate(cut)
	}
}

func (s *scanner) Token() uint32 {
	if s.tokIndex > 0 && s.tokIndex <= len(s.tokens) {
		return s.tokens[s.tokIndex-1]
	}
	return 0
}

func (s *scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// ScanError reports a read failure during streaming, with the byte offset
// into the current chunk it occurred at.
type ScanError struct {
	Offset int64
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at offset %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }
