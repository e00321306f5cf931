package tiktoken

import (
	"io"

	"github.com/agentstation/tiktoken/scanner"
)

// ScannerOption configures a streaming Scanner.
type ScannerOption = scanner.Option

// WithBufferSize sets a Scanner's internal read buffer size.
var WithBufferSize = scanner.WithBufferSize

// WithMaxBuffer sets a Scanner's maximum accumulation buffer size.
var WithMaxBuffer = scanner.WithMaxBuffer

// Scanner streams token IDs out of an io.Reader, following the
// bufio.Scanner Scan/Err convention, for input too large to buffer
// entirely before calling Encode.
type Scanner = scanner.Scanner

// NewScanner creates a streaming Scanner over r with default options.
func (t *Tokenizer) NewScanner(r io.Reader) Scanner {
	return scanner.New(t, r)
}

// NewScannerOptions creates a streaming Scanner over r with custom
// buffering options.
func (t *Tokenizer) NewScannerOptions(r io.Reader, opts ...ScannerOption) Scanner {
	return scanner.NewWithOptions(t, r, opts...)
}

// Process streams tokens from r and writes each as a 4-byte
// little-endian token ID to w, returning the count written.
func (t *Tokenizer) Process(r io.Reader, w io.Writer) (int64, error) {
	scan := t.NewScanner(r)

	var count int64
	buf := make([]byte, 4)
	for scan.Scan() {
		tok := scan.Token()
		buf[0] = byte(tok)
		buf[1] = byte(tok >> 8)
		buf[2] = byte(tok >> 16)
		buf[3] = byte(tok >> 24)
		if _, err := w.Write(buf); err != nil {
			return count, err
		}
		count++
	}
	return count, scan.Err()
}

// TokenStream streams tokens from r onto a channel for concurrent
// consumption. Both channels are closed when scanning completes.
func (t *Tokenizer) TokenStream(r io.Reader) (<-chan TokenID, <-chan error) {
	tokens := make(chan TokenID, 100)
	errc := make(chan error, 1)

	go func() {
		defer close(tokens)
		defer close(errc)

		scan := t.NewScanner(r)
		for scan.Scan() {
			tokens <- scan.Token()
		}
		if err := scan.Err(); err != nil {
			errc <- err
		}
	}()

	return tokens, errc
}
