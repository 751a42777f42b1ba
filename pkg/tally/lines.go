package tally

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// DefaultMaxLineLength bounds a single name in bytes.
const DefaultMaxLineLength = 1024

// lineReader yields lines with their terminator stripped, cut to at most max
// bytes. Memory use is bounded by max regardless of the input.
type lineReader struct {
	r   *bufio.Reader
	max int
}

func newLineReader(rd io.Reader, max int) *lineReader {
	// Room for the longest allowed line plus "\r\n".
	return &lineReader{r: bufio.NewReaderSize(rd, max+2), max: max}
}

// next returns the next line. The slice is only valid until the following call.
func (lr *lineReader) next() ([]byte, bool, error) {
	raw, isPrefix, err := lr.r.ReadLine()
	if err != nil {
		return nil, false, err
	}
	if !isPrefix && len(raw) <= lr.max {
		return raw, false, nil
	}

	line := append([]byte(nil), cut(raw, lr.max)...)
	for isPrefix {
		_, isPrefix, err = lr.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, true, err
		}
	}
	return line, true, nil
}

// cut shortens b to at most n bytes without splitting a UTF-8 sequence.
func cut(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return b[:n]
}
