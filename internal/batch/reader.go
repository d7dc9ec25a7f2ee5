// Package batch reads newline-delimited hex-encoded messages, one
// encoded value per line, for aperctl's batch-decode mode. Grounded on
// the teacher's parser.go, which read an ASN.1 source file line by line
// with bufio.Scanner; the scanning idiom carries over even though the
// input format and purpose (decoding wire messages, not compiling
// schema source) are entirely different.
package batch

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Message pairs a decoded line's raw bytes with its 1-based line
// number, so a caller reporting a decode failure can point back at the
// offending input line.
type Message struct {
	Line uint64
	Data []byte
}

// ReadAll scans r for hex-encoded lines, skipping blank lines and lines
// starting with '#'. It returns every successfully parsed line's bytes;
// a malformed hex line aborts the scan with an error naming the line
// number.
func ReadAll(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		messages []Message
		lineNo   uint64
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("batch: line %d: %w", lineNo, err)
		}
		messages = append(messages, Message{Line: lineNo, Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return messages, nil
}
