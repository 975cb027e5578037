package llm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// SSEEvent represents a single Server-Sent Event
type SSEEvent struct {
	Event string // Event type (optional, empty if not specified)
	Data  []byte // Concatenated data lines
	ID    string // Event ID (optional)
}

// SSEParser parses Server-Sent Events (SSE) streams
type SSEParser struct {
	reader    *bufio.Reader
	buffer    *bytes.Buffer // Accumulates data for the current event
	eventType string        // Current event type
	eventID   string        // Current event ID
}

// NewSSEParser creates a new SSE parser
func NewSSEParser(reader io.Reader) *SSEParser {
	return &SSEParser{
		reader: bufio.NewReader(reader),
		buffer: &bytes.Buffer{},
	}
}

// NextEvent reads the next SSE event from the stream.
// Returns io.EOF when the stream is complete and io.ErrUnexpectedEOF
// if the stream ends mid-event.
func (p *SSEParser) NextEvent() (SSEEvent, error) {
	for {
		line, err := p.reader.ReadBytes('\n')
		if err != nil {
			if p.buffer.Len() > 0 || p.eventType != "" {
				return SSEEvent{}, fmt.Errorf("stream ended mid-event: %w", io.ErrUnexpectedEOF)
			}
			return SSEEvent{}, err
		}

		line = bytes.TrimSuffix(line, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})

		// Empty line marks the end of an event
		if len(line) == 0 {
			if p.buffer.Len() > 0 || p.eventType != "" {
				event := SSEEvent{
					Event: p.eventType,
					Data:  append([]byte(nil), p.buffer.Bytes()...),
					ID:    p.eventID,
				}
				p.reset()
				return event, nil
			}
			continue
		}

		// Comments start with ':'
		if line[0] == ':' {
			continue
		}

		idx := bytes.IndexByte(line, ':')
		if idx == -1 {
			// Field with no value, ignored (per SSE spec)
			continue
		}

		field := string(line[:idx])
		value := string(line[idx+1:])
		if len(value) > 0 && value[0] == ' ' {
			value = value[1:]
		}

		switch field {
		case "event":
			p.eventType = value
		case "data":
			if p.buffer.Len() > 0 {
				p.buffer.WriteByte('\n')
			}
			p.buffer.WriteString(value)
		case "id":
			p.eventID = value
		}
	}
}

// reset clears the parser state for the next event
func (p *SSEParser) reset() {
	p.buffer.Reset()
	p.eventType = ""
	p.eventID = ""
}
