package anthropic

import (
	"bufio"
	"io"
	"strings"
)

// sseEvent is one server-sent event: its event name and the joined data
// payload.
type sseEvent struct {
	Event string
	Data  string
}

// sseScanner walks an SSE stream event by event. A blank line terminates an
// event; comment lines (leading colon) are skipped.
type sseScanner struct {
	scanner *bufio.Scanner
	event   sseEvent
	err     error
}

func newSSEScanner(r io.Reader) *sseScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseScanner{scanner: scanner}
}

// Next advances to the next event, returning false at end of stream or on a
// read error.
func (s *sseScanner) Next() bool {
	var event string
	var data []string

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			if event != "" || len(data) > 0 {
				s.event = sseEvent{Event: event, Data: strings.Join(data, "\n")}
				return true
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		if value, ok := strings.CutPrefix(line, "event:"); ok {
			event = strings.TrimSpace(value)
			continue
		}
		if value, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(value, " "))
		}
	}
	s.err = s.scanner.Err()

	if event != "" || len(data) > 0 {
		s.event = sseEvent{Event: event, Data: strings.Join(data, "\n")}
		return true
	}
	return false
}

func (s *sseScanner) Event() sseEvent {
	return s.event
}

func (s *sseScanner) Err() error {
	return s.err
}
