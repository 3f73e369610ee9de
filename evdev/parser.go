package evdev

import (
	"encoding/binary"
	"time"
)

// Event is one decoded input_event.
type Event struct {
	Time  time.Duration // kernel timestamp since the epoch of the device clock
	Type  uint16
	Code  uint16
	Value int32
}

// Parser splits a byte stream into input_event records. The kernel struct
// is 16 bytes with a 32-bit timeval and 24 bytes with a 64-bit one. A zero
// Parser guesses the size from the first read; NewParser fixes it.
type Parser struct {
	buf []byte
	sz  int
}

// NewParser returns a parser for records of size bytes (16 or 24).
func NewParser(size int) *Parser {
	return &Parser{sz: size}
}

// RecordSize returns the record size in use, or 0 while still guessing.
func (p *Parser) RecordSize() int { return p.sz }

// Feed appends chunk and calls fn for every complete record. Partial
// records are kept for the next call.
func (p *Parser) Feed(chunk []byte, fn func(Event)) {
	p.buf = append(p.buf, chunk...)
	if p.sz == 0 {
		switch {
		case len(p.buf) >= 48 && len(p.buf)%24 == 0:
			p.sz = 24
		case len(p.buf) >= 32 && len(p.buf)%16 == 0:
			p.sz = 16
		case len(p.buf) >= 24:
			p.sz = 24
		}
	}
	for p.sz != 0 && len(p.buf) >= p.sz {
		fn(decodeRecord(p.buf[:p.sz]))
		p.buf = p.buf[p.sz:]
	}
	if len(p.buf) == 0 {
		p.buf = nil
	}
}

func decodeRecord(rec []byte) Event {
	var ev Event
	var sec, usec int64
	if len(rec) == 24 {
		sec = int64(binary.LittleEndian.Uint64(rec[0:8]))
		usec = int64(binary.LittleEndian.Uint64(rec[8:16]))
		rec = rec[16:]
	} else {
		sec = int64(int32(binary.LittleEndian.Uint32(rec[0:4])))
		usec = int64(int32(binary.LittleEndian.Uint32(rec[4:8])))
		rec = rec[8:]
	}
	ev.Time = time.Duration(sec)*time.Second + time.Duration(usec)*time.Microsecond
	ev.Type = binary.LittleEndian.Uint16(rec[0:2])
	ev.Code = binary.LittleEndian.Uint16(rec[2:4])
	ev.Value = int32(binary.LittleEndian.Uint32(rec[4:8]))
	return ev
}

// FrameSplitter groups events into frames ending in SYN_REPORT.
type FrameSplitter struct {
	pending []Event
}

// Add appends ev and returns the completed frame when ev is SYN_REPORT,
// otherwise nil. The returned slice is owned by the caller.
func (s *FrameSplitter) Add(ev Event) []Event {
	s.pending = append(s.pending, ev)
	if ev.Type != EvSyn || ev.Code != SynReport {
		return nil
	}
	frame := s.pending
	s.pending = nil
	return frame
}
