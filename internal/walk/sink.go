package repotree

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Style tags a rendered line so sinks can decorate it.
type Style int

const (
	StylePlain Style = iota
	StyleInfo        // root line
	StyleDir         // directory entry
	StyleMuted       // markers such as [empty]
	StyleError       // read and stat failures
)

// Sink receives rendered lines one at a time.
type Sink interface {
	Line(style Style, text string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(style Style, text string)

// Line calls f(style, text).
func (f SinkFunc) Line(style Style, text string) {
	f(style, text)
}

// WriterSink writes one line per call to an io.Writer, optionally coloured.
// The first write error stops further output and is kept for Err.
type WriterSink struct {
	w      io.Writer
	colors map[Style]*color.Color
	err    error
}

// NewWriterSink returns an undecorated sink, used for report files.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// NewConsoleSink returns a sink that colours lines when f is a terminal.
func NewConsoleSink(f *os.File) *WriterSink {
	s := &WriterSink{w: f}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		s.colors = map[Style]*color.Color{
			StyleInfo:  color.New(color.FgCyan, color.Bold),
			StyleDir:   color.New(color.FgBlue),
			StyleMuted: color.New(color.FgHiBlack),
			StyleError: color.New(color.FgRed),
		}
	}
	return s
}

// Line writes text followed by a newline.
func (s *WriterSink) Line(style Style, text string) {
	if s.err != nil {
		return
	}
	if c, ok := s.colors[style]; ok {
		text = c.Sprint(text)
	}
	_, s.err = fmt.Fprintln(s.w, text)
}

// Err returns the first write error, if any.
func (s *WriterSink) Err() error {
	return s.err
}
