package notifications

import (
	"fmt"
	"io"

	"offertrack/internal/models"
)

var kindMarks = map[models.Kind]string{
	models.KindSuccess: "[ok]",
	models.KindError:   "[error]",
	models.KindInfo:    "[info]",
	models.KindWarning: "[warn]",
}

// WriterDisplay prints each notification as a single toast line.
type WriterDisplay struct {
	w io.Writer
}

// NewWriterDisplay creates a display that writes to w.
func NewWriterDisplay(w io.Writer) *WriterDisplay {
	return &WriterDisplay{w: w}
}

// Show implements Display.
func (d *WriterDisplay) Show(n models.Notification) {
	line := kindMarks[n.Kind] + " " + n.Title
	if n.Description != "" {
		line += ": " + n.Description
	}
	fmt.Fprintln(d.w, line)
}
