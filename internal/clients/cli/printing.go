// Package cli provides utilities for nicer CLI output
package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	indentation = "  "
	bullet      = "- "
)

// IndentedWriter

// An IndentedWriter forwards writes with every line prefixed by an indentation, leaving ANSI escape
// sequences intact. Bytes which aren't valid UTF-8 are written as U+FFFD replacement characters.
type IndentedWriter struct {
	indent     int
	ansiWriter *ansi.Writer
	skipIndent bool
	ansi       bool
}

func NewIndentedWriter(indent int, forward io.Writer) *IndentedWriter {
	return &IndentedWriter{
		indent: indent,
		ansiWriter: &ansi.Writer{
			Forward: forward,
		},
	}
}

// IndentedWriter: io.Writer

func (w *IndentedWriter) Write(b []byte) (n int, err error) {
	// Adapted from the Writer.Write method of the indent package in the MIT-licensed
	// github.com/muesli/reflow project, modified to also indent after `\r`.
	for _, c := range string(b) {
		switch {
		case c == '\x1B': // ANSI escape sequence
			w.ansi = true
		case w.ansi:
			if (c >= 0x41 && c <= 0x5a) || (c >= 0x61 && c <= 0x7a) {
				// ANSI sequence terminated
				w.ansi = false
			}
		default:
			if !w.skipIndent {
				w.ansiWriter.ResetAnsi()
				if _, err := w.ansiWriter.Write([]byte(makeIndentation(w.indent))); err != nil {
					return 0, err
				}

				w.skipIndent = true
				w.ansiWriter.RestoreAnsi()
			}

			if c == '\n' || c == '\r' {
				// end of current line
				w.skipIndent = false
			}
		}

		if _, err := w.ansiWriter.Write([]byte(string(c))); err != nil {
			return 0, err
		}
	}

	return len(b), nil
}

func makeIndentation(indent int) string {
	return strings.Repeat(indentation, indent)
}

// Indented

func IndentedFprintf(indent int, w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s%s", makeIndentation(indent), fmt.Sprintf(format, a...))
}

func IndentedFprintln(indent int, w io.Writer, a ...any) {
	_, _ = fmt.Fprintf(w, "%s%s\n", makeIndentation(indent), fmt.Sprint(a...))
}

func IndentedFprintYaml(indent int, w io.Writer, a any) error {
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(len(indentation))
	if err := encoder.Encode(a); err != nil {
		return errors.Wrapf(err, "couldn't serialize %T as yaml document", a)
	}
	if err := encoder.Close(); err != nil {
		return errors.Wrapf(
			err, "couldn't close yaml encoder after serializing %T as yaml document", a,
		)
	}
	lines := strings.Split(buf.String(), "\n")
	for _, line := range lines[:len(lines)-1] { // last line follows last "\n" and is empty
		IndentedFprintln(indent, w, line)
	}
	return nil
}

// Bulleted

func BulletedFprintln(indent int, w io.Writer, a ...any) {
	_, _ = fmt.Fprintf(w, "%s%s\n", makeBullet(indent), fmt.Sprint(a...))
}

func makeBullet(indent int) string {
	return strings.Repeat(indentation, indent) + bullet
}
