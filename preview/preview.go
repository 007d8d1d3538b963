// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: preview/preview.go
// Summary: Highlighted text preview: enry detection, chroma tokens, tcell styles.

package preview

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

// ErrBinary reports a file that is not previewable text.
var ErrBinary = errors.New("preview: binary file")

const defaultStyleName = "monokai"

// DefaultMaxBytes bounds how much of a file the preview reads.
const DefaultMaxBytes = 256 * 1024

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one rendered preview line.
type Line struct {
	Spans []Span
}

// Document is a highlighted preview of a text file.
type Document struct {
	Language  string
	Lines     []Line
	Truncated bool
}

// Config holds preview settings.
type Config struct {
	// StyleName selects the chroma style; empty uses the default.
	StyleName string

	// MaxBytes bounds how much of the file is read. Default: 256 KiB.
	MaxBytes int
}

// File reads and highlights path. Binary content is refused with
// ErrBinary; unknown languages still preview as plain text.
func File(path string, cfg Config) (*Document, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(cfg.MaxBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}
	truncated := len(data) > cfg.MaxBytes
	if truncated {
		data = data[:cfg.MaxBytes]
	}

	if enry.IsBinary(data) {
		return nil, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	language := enry.GetLanguage(filepath.Base(path), data)
	doc := Highlight(string(data), language, cfg.StyleName)
	doc.Truncated = truncated
	return doc, nil
}

// Highlight tokenizes text for the detected language and maps every
// token onto a tcell style.
func Highlight(text, language, styleName string) *Document {
	lexer := resolveLexer(language, text)
	style := resolveStyle(styleName)

	doc := &Document{Language: language}

	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, text)
	if err != nil {
		// Tokenizer failure degrades to unstyled text.
		for _, raw := range strings.Split(text, "\n") {
			doc.Lines = append(doc.Lines, Line{Spans: []Span{{Text: raw}}})
		}
		return doc
	}

	current := Line{}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		tokStyle := cellStyle(style.Get(tok.Type))
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				doc.Lines = append(doc.Lines, current)
				current = Line{}
			}
			if part != "" {
				current.Spans = append(current.Spans, Span{Text: part, Style: tokStyle})
			}
		}
	}
	doc.Lines = append(doc.Lines, current)
	return doc
}

func resolveLexer(language, text string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// resolveStyle maps a style name to a chroma style, falling back to the
// default.
func resolveStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// cellStyle converts a chroma style entry into a tcell style. Tokens
// without a set colour keep the terminal default foreground.
func cellStyle(entry chroma.StyleEntry) tcell.Style {
	style := tcell.StyleDefault
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
