package parse

import (
	"fmt"
	"strings"

	"github.com/gerunddev/vimwiki/region"
)

// Kind classifies a parse problem
type Kind int

const (
	// UnterminatedBlock is a code or math fence that is never closed
	UnterminatedBlock Kind = iota
	// InvalidHeaderLevel is a header whose marker runs differ or exceed six
	InvalidHeaderLevel
	// MalformedLink is a link without a target
	MalformedLink
	// MalformedTable is a row mixing divider cells with other cells
	MalformedTable
)

var kindNames = [...]string{"unterminated block", "invalid header level", "malformed link", "malformed table"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ErrorEntry is a single problem found in the source. Its region always
// carries line and column.
type ErrorEntry struct {
	Kind    Kind
	Message string
	Region  region.Region
}

func (e *ErrorEntry) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Region.Line, e.Region.Column, e.Kind, e.Message)
}

// Show renders the entry with the offending source line and a marker
// under the culprit
func (e *ErrorEntry) Show(src string) string {
	ix := region.NewIndex(src)
	pos := ix.Position(e.Region.Offset)
	text := ix.LineText(pos.Line)

	width := e.Region.Len
	if rest := len(text) - (e.Region.Offset - ix.LineStart(pos.Line)); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Error())
	fmt.Fprintf(&b, "  %s\n", text)
	fmt.Fprintf(&b, "  %s%s", strings.Repeat(" ", pos.Column-1), strings.Repeat("^", width))
	return b.String()
}

// Error is every problem found while parsing one source
type Error struct {
	Entries []*ErrorEntry
}

func (e *Error) Error() string {
	switch len(e.Entries) {
	case 0:
		return "no parse error"
	case 1:
		return "parse error: " + e.Entries[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d parse errors:", len(e.Entries))
	for _, entry := range e.Entries {
		b.WriteString("\n  ")
		b.WriteString(entry.Error())
	}
	return b.String()
}

// Fatal reports whether the parse was aborted
func (e *Error) Fatal() bool {
	return e.Has(UnterminatedBlock)
}

// Has reports whether any entry is of the given kind
func (e *Error) Has(kind Kind) bool {
	for _, entry := range e.Entries {
		if entry.Kind == kind {
			return true
		}
	}
	return false
}

// Unwrap exposes the entries to errors.Is and errors.As
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Entries))
	for i, entry := range e.Entries {
		errs[i] = entry
	}
	return errs
}
