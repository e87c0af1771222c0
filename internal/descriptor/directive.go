package descriptor

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Identifies a directive kind. Canonical spelling is upper case.
type Keyword string

const (
	KeywordFrom    Keyword = "FROM"
	KeywordWorkdir Keyword = "WORKDIR"
	KeywordCopy    Keyword = "COPY"
	KeywordCmd     Keyword = "CMD"
)

// A single parsed descriptor line.
//
// The set of implementations is closed: [FromDirective],
// [WorkdirDirective], [CopyDirective] and [CmdDirective].
type Directive interface {
	Keyword() Keyword
	SourceLine() int
	String() string
	directive()
}

// Declares the base runtime image.
type FromDirective struct {
	Line  int
	Image string
}

// Declares the working directory. Path is absolute and cleaned.
type WorkdirDirective struct {
	Line int
	Path string
}

// Declares a copy from the build context into the image.
type CopyDirective struct {
	Line        int
	Source      string
	Destination string
}

// Declares the default command as argv tokens.
type CmdDirective struct {
	Line int
	Args []string
}

func (FromDirective) Keyword() Keyword    { return KeywordFrom }
func (WorkdirDirective) Keyword() Keyword { return KeywordWorkdir }
func (CopyDirective) Keyword() Keyword    { return KeywordCopy }
func (CmdDirective) Keyword() Keyword     { return KeywordCmd }

func (d FromDirective) SourceLine() int    { return d.Line }
func (d WorkdirDirective) SourceLine() int { return d.Line }
func (d CopyDirective) SourceLine() int    { return d.Line }
func (d CmdDirective) SourceLine() int     { return d.Line }

func (FromDirective) directive()    {}
func (WorkdirDirective) directive() {}
func (CopyDirective) directive()    {}
func (CmdDirective) directive()     {}

func (d FromDirective) String() string {
	return string(KeywordFrom) + " " + d.Image
}

func (d WorkdirDirective) String() string {
	return string(KeywordWorkdir) + " " + d.Path
}

// Renders the copy in whitespace form when both paths are plain tokens and
// in JSON form otherwise, so paths with spaces or quotes survive a
// round-trip.
func (d CopyDirective) String() string {
	if needsQuoting(d.Source) || needsQuoting(d.Destination) {
		return string(KeywordCopy) + " " + jsonArray([]string{d.Source, d.Destination})
	}
	return string(KeywordCopy) + " " + d.Source + " " + d.Destination
}

// Always renders the exec (JSON) form.
func (d CmdDirective) String() string {
	return string(KeywordCmd) + " " + jsonArray(d.Args)
}

// Whether a path cannot be written as a bare whitespace-separated token.
func needsQuoting(s string) bool {
	return strings.HasPrefix(s, "[") ||
		strings.HasPrefix(s, "--") ||
		strings.HasSuffix(s, `\`) ||
		strings.ContainsAny(s, " \t\r\n\"")
}

// Encodes tokens as a compact JSON array with ", " separators.
func jsonArray(args []string) string {
	if len(args) == 0 {
		return "[]"
	}

	quoted := make([]string, len(args))
	for i, a := range args {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.Encode(a) // Encoding a string cannot fail.
		quoted[i] = strings.TrimSuffix(buf.String(), "\n")
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
