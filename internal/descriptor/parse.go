package descriptor

import (
	"encoding/json"
	"io"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Shell used to wrap shell-form CMD arguments.
const defaultShell = "/bin/sh"

// A directive line after comment removal and continuation joining.
type logicalLine struct {
	num  int    // 1-based line where the directive starts.
	text string // Joined text, without continuation markers.
}

// Parses descriptor text into a validated [BuildDescriptor].
//
// The text must contain exactly one FROM directive, at most one WORKDIR and
// at most one CMD. A WORKDIR, when present, must precede every COPY. Errors
// are returned as [*ParseError] wrapping one of the package sentinels.
func Parse(text string) (*BuildDescriptor, error) {
	directives, err := ParseDirectives(text)
	if err != nil {
		return nil, err
	}
	return assemble(directives)
}

// Reads all of r and parses it with [Parse].
func ParseReader(r io.Reader) (*BuildDescriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parses descriptor text into its directive sequence without applying the
// singularity and ordering rules.
func ParseDirectives(text string) ([]Directive, error) {
	var directives []Directive
	for _, l := range splitLines(text) {
		d, err := parseDirective(l)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

// Folds a directive sequence into a descriptor, enforcing that singular
// directives appear once and that WORKDIR precedes COPY.
func assemble(directives []Directive) (*BuildDescriptor, error) {
	d := &BuildDescriptor{}
	seen := make(map[Keyword]int)
	firstCopy := 0

	for _, dir := range directives {
		kw := dir.Keyword()
		line := dir.SourceLine()

		if kw != KeywordCopy {
			if prev, ok := seen[kw]; ok {
				return nil, lineErrorf(line, ErrDuplicateDirective, "%s already declared on line %d", kw, prev)
			}
			seen[kw] = line
		}

		switch v := dir.(type) {
		case FromDirective:
			d.BaseImage = v.Image
		case WorkdirDirective:
			if firstCopy != 0 {
				return nil, lineErrorf(line, ErrMisplacedDirective, "WORKDIR must precede COPY on line %d", firstCopy)
			}
			d.WorkingDirectory = v.Path
		case CopyDirective:
			if firstCopy == 0 {
				firstCopy = line
			}
			d.CopyRules = append(d.CopyRules, CopyRule{Source: v.Source, Destination: v.Destination})
		case CmdDirective:
			d.DefaultCommand = append([]string{}, v.Args...)
		}
	}

	if _, ok := seen[KeywordFrom]; !ok {
		return nil, &ParseError{Err: ErrMissingBaseImage}
	}

	return d, nil
}

// Splits text into logical directive lines.
//
// Blank lines and comments are dropped. A line ending in a backslash is
// joined with the following line; comment lines inside a continuation are
// skipped.
func splitLines(text string) []logicalLine {
	var (
		out     []logicalLine
		pending strings.Builder
		start   int
	)

	flush := func() {
		if s := strings.TrimSpace(pending.String()); s != "" {
			out = append(out, logicalLine{num: start, text: s})
		}
		pending.Reset()
		start = 0
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if start == 0 {
			start = i + 1
		} else {
			pending.WriteByte(' ')
		}

		if body, ok := strings.CutSuffix(line, `\`); ok {
			pending.WriteString(strings.TrimSpace(body))
			continue
		}

		pending.WriteString(trimmed)
		flush()
	}

	flush()
	return out
}

// Parses a single logical line into its directive variant.
//
// Lines must be valid UTF-8, since directives are rendered back through
// JSON arrays that cannot carry arbitrary bytes.
func parseDirective(l logicalLine) (Directive, error) {
	if !utf8.ValidString(l.text) {
		return nil, lineErrorf(l.num, ErrSyntax, "invalid UTF-8")
	}

	word, arg := splitKeyword(l.text)

	switch Keyword(strings.ToUpper(word)) {
	case KeywordFrom:
		return parseFrom(l.num, arg)
	case KeywordWorkdir:
		return parseWorkdir(l.num, arg)
	case KeywordCopy:
		return parseCopy(l.num, arg)
	case KeywordCmd:
		return parseCmd(l.num, arg)
	default:
		return nil, lineErrorf(l.num, ErrUnknownDirective, "%q", word)
	}
}

// Separates the leading keyword from the remainder of the line.
func splitKeyword(s string) (keyword, arg string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseFrom(line int, arg string) (Directive, error) {
	fields := strings.Fields(arg)
	switch len(fields) {
	case 0:
		return nil, lineErrorf(line, ErrMissingBaseImage, "FROM requires an image")
	case 1:
		return FromDirective{Line: line, Image: fields[0]}, nil
	default:
		return nil, lineErrorf(line, ErrSyntax, "FROM accepts a single image, got %q", arg)
	}
}

// Parses a WORKDIR argument. Relative paths are anchored at the filesystem
// root, so the stored working directory is always absolute.
func parseWorkdir(line int, arg string) (Directive, error) {
	if arg == "" {
		return nil, lineErrorf(line, ErrSyntax, "WORKDIR requires a path")
	}
	return WorkdirDirective{Line: line, Path: path.Join("/", arg)}, nil
}

// Parses a COPY argument in either "src dest" or JSON array form.
func parseCopy(line int, arg string) (Directive, error) {
	paths, ok := parseJSONArray(arg)
	if !ok {
		paths = strings.Fields(arg)
		for _, p := range paths {
			if strings.HasPrefix(p, "--") {
				return nil, lineErrorf(line, ErrSyntax, "COPY flags are not supported, got %q", p)
			}
		}
	}

	if len(paths) != 2 {
		return nil, lineErrorf(line, ErrInvalidCopyRule, "expected source and destination, got %q", arg)
	}
	if paths[0] == "" || paths[1] == "" {
		return nil, lineErrorf(line, ErrInvalidCopyRule, "empty source or destination in %q", arg)
	}

	return CopyDirective{Line: line, Source: paths[0], Destination: paths[1]}, nil
}

// Parses a CMD argument. The exec form is a JSON array of tokens; anything
// else is shell form and is wrapped as "/bin/sh -c <text>".
func parseCmd(line int, arg string) (Directive, error) {
	if args, ok := parseJSONArray(arg); ok {
		return CmdDirective{Line: line, Args: args}, nil
	}
	if arg == "" {
		return nil, lineErrorf(line, ErrSyntax, "CMD requires a command")
	}
	return CmdDirective{Line: line, Args: []string{defaultShell, "-c", arg}}, nil
}

// Decodes a JSON array of strings. Returns false when s is not one, in
// which case the caller falls back to the whitespace form.
func parseJSONArray(s string) ([]string, bool) {
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}

	var args []string
	if err := json.Unmarshal([]byte(s), &args); err != nil || args == nil {
		return nil, false
	}
	return args, true
}
