package descriptor

import (
	"path"
	"strings"
)

// Normalized, validated form of a descriptor.
//
// A descriptor is produced once by [Parse] and consumed by a single build.
// Nothing in this package mutates a descriptor after it is returned, and
// callers are expected to treat it as read-only.
type BuildDescriptor struct {
	BaseImage        string     `json:"baseImage"`                  // Base image identifier, verbatim from FROM.
	WorkingDirectory string     `json:"workingDirectory,omitempty"` // Absolute path. Empty means the image's default.
	CopyRules        []CopyRule `json:"copyRules,omitempty"`        // Copy rules in declaration order.
	DefaultCommand   []string   `json:"defaultCommand,omitempty"`   // Argv tokens. Nil when no CMD was declared.
}

// A single (source, destination) pair from a COPY directive.
//
// Source is relative to the build context root. Destination is stored as
// declared; use [CopyRule.Target] for its absolute form.
type CopyRule struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Returns the absolute destination path inside the image.
//
// Relative destinations are resolved against workdir, or the filesystem
// root when workdir is empty. A trailing slash, which marks a directory
// destination, is preserved.
func (r CopyRule) Target(workdir string) string {
	base := workdir
	if base == "" {
		base = "/"
	}

	target := r.Destination
	if !path.IsAbs(target) {
		target = path.Join(base, target)
	} else {
		target = path.Clean(target)
	}

	if strings.HasSuffix(r.Destination, "/") && target != "/" {
		target += "/"
	}
	return target
}

// Whether the descriptor declares a default command, possibly empty.
func (d *BuildDescriptor) HasDefaultCommand() bool {
	return d.DefaultCommand != nil
}

// Returns the copy rules with destinations resolved to absolute paths.
func (d *BuildDescriptor) ResolvedCopyRules() []CopyRule {
	if len(d.CopyRules) == 0 {
		return nil
	}

	rules := make([]CopyRule, len(d.CopyRules))
	for i, r := range d.CopyRules {
		rules[i] = CopyRule{
			Source:      r.Source,
			Destination: r.Target(d.WorkingDirectory),
		}
	}
	return rules
}

// Returns the canonical directive sequence for the descriptor.
//
// The order is FROM, WORKDIR, each COPY in declaration order, then CMD.
// Line numbers refer to the canonical rendering produced by [String].
func (d *BuildDescriptor) Directives() []Directive {
	directives := []Directive{FromDirective{Image: d.BaseImage}}

	if d.WorkingDirectory != "" {
		directives = append(directives, WorkdirDirective{Path: d.WorkingDirectory})
	}

	for _, r := range d.CopyRules {
		directives = append(directives, CopyDirective{Source: r.Source, Destination: r.Destination})
	}

	if d.DefaultCommand != nil {
		directives = append(directives, CmdDirective{Args: append([]string{}, d.DefaultCommand...)})
	}

	for i, dir := range directives {
		directives[i] = withLine(dir, i+1)
	}
	return directives
}

// Renders the descriptor as canonical directive text, one per line.
//
// Parsing the result yields a descriptor equal to d.
func (d *BuildDescriptor) String() string {
	var b strings.Builder
	for _, dir := range d.Directives() {
		b.WriteString(dir.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Returns a copy of dir carrying the given line number.
func withLine(dir Directive, line int) Directive {
	switch v := dir.(type) {
	case FromDirective:
		v.Line = line
		return v
	case WorkdirDirective:
		v.Line = line
		return v
	case CopyDirective:
		v.Line = line
		return v
	case CmdDirective:
		v.Line = line
		return v
	}
	return dir
}
