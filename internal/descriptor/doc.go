// Package descriptor parses and validates container build descriptors.
//
// A descriptor is a line-oriented text record with one directive per line:
//
//	FROM golang:1.19
//	WORKDIR /usr/src/app
//	COPY . .
//	CMD ["go", "run", "main.go"]
//
// Parsing turns the text into a sequence of tagged [Directive] values and
// folds them into an immutable [BuildDescriptor]. Singularity and ordering
// rules are checked on the directive variants rather than on raw text:
// exactly one FROM, at most one WORKDIR and CMD, and WORKDIR before any
// COPY. Keywords are case-insensitive, lines starting with '#' are
// comments, and a trailing backslash continues a directive on the next
// line.
//
// Parsing is pure. Checking that copy sources exist is a separate step,
// [Validate], which consults a [Context] supplied by the caller. The
// descriptor renders back to canonical text with [BuildDescriptor.String],
// and parsing that text yields an equal descriptor.
//
// Example usage:
//
//	d, err := descriptor.Parse(text)
//	if err != nil {
//	    return err
//	}
//
//	if err := descriptor.Validate(d, buildctx.NewFS(os.DirFS("."))); err != nil {
//	    return err
//	}
package descriptor
