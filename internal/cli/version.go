package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cruciblehq/cruxfile/internal"
)

// Represents the 'cruxfile version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context, out io.Writer) error {
	_, err := fmt.Fprintln(out, internal.VersionString())
	return err
}
