package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/cruxfile/internal"
	"github.com/cruciblehq/cruxfile/internal/image"
	"github.com/cruciblehq/cruxfile/internal/paths"
	"github.com/cruciblehq/cruxfile/internal/server"
)

// Represents the root command for cruxfile.
var RootCmd struct {
	Quiet      bool        `short:"q" help:"Suppress informational output."`
	Verbose    bool        `short:"v" help:"Enable verbose output."`
	Debug      bool        `short:"d" help:"Enable debug output."`
	Socket     string      `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Address    string      `help:"Containerd socket address." placeholder:"PATH"`
	Namespace  string      `help:"Containerd namespace for image lookups."`
	KnownImage []string    `name:"known-image" help:"Runtime image accepted as a base image. Repeatable. Defaults to the built-in runtime images." placeholder:"IMAGE"`
	AnyImage   bool        `help:"Accept any base image instead of only known runtime images."`
	Parse      ParseCmd    `cmd:"" help:"Parse a descriptor and print it as JSON."`
	Validate   ValidateCmd `cmd:"" help:"Check a descriptor against its build context."`
	Fmt        FmtCmd      `cmd:"" help:"Print a descriptor in canonical form."`
	Config     ConfigCmd   `cmd:"" help:"Resolve a descriptor into an OCI image configuration."`
	Start      StartCmd    `cmd:"" help:"Start the daemon."`
	Version    VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Container build descriptor resolver.\n\nParses FROM/WORKDIR/COPY/CMD descriptors, checks them against a build context, and emits the image configuration for a build engine."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, paths.ConfigFile()),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	internal.SetLogLevel(internal.Level(RootCmd.Quiet, RootCmd.Debug))
	slog.SetDefault(internal.NewLogger(os.Stderr, RootCmd.Verbose || internal.IsVerbose()))
}

// Returns the daemon configuration derived from the global flags.
func serverConfig() (server.Config, error) {
	known, err := knownImages()
	if err != nil {
		return server.Config{}, err
	}

	return server.Config{
		SocketPath:          RootCmd.Socket,
		ContainerdAddress:   RootCmd.Address,
		ContainerdNamespace: RootCmd.Namespace,
		Known:               known,
	}, nil
}

// Returns the allow-list of runtime images selected by the global flags,
// or nil when any base image is accepted.
func knownImages() (image.Resolver, error) {
	if RootCmd.AnyImage {
		return nil, nil
	}

	known, err := image.NewKnownResolver(RootCmd.KnownImage)
	if err != nil {
		return nil, err
	}
	return known, nil
}
