package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/doclinks/cmd/doclinks/commands"
	"git.home.luguber.info/inful/doclinks/internal/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("doclinks"),
		kong.Description("Verify that links and images in Markdown/MDX documentation resolve to local files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	parser.BindTo(ctx, (*context.Context)(nil))

	global := &commands.Global{
		Logger: slog.Default().With(logfields.RunID(uuid.NewString())),
		Stdout: os.Stdout,
	}
	err := parser.Run(global, cli)
	stop()

	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
