package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/axtree/pkg/adapters/file"
	"github.com/aretw0/axtree/pkg/adapters/mcp"
)

// ServeMCP runs the MCP server over stdin/stdout until the input ends or
// the process is interrupted. Logs go to stderr so they never corrupt
// the JSON-RPC stream.
func ServeMCP(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	devices, err := LoadDevices(opts, logger)
	if err != nil {
		return err
	}

	ctx := NewSignalContext(context.Background())
	defer ctx.Cancel()

	srv := mcp.NewServer(devices,
		mcp.WithSaver(file.NewSaver("")),
		mcp.WithLogger(logger),
	)
	logger.Info("Starting axtree MCP Server (Stdio)...")
	err = srv.Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		logger.Info("MCP Server stopped", "signal", ctx.Signal())
		return nil
	}
	return err
}
