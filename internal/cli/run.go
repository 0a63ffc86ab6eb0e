package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/axtree/internal/config"
	"github.com/aretw0/axtree/internal/dispatch"
	"github.com/aretw0/axtree/internal/presentation/tui"
	"github.com/aretw0/axtree/pkg/adapters/file"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/aretw0/axtree/pkg/ports"
	"github.com/muesli/termenv"
)

// RunOptions contains the persistent flags shared by every command.
type RunOptions struct {
	ConfigPath string
	Device     string
	Debug      bool
	NoColor    bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

func (o RunOptions) streams() (io.Writer, io.Writer) {
	out, errOut := o.Stdout, o.Stderr
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return out, errOut
}

// styler colours status lines only when stdout is a colour terminal.
func (o RunOptions) styler(out io.Writer) tui.Styler {
	if f, ok := out.(*os.File); ok {
		return tui.NewStyler(tui.DetectProfile(f, o.NoColor))
	}
	return tui.NewStyler(termenv.Ascii)
}

// LoadDevices reads the registry named by opts, or the default one.
func LoadDevices(opts RunOptions, logger *slog.Logger) (*DeviceFactory, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	reg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded device registry", "file", path, "devices", len(reg.Devices()))
	return NewDeviceFactory(reg, logger), nil
}

// Explore performs one request on the selected device and returns the
// process exit status.
func Explore(ctx context.Context, opts RunOptions, bag dispatch.Options) int {
	out, errOut := opts.streams()
	logger := createLogger(opts.Debug)

	devices, err := LoadDevices(opts, logger)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return domain.ExitFailure
	}
	device, err := devices.Create(ctx, opts.Device)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return domain.ExitCode(err)
	}
	return NewDispatcher(device, logger, out, errOut, opts.styler(out)).Run(ctx, bag)
}

// NewDispatcher wires a dispatcher that saves dumps relative to the
// working directory.
func NewDispatcher(device ports.Device, logger *slog.Logger, out, errOut io.Writer, styler tui.Styler) *dispatch.Dispatcher {
	return dispatch.New(device,
		dispatch.WithOutput(out, errOut),
		dispatch.WithSaver(file.NewSaver("")),
		dispatch.WithStyler(styler),
		dispatch.WithLogger(logger),
	)
}
