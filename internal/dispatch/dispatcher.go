package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/internal/presentation/report"
	"github.com/aretw0/axtree/internal/presentation/tui"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/aretw0/axtree/pkg/ports"
)

// Result is the outcome of an executed request.
type Result struct {
	// Status is the device's answer to a mutating request.
	Status bool
	// Node is the snapshot fetched by Dump and Query requests.
	Node *domain.Node
}

// Dispatcher performs classified requests on one device and reports them.
type Dispatcher struct {
	device ports.Device
	saver  ports.DocumentSaver
	out    io.Writer
	errOut io.Writer
	styler tui.Styler
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithOutput sets the writers for reports and error messages.
func WithOutput(out, errOut io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = out
		d.errOut = errOut
	}
}

// WithSaver sets where dumps with an output file are written.
func WithSaver(saver ports.DocumentSaver) Option {
	return func(d *Dispatcher) {
		d.saver = saver
	}
}

// WithStyler sets how status lines are coloured.
func WithStyler(s tui.Styler) Option {
	return func(d *Dispatcher) {
		d.styler = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher for device.
func New(device ports.Device, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		device: device,
		out:    os.Stdout,
		errOut: os.Stderr,
		styler: tui.Plain(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute connects the device, performs the request and releases the
// connection on every exit path. A missing element yields a
// *domain.NotFoundError.
func (d *Dispatcher) Execute(ctx context.Context, req Request) (res Result, err error) {
	name := d.device.Name()
	d.logger.Debug("Perform request", "device", name, "request", fmt.Sprintf("%T", req), "path", req.Target().String())

	if err := d.device.Connect(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to connect to %s: %w", name, err)
	}
	defer func() {
		if !d.device.IsConnected() {
			return
		}
		if derr := d.device.Disconnect(ctx); derr != nil {
			d.logger.Warn("Failed to disconnect", "device", name, "error", derr)
			return
		}
		d.logger.Debug("Released connection", "device", name)
	}()

	path := req.Target()
	switch r := req.(type) {
	case DoAction:
		res.Status, err = d.device.DoAccessible(ctx, path, r.Action)
	case SetText:
		res.Status, err = d.device.SetText(ctx, path, r.Text)
	case SetValue:
		res.Status, err = d.device.SetValue(ctx, path, r.Value)
	case Mouse:
		res.Status, err = d.device.MouseEvent(ctx, path, r.X, r.Y, r.Button, r.Kind)
	case Key:
		res.Status, err = d.device.KeyboardEvent(ctx, path, r.Code, r.Modifiers)
	case Dump:
		q := domain.Query{All: r.Output != ""}
		res.Node, err = d.device.GetAccessible(ctx, path, r.Depth, q)
	case Query:
		res.Node, err = d.device.GetAccessible(ctx, path, 0, domain.QueryFor(r.Attribute))
	default:
		return Result{}, fmt.Errorf("%w: unsupported request %T", domain.ErrUsage, req)
	}

	switch {
	case errors.Is(err, domain.ErrNodeNotFound):
		return Result{}, &domain.NotFoundError{Path: path}
	case err != nil:
		return Result{}, fmt.Errorf("%s on %s failed: %w", requestName(req), path, err)
	}
	if isFetch(req) && res.Node == nil {
		return Result{}, &domain.NotFoundError{Path: path}
	}
	return res, nil
}

// Run classifies opts, executes the request and reports the outcome on
// the configured writers. It returns the process exit status.
func (d *Dispatcher) Run(ctx context.Context, opts Options) int {
	d.logger.Debug("Received options", "options", opts.String())
	req, err := Classify(opts)
	if err != nil {
		d.logger.Info("Rejected request", "error", err)
		fmt.Fprintln(d.errOut, err)
		return domain.ExitCode(err)
	}

	res, err := d.Execute(ctx, req)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			d.logger.Info(nf.Error())
			fmt.Fprintln(d.out, nf.Error())
			return domain.ExitFailure
		}
		d.logger.Error("Request failed", "error", err)
		fmt.Fprintln(d.errOut, err)
		return d.status(false)
	}

	switch r := req.(type) {
	case Dump:
		if r.Output != "" {
			return d.save(ctx, res.Node, r.Output)
		}
		widths, err := report.MeasureTree(res.Node)
		if err != nil {
			fmt.Fprintln(d.errOut, err)
			return d.status(false)
		}
		d.logger.Info("Print accessible tree using column lengths", "widths", widths)
		table, err := report.RenderTree(res.Node)
		if err != nil {
			fmt.Fprintln(d.errOut, err)
			return d.status(false)
		}
		fmt.Fprint(d.out, table)
		return d.status(true)
	case Query:
		d.logger.Debug("Print details about accessible", "node", res.Node.String())
		fmt.Fprint(d.out, report.RenderDetails(res.Node, r.Attribute))
		return d.status(true)
	default:
		if !res.Status {
			d.logger.Info("Device reported failure", "request", requestName(req), "path", req.Target().String())
		}
		return d.status(res.Status)
	}
}

func (d *Dispatcher) save(ctx context.Context, node *domain.Node, name string) int {
	fmt.Fprint(d.out, report.Separator(report.DefaultSeparatorWidth))
	if d.saver == nil {
		fmt.Fprintln(d.errOut, "no document saver configured")
		fmt.Fprintln(d.out, d.styler.Failure("FAILURE"))
		return domain.ExitFailure
	}
	if err := d.saver.Save(ctx, node.Marshal(), name); err != nil {
		d.logger.Error("Failed to save dump", "file", name, "error", err)
		fmt.Fprintln(d.errOut, err)
		fmt.Fprintln(d.out, d.styler.Failure("FAILURE"))
		return domain.ExitFailure
	}
	msg := "Dump saved to file: " + name
	d.logger.Info(msg)
	fmt.Fprintln(d.out, msg)
	return domain.ExitSuccess
}

// status prints the separator and the final status line.
func (d *Dispatcher) status(ok bool) int {
	fmt.Fprint(d.out, report.Separator(report.DefaultSeparatorWidth))
	if ok {
		d.logger.Info("SUCCESS")
		fmt.Fprintln(d.out, d.styler.Success("SUCCESS"))
		return domain.ExitSuccess
	}
	d.logger.Info("FAILURE")
	fmt.Fprintln(d.out, d.styler.Failure("FAILURE"))
	return domain.ExitFailure
}

func isFetch(req Request) bool {
	switch req.(type) {
	case Dump, Query:
		return true
	}
	return false
}

func requestName(req Request) string {
	name := fmt.Sprintf("%T", req)
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}
