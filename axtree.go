package axtree

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/axtree/internal/dispatch"
	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/internal/presentation/report"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/aretw0/axtree/pkg/ports"
)

// Version is the release of axtree.
var Version = "0.3.0"

// Explorer is the high-level entry point for using axtree as a library.
// Each call opens and releases its own device connection.
type Explorer struct {
	device ports.Device
	saver  ports.DocumentSaver
	logger *slog.Logger
}

// Option defines a functional option for configuring the Explorer.
type Option func(*Explorer)

// WithSaver sets where Save writes documents.
func WithSaver(saver ports.DocumentSaver) Option {
	return func(e *Explorer) {
		e.saver = saver
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// New creates an Explorer for device.
func New(device ports.Device, opts ...Option) *Explorer {
	e := &Explorer{
		device: device,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Explorer) dispatcher(out, errOut io.Writer) *dispatch.Dispatcher {
	return dispatch.New(e.device,
		dispatch.WithOutput(out, errOut),
		dispatch.WithSaver(e.saver),
		dispatch.WithLogger(e.logger),
	)
}

func (e *Explorer) execute(ctx context.Context, opts dispatch.Options) (dispatch.Request, dispatch.Result, error) {
	req, err := dispatch.Classify(opts)
	if err != nil {
		return nil, dispatch.Result{}, err
	}
	res, err := e.dispatcher(io.Discard, io.Discard).Execute(ctx, req)
	return req, res, err
}

// Run performs the request described by opts, writes the report to out and
// error messages to errOut, and returns the exit status a command line
// invocation would have.
func (e *Explorer) Run(ctx context.Context, opts map[string]any, out, errOut io.Writer) int {
	return e.dispatcher(out, errOut).Run(ctx, dispatch.Options(opts))
}

// Fetch returns the element at path with its descendants down to depth
// (negative for the whole subtree) and every extended attribute.
func (e *Explorer) Fetch(ctx context.Context, path string, depth int) (*domain.Node, error) {
	p, err := domain.ParsePath(path)
	if err != nil {
		return nil, err
	}
	if err := e.device.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", e.device.Name(), err)
	}
	defer func() {
		if e.device.IsConnected() {
			_ = e.device.Disconnect(ctx)
		}
	}()
	node, err := e.device.GetAccessible(ctx, p, depth, domain.Query{All: true})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &domain.NotFoundError{Path: p}
	}
	return node, nil
}

// Tree renders the subtree at path as the aligned PATH/NAME/ROLE/CHILDREN
// table.
func (e *Explorer) Tree(ctx context.Context, path string, depth int) (string, error) {
	_, res, err := e.execute(ctx, dispatch.Options{dispatch.OptPath: path, dispatch.OptDump: depth})
	if err != nil {
		return "", err
	}
	return report.RenderTree(res.Node)
}

// Details renders the attribute report of the element at path. attr is
// an extended attribute name or "all".
func (e *Explorer) Details(ctx context.Context, path string, attr domain.Attribute) (string, error) {
	if _, err := domain.ParseAttribute(string(attr)); err != nil {
		return "", err
	}
	_, res, err := e.execute(ctx, dispatch.Options{dispatch.OptPath: path, string(attr): true})
	if err != nil {
		return "", err
	}
	return report.RenderDetails(res.Node, attr), nil
}

// Do invokes a named action of the element at path and returns the
// status reported by the device. A false status comes with an error
// wrapping domain.ErrOperationFailed.
func (e *Explorer) Do(ctx context.Context, path, action string) (bool, error) {
	_, res, err := e.execute(ctx, dispatch.Options{dispatch.OptPath: path, dispatch.OptAction: action})
	if err != nil {
		return false, err
	}
	if !res.Status {
		return false, fmt.Errorf("%w: action %s on %s", domain.ErrOperationFailed, action, path)
	}
	return true, nil
}

// Save dumps the whole subtree at path to the named document.
func (e *Explorer) Save(ctx context.Context, path, name string) error {
	if e.saver == nil {
		return fmt.Errorf("no document saver configured")
	}
	node, err := e.Fetch(ctx, path, -1)
	if err != nil {
		return err
	}
	return e.saver.Save(ctx, node.Marshal(), name)
}
