package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// setValueJS assigns a value to a form control and fires the events
// frameworks listen to.
const setValueJS = `(v) => {
	if (!("value" in this)) return false;
	this.value = String(v);
	this.dispatchEvent(new Event("input", { bubbles: true }));
	this.dispatchEvent(new Event("change", { bubbles: true }));
	return true;
}`

// Device implements ports.Device over the accessibility tree that Chrome
// exposes through the DevTools protocol.
//
// The root "/" is the browser; its children are the open pages, and
// deeper segments index accessible children within a page.
type Device struct {
	name   string
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	browser  *rod.Browser
	launched *launcher.Launcher
	cancel   context.CancelFunc
}

// Option configures a Device.
type Option func(*Device)

// WithName sets the device name.
func WithName(name string) Option {
	return func(d *Device) {
		d.name = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) {
		d.logger = logger
	}
}

// New creates a Device. Nothing is contacted until Connect.
func New(cfg Config, opts ...Option) *Device {
	d := &Device{
		name:   cfg.ControlURL,
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	if cfg.Launch || d.name == "" {
		d.name = "chrome"
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// Connect attaches to, or launches, the browser.
func (d *Device) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.browser != nil {
		return nil
	}

	var (
		controlURL string
		l          *launcher.Launcher
		err        error
	)
	if d.cfg.Launch {
		l = launcher.New().Headless(d.cfg.Headless)
		if d.cfg.Bin != "" {
			l = l.Bin(d.cfg.Bin)
		}
		controlURL, err = l.Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
	} else {
		controlURL, err = launcher.ResolveURL(d.cfg.ControlURL)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", d.cfg.ControlURL, err)
		}
	}

	connCtx, cancel := context.WithCancel(context.Background())
	b := rod.New().ControlURL(controlURL).Context(connCtx)
	if err := b.Connect(); err != nil {
		cancel()
		if l != nil {
			l.Kill()
		}
		return fmt.Errorf("failed to connect to %s: %w", controlURL, err)
	}
	d.logger.Debug("Connected", "device", d.name, "control_url", controlURL)

	if d.cfg.URL != "" {
		page, err := b.Page(proto.TargetCreateTarget{URL: d.cfg.URL})
		if err == nil {
			err = page.Context(ctx).WaitLoad()
		}
		if err != nil {
			cancel()
			if l != nil {
				_ = b.Close()
				l.Kill()
			}
			return fmt.Errorf("failed to open %s: %w", d.cfg.URL, err)
		}
	}

	d.browser = b
	d.launched = l
	d.cancel = cancel
	return nil
}

// Disconnect drops the connection. A browser started by Connect is
// closed, an attached one keeps running.
func (d *Device) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.browser == nil {
		return nil
	}

	var err error
	if d.launched != nil {
		err = d.browser.Close()
		d.launched.Kill()
		d.launched.Cleanup()
	}
	d.cancel()
	d.browser, d.launched, d.cancel = nil, nil, nil
	d.logger.Debug("Disconnected", "device", d.name)
	return err
}

// IsConnected reports whether a browser session is open.
func (d *Device) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.browser != nil
}

// target is a resolved path: the page it lives in and its AX node.
// Both are nil for the browser root.
type target struct {
	page *rod.Page
	tree *axTree
	node *proto.AccessibilityAXNode
}

// resolve maps a path onto a page and an accessible node.
// Must be called with the lock held.
func (d *Device) resolve(ctx context.Context, path domain.Path) (target, error) {
	if d.browser == nil {
		return target{}, domain.ErrNotConnected
	}
	if path.IsRoot() {
		return target{}, nil
	}
	indices, err := path.Indices()
	if err != nil {
		return target{}, err
	}

	pages, err := d.browser.Pages()
	if err != nil {
		return target{}, fmt.Errorf("failed to list pages: %w", err)
	}
	if indices[0] >= len(pages) {
		return target{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, path)
	}
	page := pages[indices[0]].Context(ctx)
	if d.cfg.Timeout > 0 {
		page = page.Timeout(d.cfg.Timeout)
	}

	tree, err := d.pageTree(page, domain.NewPath(path.Segments()[0]))
	if err != nil {
		return target{}, err
	}
	node, ok := tree.find(indices[1:])
	if !ok {
		return target{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, path)
	}
	return target{page: page, tree: tree, node: node}, nil
}

func (d *Device) pageTree(page *rod.Page, origin domain.Path) (*axTree, error) {
	_ = proto.AccessibilityEnable{}.Call(page)
	res, err := proto.AccessibilityGetFullAXTree{}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessibility tree: %w", err)
	}
	return newAXTree(res.Nodes, origin)
}

// element resolves the DOM element behind an accessible node.
func (t target) element() (*rod.Element, error) {
	if t.node == nil || t.node.BackendDOMNodeID == 0 {
		return nil, errors.New("element has no DOM node")
	}
	res, err := proto.DOMResolveNode{BackendNodeID: t.node.BackendDOMNodeID}.Call(t.page)
	if err != nil {
		return nil, err
	}
	return t.page.ElementFromObject(res.Object)
}

func (t target) box(id proto.DOMBackendNodeID) (domain.Point, domain.Size, bool) {
	res, err := proto.DOMGetBoxModel{BackendNodeID: id}.Call(t.page)
	if err != nil || res.Model == nil {
		return domain.Point{}, domain.Size{}, false
	}
	return quadBox(res.Model.Border, res.Model.Width, res.Model.Height)
}

// report turns a failed interaction into a negative status. Errors that
// mean the request never reached the browser are returned as is.
func (d *Device) report(op string, path domain.Path, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNodeNotFound) || errors.Is(err, domain.ErrNotConnected) || errors.Is(err, context.Canceled) {
		return false, err
	}
	d.logger.Info("Request rejected by browser", "op", op, "path", path.String(), "error", err)
	return false, nil
}

// DoAccessible performs click, focus or scroll on the element.
func (d *Device) DoAccessible(ctx context.Context, path domain.Path, action string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.resolve(ctx, path)
	if err != nil {
		return false, err
	}
	el, err := t.element()
	if err != nil {
		return d.report("action", path, err)
	}

	switch action {
	case "click":
		err = el.Click(proto.InputMouseButtonLeft, 1)
	case "focus":
		err = el.Focus()
	case "scroll":
		err = el.ScrollIntoView()
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	return d.report("action", path, err)
}

// SetText replaces the content of an editable element by typing.
func (d *Device) SetText(ctx context.Context, path domain.Path, text string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.resolve(ctx, path)
	if err != nil {
		return false, err
	}
	el, err := t.element()
	if err == nil {
		err = el.SelectAllText()
	}
	if err == nil {
		err = el.Input(text)
	}
	return d.report("set-text", path, err)
}

// SetValue assigns the value of a form control.
func (d *Device) SetValue(ctx context.Context, path domain.Path, value float64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.resolve(ctx, path)
	if err != nil {
		return false, err
	}
	el, err := t.element()
	if err != nil {
		return d.report("set-value", path, err)
	}
	res, err := el.Eval(setValueJS, value)
	if err != nil {
		return d.report("set-value", path, err)
	}
	return res.Value.Bool(), nil
}

// MouseEvent generates a mouse event at page coordinates in the page the
// path belongs to. The browser root targets the first page.
func (d *Device) MouseEvent(ctx context.Context, path domain.Path, x, y int, button string, kind domain.MouseEventKind) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.pageFor(ctx, path)
	if err != nil {
		return false, err
	}

	btn, err := mouseButton(button, kind)
	if err != nil {
		return false, err
	}
	pt := proto.Point{X: float64(x), Y: float64(y)}
	mouse := t.page.Mouse

	switch kind {
	case domain.MouseClick:
		if err = mouse.MoveTo(pt); err == nil {
			err = mouse.Click(btn, 1)
		}
	case domain.MouseDoubleClick:
		if err = mouse.MoveTo(pt); err == nil {
			err = mouse.Click(btn, 2)
		}
	case domain.MousePress:
		if err = mouse.MoveTo(pt); err == nil {
			err = mouse.Down(btn, 1)
		}
	case domain.MouseRelease:
		if err = mouse.MoveTo(pt); err == nil {
			err = mouse.Up(btn, 1)
		}
	case domain.MouseAbsoluteMotion:
		err = mouse.MoveTo(pt)
	case domain.MouseRelativeMotion:
		pos := mouse.Position()
		err = mouse.MoveTo(proto.Point{X: pos.X + pt.X, Y: pos.Y + pt.Y})
	default:
		return false, fmt.Errorf("unknown mouse event %q", kind)
	}
	return d.report("mouse", path, err)
}

func (d *Device) pageFor(ctx context.Context, path domain.Path) (target, error) {
	if !path.IsRoot() {
		return d.resolve(ctx, path)
	}
	if d.browser == nil {
		return target{}, domain.ErrNotConnected
	}
	pages, err := d.browser.Pages()
	if err != nil {
		return target{}, fmt.Errorf("failed to list pages: %w", err)
	}
	if len(pages) == 0 {
		return target{}, errors.New("browser has no open page")
	}
	return target{page: pages[0].Context(ctx)}, nil
}

func mouseButton(button string, kind domain.MouseEventKind) (proto.InputMouseButton, error) {
	if kind.IsMotion() {
		return proto.InputMouseButtonNone, nil
	}
	switch button {
	case domain.ButtonLeft:
		return proto.InputMouseButtonLeft, nil
	case domain.ButtonMiddle:
		return proto.InputMouseButtonMiddle, nil
	case domain.ButtonRight:
		return proto.InputMouseButtonRight, nil
	}
	return "", fmt.Errorf("unknown mouse button %q", button)
}

// KeyboardEvent focuses the element when it has a DOM node, then types the
// key while holding the modifiers.
func (d *Device) KeyboardEvent(ctx context.Context, path domain.Path, key int, modifiers []int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.pageFor(ctx, path)
	if err != nil {
		return false, err
	}
	if el, err := t.element(); err == nil {
		if err := el.Focus(); err != nil {
			return d.report("key", path, err)
		}
	}

	k, ok := keyFor(key)
	if !ok {
		return d.report("key", path, fmt.Errorf("key code %#x cannot be typed", key))
	}
	mods, err := modifiersFor(modifiers)
	if err != nil {
		return d.report("key", path, err)
	}
	return d.report("key", path, t.page.KeyActions().Press(mods...).Type(k).Do())
}

// GetAccessible returns the subtree at path down to depth.
func (d *Device) GetAccessible(ctx context.Context, path domain.Path, depth int, q domain.Query) (*domain.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	if t.node != nil {
		return t.tree.toNode(t.node, path, depth, q, t.box), nil
	}
	return d.rootNode(ctx, depth, q)
}

// rootNode describes the browser with its pages as children.
// Must be called with the lock held.
func (d *Device) rootNode(ctx context.Context, depth int, q domain.Query) (*domain.Node, error) {
	pages, err := d.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	root := &domain.Node{
		Path:  domain.NewPath(),
		Name:  d.name,
		Role:  "browser",
		Count: len(pages),
	}
	loadPages := func(depth int) ([]*domain.Node, error) {
		children := make([]*domain.Node, 0, len(pages))
		for i, p := range pages {
			page := p.Context(ctx)
			origin := domain.NewPath().ChildIndex(i)
			tree, err := d.pageTree(page, origin)
			if err != nil {
				return nil, err
			}
			t := target{page: page, tree: tree, node: tree.root}
			children = append(children, tree.toNode(tree.root, origin, depth, q, t.box))
		}
		return children, nil
	}
	if depth != 0 {
		children, err := loadPages(depth - 1)
		if err != nil {
			return nil, err
		}
		root.SetChildren(children)
	}
	root.SetLoader(func() ([]*domain.Node, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		return loadPages(0)
	})
	return root, nil
}
