package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/axtree"
	"github.com/aretw0/axtree/internal/config"
	"github.com/aretw0/axtree/internal/dispatch"
	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/internal/presentation/tui"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/aretw0/axtree/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DevicesURI is the resource listing the configured devices.
const DevicesURI = "axtree://devices"

// ExploreResponse is the structured result of the explore tool.
type ExploreResponse struct {
	ExitCode int    `json:"exit_code" jsonschema_description:"Process exit status: 0 success, 1 failure, 2 invalid request"`
	Output   string `json:"output" jsonschema_description:"Report printed on standard output"`
	Errors   string `json:"errors,omitempty" jsonschema_description:"Messages printed on standard error"`
}

// Devices creates devices by name and lists the configured ones.
type Devices interface {
	Create(ctx context.Context, name string) (ports.Device, error)
	List() []config.DeviceConfig
}

// Server exposes the request dispatcher as MCP tools.
type Server struct {
	devices   Devices
	saver     ports.DocumentSaver
	logger    *slog.Logger
	mcpServer *server.MCPServer

	// mu serializes requests; a device holds one connection at a time.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithSaver sets where dumps with an output file are written.
func WithSaver(saver ports.DocumentSaver) Option {
	return func(s *Server) {
		s.saver = saver
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(devices Devices, opts ...Option) *Server {
	s := &Server{
		devices: devices,
		logger:  logging.NewNop(),
		mcpServer: server.NewMCPServer("axtree-mcp", strings.TrimSpace(axtree.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Serve answers JSON-RPC messages read from in until ctx is cancelled or
// in is exhausted.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// HandleMessage processes a single JSON-RPC message.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, raw)
}

var attributeNames = func() []string {
	names := []string{string(domain.AttrAll)}
	for _, a := range domain.ExtendedAttributes {
		names = append(names, string(a))
	}
	return names
}()

// stringArgs maps tool arguments to option keys.
var stringArgs = []struct {
	arg, option, description string
}{
	{"action", dispatch.OptAction, "Name of the action to invoke, e.g. click"},
	{"set_text", dispatch.OptSetText, "Text to put into the element"},
	{"set_text_file", dispatch.OptSetTextFile, "File whose content is put into the element"},
	{"mouse_click", dispatch.OptMouseClick, "Click at \"x,y\""},
	{"mouse_double_click", dispatch.OptMouseDoubleClick, "Double click at \"x,y\""},
	{"mouse_press", dispatch.OptMousePress, "Press a button at \"x,y\""},
	{"mouse_release", dispatch.OptMouseRelease, "Release a button at \"x,y\""},
	{"mouse_absolute_motion", dispatch.OptMouseAbsoluteMotion, "Move the pointer to \"x,y\""},
	{"mouse_relative_motion", dispatch.OptMouseRelativeMotion, "Move the pointer by \"x,y\""},
	{"key", dispatch.OptKey, "Key name, character, 0x hex or decimal keysym"},
	{"modifiers", dispatch.OptModifiers, "Comma-separated modifiers held with key, e.g. CONTROL,SHIFT"},
	{"output", dispatch.OptOutput, "Save the dump to this file (.xml, .json or .yaml)"},
}

func (s *Server) registerTools() {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Inspect or drive an accessible element. Give path plus one operation: " +
			"an action, text, value, mouse or key event, a dump, or an attribute to query."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Element path such as / or /0/1")),
		mcp.WithString("device", mcp.Description("Configured device name, file:<dump> or host[:port]; empty for the default")),
		mcp.WithNumber("set_value", mcp.Description("Numeric value to set")),
		mcp.WithString("button", mcp.Enum(domain.ButtonLeft, domain.ButtonMiddle, domain.ButtonRight),
			mcp.DefaultString(domain.ButtonLeft), mcp.Description("Mouse button for clicks, presses and releases")),
		mcp.WithNumber("dump", mcp.Description("Dump the subtree down to this depth")),
		mcp.WithBoolean("dump_all", mcp.Description("Dump the whole subtree")),
		mcp.WithString("attribute", mcp.Enum(attributeNames...), mcp.Description("Report this attribute of the element")),
		mcp.WithOutputSchema[ExploreResponse](),
	}
	for _, a := range stringArgs {
		opts = append(opts, mcp.WithString(a.arg, mcp.Description(a.description)))
	}
	s.mcpServer.AddTool(mcp.NewTool("explore", opts...), s.handleExplore)

	s.mcpServer.AddTool(mcp.NewTool("list_devices",
		mcp.WithDescription("List the configured devices."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		devices := s.devices.List()
		return mcp.NewToolResultStructured(map[string]any{"devices": devices}, formatDevices(devices)), nil
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DevicesURI, "Configured devices",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.devices.List())
		if err != nil {
			return nil, fmt.Errorf("failed to encode devices: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DevicesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) handleExplore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := request.RequireString("path"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := OptionsFrom(request.GetArguments())

	s.mu.Lock()
	defer s.mu.Unlock()

	name := request.GetString("device", "")
	device, err := s.devices.Create(ctx, name)
	if err != nil {
		s.logger.Warn("MCP Explore: device rejected", "device", name, "err", err)
		return mcp.NewToolResultErrorf("device %q: %v", name, err), nil
	}

	var out, errOut bytes.Buffer
	d := dispatch.New(device,
		dispatch.WithOutput(&out, &errOut),
		dispatch.WithSaver(s.saver),
		dispatch.WithStyler(tui.Plain()),
		dispatch.WithLogger(logging.ForDevice(s.logger, device.Name())),
	)
	code := d.Run(ctx, opts)

	resp := ExploreResponse{ExitCode: code, Output: out.String(), Errors: errOut.String()}
	text := resp.Output
	if resp.Errors != "" {
		text += resp.Errors
	}
	result := mcp.NewToolResultStructured(resp, text)
	result.IsError = code != domain.ExitSuccess
	return result, nil
}

// OptionsFrom converts explore tool arguments into a request bag. Absent
// and false arguments are left out; click-type mouse events default to
// the left button.
func OptionsFrom(args map[string]any) dispatch.Options {
	opts := dispatch.Options{}
	if v, ok := args["path"]; ok {
		opts[dispatch.OptPath] = v
	}
	for _, a := range stringArgs {
		if v, ok := args[a.arg]; ok && v != nil {
			opts[a.option] = v
		}
	}
	if v, ok := args["set_value"]; ok && v != nil {
		opts[dispatch.OptSetValue] = v
	}
	if v, ok := args["dump"]; ok && v != nil {
		opts[dispatch.OptDump] = v
	}
	if all, _ := args["dump_all"].(bool); all {
		opts[dispatch.OptDumpAll] = true
	}
	if v, ok := args["button"]; ok && v != nil {
		opts[dispatch.OptButton] = v
	}
	if attr, _ := args["attribute"].(string); attr != "" {
		opts[strings.ToLower(attr)] = true
	}
	opts.DefaultButton(domain.ButtonLeft)
	return opts
}

func formatDevices(devices []config.DeviceConfig) string {
	if len(devices) == 0 {
		return "No devices configured."
	}
	var sb strings.Builder
	for _, d := range devices {
		fmt.Fprintf(&sb, "%s\t%s", d.Name, d.Driver)
		if d.Description != "" {
			fmt.Fprintf(&sb, "\t%s", d.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
