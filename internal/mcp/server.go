// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/apartment"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/line"
	"github.com/wooldanji/console/domain/repository"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "wooldanji"

// DefaultListLimit caps list tools when no limit is given.
const DefaultListLimit = 50

// LinePreviewer parses line text without storing it.
type LinePreviewer interface {
	Preview(text string) service.LinePreview
}

// ApartmentReader reads apartments. repository.Collection satisfies it.
type ApartmentReader interface {
	Find(ctx context.Context, options ...repository.Option) ([]apartment.Apartment, error)
}

// InquiryReader reads inquiries. repository.Collection satisfies it.
type InquiryReader interface {
	Find(ctx context.Context, options ...repository.Option) ([]inquiry.Inquiry, error)
}

// Server wraps the MCP server with console tools. Tools only read, and see
// every apartment; callers are authenticated before requests reach the
// server.
type Server struct {
	mcpServer  *server.MCPServer
	lines      LinePreviewer
	apartments ApartmentReader
	inquiries  InquiryReader
	version    string
	logger     *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(lines LinePreviewer, apartments ApartmentReader, inquiries InquiryReader, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		lines:      lines,
		apartments: apartments,
		inquiries:  inquiries,
		version:    version,
		logger:     logger,
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("get_version",
		mcp.WithDescription("Return the console server version"),
	), s.handleGetVersion)

	mcpServer.AddTool(mcp.NewTool("parse_lines",
		mcp.WithDescription("Parse building line text such as \"1~2, 3~7\" into line number groups. "+
			"Each comma-separated token becomes one group; tokens that do not parse are listed as rejected."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Operator-typed line text, e.g. \"1~4\" or \"1-2, 5\""),
		),
	), s.handleParseLines)

	mcpServer.AddTool(mcp.NewTool("format_lines",
		mcp.WithDescription("Format line numbers for display: a consecutive run renders as \"first~last\", "+
			"anything else as sorted comma-separated numbers."),
		mcp.WithArray("lines",
			mcp.Required(),
			mcp.Description("Line numbers between 1 and 99"),
			mcp.Items(map[string]any{"type": "integer"}),
		),
	), s.handleFormatLines)

	mcpServer.AddTool(mcp.NewTool("list_apartments",
		mcp.WithDescription("List apartment complexes ordered by name"),
		mcp.WithString("search",
			mcp.Description("Only apartments whose name, address or code contains this text"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of apartments to return (default: 50)"),
		),
	), s.handleListApartments)

	mcpServer.AddTool(mcp.NewTool("list_open_inquiries",
		mcp.WithDescription("List resident inquiries that have not been answered yet, newest first"),
		mcp.WithNumber("apartment_id",
			mcp.Description("Only inquiries from this apartment"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of inquiries to return (default: 50)"),
		),
	), s.handleListOpenInquiries)
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

func (s *Server) handleParseLines(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	preview := s.lines.Preview(text)

	type parseResult struct {
		Groups   [][]int  `json:"groups"`
		Labels   []string `json:"labels"`
		Rejected []string `json:"rejected"`
	}

	result := parseResult{
		Groups:   preview.Groups,
		Labels:   preview.Labels,
		Rejected: preview.Rejected,
	}
	if result.Groups == nil {
		result.Groups = [][]int{}
	}
	if result.Labels == nil {
		result.Labels = []string{}
	}
	if result.Rejected == nil {
		result.Rejected = []string{}
	}

	return jsonResult(result)
}

func (s *Server) handleFormatLines(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	numbers, err := intArgs(request.GetArguments()["lines"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !line.Valid(numbers) {
		return mcp.NewToolResultError(fmt.Sprintf("lines must be a non-empty list of numbers between %d and %d", line.MinLine, line.MaxLine)), nil
	}
	return mcp.NewToolResultText(line.Format(numbers)), nil
}

func (s *Server) handleListApartments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	options := []repository.Option{
		repository.WithOrderAsc("name"),
		repository.WithLimit(clampLimit(request.GetInt("limit", DefaultListLimit))),
	}
	if search := strings.TrimSpace(request.GetString("search", "")); search != "" {
		options = append(options, apartment.WithSearch(search))
	}

	apartments, err := s.apartments.Find(ctx, options...)
	if err != nil {
		s.logger.Error("list apartments failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list apartments failed: %v", err)), nil
	}

	type apartmentResult struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address"`
		Code    string `json:"code"`
	}

	results := make([]apartmentResult, len(apartments))
	for i, a := range apartments {
		results[i] = apartmentResult{
			ID:      strconv.FormatInt(a.ID(), 10),
			Name:    a.Name(),
			Address: a.Address(),
			Code:    a.Code(),
		}
	}

	return jsonResult(results)
}

func (s *Server) handleListOpenInquiries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	options := []repository.Option{
		inquiry.WithStatus(inquiry.StatusOpen),
		repository.WithOrderDesc("created_at"),
		repository.WithOrderDesc("id"),
		repository.WithLimit(clampLimit(request.GetInt("limit", DefaultListLimit))),
	}
	if apartmentID := int64(request.GetInt("apartment_id", 0)); apartmentID > 0 {
		options = append(options, repository.WithApartmentID(apartmentID))
	}

	inquiries, err := s.inquiries.Find(ctx, options...)
	if err != nil {
		s.logger.Error("list inquiries failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list inquiries failed: %v", err)), nil
	}

	type inquiryResult struct {
		ID          string `json:"id"`
		ApartmentID string `json:"apartment_id"`
		Title       string `json:"title"`
		Content     string `json:"content"`
		CreatedAt   string `json:"created_at"`
	}

	results := make([]inquiryResult, len(inquiries))
	for i, q := range inquiries {
		results[i] = inquiryResult{
			ID:          strconv.FormatInt(q.ID(), 10),
			ApartmentID: strconv.FormatInt(q.ApartmentID(), 10),
			Title:       q.Title(),
			Content:     q.Content(),
			CreatedAt:   q.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	return jsonResult(results)
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// intArgs converts a JSON array argument into integers. JSON numbers arrive
// as float64 and must be whole.
func intArgs(raw any) ([]int, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("lines must be an array of numbers")
	}
	numbers := make([]int, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("line %v is not a whole number", v)
			}
			numbers = append(numbers, int(v))
		case int:
			numbers = append(numbers, v)
		default:
			return nil, fmt.Errorf("line %v is not a number", item)
		}
	}
	return numbers, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit*2 {
		return DefaultListLimit
	}
	return limit
}
