// Package lsp implements a Language Server Protocol server for SQL files.
// It publishes parse diagnostics as documents change, completes keywords and
// formats documents.
package lsp

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/format"
)

// publisher sends diagnostics to the client
type publisher interface {
	PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error
}

// Server implements the LSP server
type Server struct {
	docs *documentStore

	// parse is used for every statement; it may be backed by a cache
	parse parseFunc

	formatConfig *format.Config

	// client receives published diagnostics
	client publisher

	logger *zap.Logger

	// workspaceRoot is the root directory of the workspace
	workspaceRoot string

	capabilities protocol.ServerCapabilities

	// cancel is used to signal server shutdown
	cancel context.CancelFunc
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger. Logs must not go to stdout, which
// carries the protocol.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithParser replaces the statement parser, e.g. with a cached one
func WithParser(parse func(source string) (*parser.Statement, error)) Option {
	return func(s *Server) { s.parse = parse }
}

// WithFormatConfig sets the style used for document formatting
func WithFormatConfig(config *format.Config) Option {
	return func(s *Server) { s.formatConfig = config }
}

// NewServer creates a new LSP server instance
func NewServer(opts ...Option) *Server {
	s := &Server{
		docs: newDocumentStore(),
		parse: func(source string) (*parser.Statement, error) {
			return parser.Parse(source)
		},
		formatConfig: format.DefaultConfig(),
		logger:       zap.NewNop(),
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: false,
				},
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: false,
			},
			DocumentFormattingProvider: &protocol.DocumentFormattingOptions{
				WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{
					WorkDoneProgress: false,
				},
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves the protocol on stdin and stdout until the client exits or ctx
// is cancelled
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, stdrwc{})
}

// Serve serves the protocol on rwc until the client exits or ctx is
// cancelled
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.logger.Info("starting language server")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.client = protocol.ClientDispatcher(conn, s.logger)

	conn.Go(ctx, s.handler())

	select {
	case <-ctx.Done():
	case <-conn.Done():
	}

	s.logger.Info("shutting down language server")
	return conn.Close()
}

// handler returns the JSON-RPC handler function
func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		s.logger.Debug("received", zap.String("method", req.Method()))

		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized, protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			return s.handleExit(ctx, reply, req)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleTextDocumentDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleTextDocumentDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleTextDocumentDidClose(ctx, reply, req)
		case protocol.MethodTextDocumentDidSave:
			return s.handleTextDocumentDidSave(ctx, reply, req)
		case protocol.MethodTextDocumentCompletion:
			return s.handleTextDocumentCompletion(ctx, reply, req)
		case protocol.MethodTextDocumentFormatting:
			return s.handleTextDocumentFormatting(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse initialize params")
	}

	if len(params.WorkspaceFolders) > 0 {
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	} else if params.RootURI != "" {
		s.workspaceRoot = params.RootURI.Filename()
	}
	s.logger.Info("initialize", zap.String("workspace", s.workspaceRoot))

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "sqlparse-lsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

// handleExit handles the exit notification
func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Warn("error replying to exit", zap.Error(err))
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// handleTextDocumentDidOpen handles document open notifications
func (s *Server) handleTextDocumentDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didOpen params")
	}

	doc := params.TextDocument
	s.docs.set(doc.URI, doc.Text, doc.Version)
	s.logger.Debug("document opened", zap.String("uri", string(doc.URI)), zap.Int32("version", doc.Version))

	s.publishDiagnostics(ctx, doc.URI)
	return reply(ctx, nil, nil)
}

// handleTextDocumentDidChange handles document change notifications
func (s *Server) handleTextDocumentDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	// Full document sync: the last change holds the whole text
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.set(params.TextDocument.URI, text, params.TextDocument.Version)

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// handleTextDocumentDidClose handles document close notifications
func (s *Server) handleTextDocumentDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didClose params")
	}

	s.docs.remove(params.TextDocument.URI)

	// Clear diagnostics for the closed document
	if s.client != nil {
		if err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		}); err != nil {
			s.logger.Warn("error clearing diagnostics", zap.Error(err))
		}
	}
	return reply(ctx, nil, nil)
}

// handleTextDocumentDidSave handles document save notifications
func (s *Server) handleTextDocumentDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didSave params")
	}

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// publishDiagnostics publishes diagnostics for an open document
func (s *Server) publishDiagnostics(ctx context.Context, docURI protocol.DocumentURI) {
	doc, ok := s.docs.get(docURI)
	if !ok || s.client == nil {
		return
	}

	params := protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Version:     uint32(doc.version),
		Diagnostics: diagnose(doc.text, s.parse),
	}
	s.logger.Debug("publishing diagnostics",
		zap.String("uri", string(docURI)),
		zap.Int("count", len(params.Diagnostics)))

	if err := s.client.PublishDiagnostics(ctx, &params); err != nil {
		s.logger.Warn("error publishing diagnostics", zap.Error(err))
	}
}

// replyWithError sends an LSP-compliant error response
func (s *Server) replyWithError(ctx context.Context, reply jsonrpc2.Replier, code jsonrpc2.Code, message string) error {
	return reply(ctx, nil, &jsonrpc2.Error{
		Code:    code,
		Message: message,
	})
}

// stdrwc implements io.ReadWriteCloser for stdin/stdout
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
