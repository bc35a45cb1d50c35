package lsp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
	"github.com/sqlparse/sqlparse/internal/format"
)

// completionKeywords are the suggestion keywords the parser understands
var completionKeywords = lo.Filter(sqlerrors.Keywords, func(kw string, _ int) bool {
	return lexer.IsKeyword(kw)
})

// handleTextDocumentCompletion offers keywords matching the word before the
// cursor
func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse completion params")
	}

	prefix := ""
	if doc, ok := s.docs.get(params.TextDocument.URI); ok {
		prefix = wordBefore(doc.text, params.Position)
	}

	result := protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions(prefix),
	}
	return reply(ctx, result, nil)
}

// completions returns the keyword items starting with prefix, ignoring case.
// Items keep the case the user started typing in.
func completions(prefix string) []protocol.CompletionItem {
	upper := strings.ToUpper(prefix)
	lower := prefix != "" && prefix == strings.ToLower(prefix)

	items := make([]protocol.CompletionItem, 0)
	for _, kw := range completionKeywords {
		if !strings.HasPrefix(kw, upper) {
			continue
		}
		text := kw
		if lower {
			text = strings.ToLower(kw)
		}
		items = append(items, protocol.CompletionItem{
			Label:            text,
			Kind:             protocol.CompletionItemKindKeyword,
			Detail:           "keyword",
			InsertText:       text,
			InsertTextFormat: protocol.InsertTextFormatPlainText,
		})
	}
	return items
}

// wordBefore returns the identifier characters immediately before pos
func wordBefore(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := []rune(lines[pos.Line])
	end := min(int(pos.Character), len(line))

	start := end
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return string(line[start:end])
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// handleTextDocumentFormatting replaces the whole document with its
// formatted form. Documents that do not parse are left unchanged.
func (s *Server) handleTextDocumentFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse formatting params")
	}

	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return reply(ctx, []protocol.TextEdit{}, nil)
	}

	config := *s.formatConfig
	if params.Options.InsertSpaces && params.Options.TabSize > 0 {
		config.IndentSize = int(params.Options.TabSize)
	}

	formatted, err := format.New(&config).FormatScript(doc.text)
	if err != nil {
		s.logger.Debug("not formatting document with errors",
			zap.String("uri", string(params.TextDocument.URI)), zap.Error(err))
		return reply(ctx, []protocol.TextEdit{}, nil)
	}
	if formatted == doc.text {
		return reply(ctx, []protocol.TextEdit{}, nil)
	}

	edits := []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(doc.text),
		},
		NewText: formatted,
	}}
	return reply(ctx, edits, nil)
}
