package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/format"
)

// Request is the body of every /v1 endpoint
type Request struct {
	SQL string `json:"sql"`

	// Format endpoint overrides
	IndentSize  *int   `json:"indent_size,omitempty"`
	KeywordCase string `json:"keyword_case,omitempty"`

	// Check endpoint limit; zero means errors.MaxErrors
	MaxErrors int `json:"max_errors,omitempty"`
}

// ParseResponse is returned by /v1/parse
type ParseResponse struct {
	Status string                `json:"status"`
	SQL    string                `json:"sql,omitempty"`
	Tree   string                `json:"tree,omitempty"`
	Error  *sqlerrors.ParseError `json:"error,omitempty"`
}

// Token is one entry of the /v1/tokens response
type Token struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// FormatResponse is returned by /v1/format
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string                `json:"error"`
	Message string                `json:"message"`
	Detail  *sqlerrors.ParseError `json:"detail,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleParse parses a single statement. Parse failures are 422 with the
// diagnostic in the body.
func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	stmt, err := h.parse(req.SQL)
	if err != nil {
		var perr *sqlerrors.ParseError
		if !errors.As(err, &perr) {
			renderError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		renderJSON(w, http.StatusUnprocessableEntity, ParseResponse{Status: "error", Error: perr})
		return
	}

	renderJSON(w, http.StatusOK, ParseResponse{
		Status: "ok",
		SQL:    stmt.String(),
		Tree:   parser.Dump(stmt),
	})
}

// handleCheck parses every statement of a script. The reply is always 200;
// the summary tells whether anything failed.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	collector := sqlerrors.NewCollector(req.MaxErrors)
	for i, seg := range parser.SplitStatements(req.SQL) {
		_, err := h.parse(seg.Text)

		var perr *sqlerrors.ParseError
		if err != nil && !errors.As(err, &perr) {
			renderError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		collector.Record(i+1, perr)
	}

	data, err := collector.FormatAsJSON()
	if err != nil {
		renderError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, data+"\n")
}

func (h *Handler) handleTokens(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	tokens := lo.Map(lexer.Tokenize(req.SQL), func(tok lexer.Token, _ int) Token {
		return Token{Kind: tok.Type.String(), Lexeme: tok.Lexeme, Start: tok.Start, End: tok.End}
	})
	renderJSON(w, http.StatusOK, tokens)
}

// handleFormat formats a script with the server style, optionally
// overridden per request
func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	config := *h.formatConfig
	if req.IndentSize != nil {
		config.IndentSize = *req.IndentSize
	}
	if req.KeywordCase != "" {
		config.KeywordCase = req.KeywordCase
	}
	if err := config.Validate(); err != nil {
		renderError(w, http.StatusBadRequest, "invalid_style", err.Error())
		return
	}

	formatted, err := format.New(&config).FormatScript(req.SQL)
	if err != nil {
		var perr *sqlerrors.ParseError
		if errors.As(err, &perr) {
			renderJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "parse_error",
				Message: err.Error(),
				Detail:  perr,
			})
			return
		}
		renderError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	renderJSON(w, http.StatusOK, FormatResponse{
		Formatted: formatted,
		Changed:   formatted != req.SQL,
	})
}

// decodeRequest reads a Request, replying 400 when the body is unusable
func decodeRequest(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	var req Request

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		renderError(w, http.StatusBadRequest, "invalid_request", fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}
	if strings.TrimSpace(req.SQL) == "" {
		renderError(w, http.StatusBadRequest, "invalid_request", "sql must not be empty")
		return nil, false
	}
	return &req, true
}

func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func renderError(w http.ResponseWriter, status int, code, message string) {
	renderJSON(w, status, ErrorResponse{Error: code, Message: message})
}
