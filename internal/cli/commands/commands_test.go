package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func runWith(t *testing.T, app *App, stdin string, args ...string) result {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}
	cmd, _ := newRootCommand(app)
	t.Cleanup(app.Close)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{args[0], "--no-color"}, args[1:]...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	return runWith(t, &App{}, "", args...)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "sqlparse", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"parse", "check", "tokens", "batch", "format", "lsp", "watch", "serve", "version"} {
		assert.Contains(t, names, expected)
	}

	for _, flag := range []string{"config", "format", "log-level", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestLSPCommand(t *testing.T) {
	cmd := NewLSPCommand(&App{})

	assert.Equal(t, "lsp", cmd.Use)
	flag := cmd.Flags().Lookup("style")
	require.NotNil(t, flag)
	assert.Equal(t, ".sqlparse-format.yml", flag.DefValue)
}

func TestVersionCommand(t *testing.T) {
	Version, GitCommit, BuildDate, GoVersion = "1.2.3", "abc123", "2026-01-01", "go1.23"
	t.Cleanup(func() { Version, GitCommit, BuildDate, GoVersion = "dev", "unknown", "unknown", "unknown" })

	res := run(t, "version")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "sqlparse version: 1.2.3")
	assert.Contains(t, res.stdout, "Git commit: abc123")
	assert.Contains(t, res.stdout, "Go version: go1.23")
}

func TestParse_Text(t *testing.T) {
	res := run(t, "parse", "SELECT a + b * 2 FROM t WHERE a > 1")

	require.NoError(t, res.err)
	assert.Equal(t, "SELECT (a + (b * 2)) FROM t WHERE (a > 1)\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestParse_Debug(t *testing.T) {
	res := run(t, "parse", "--format", "debug", "SELECT * FROM t")

	require.NoError(t, res.err)
	assert.Equal(t,
		`Statement{Query: Select(SelectStmt{Projection: [Star], From: TableRef{Name: "t", Alias: ""}, Where: nil})}`+"\n",
		res.stdout)
}

func TestParse_Stdin(t *testing.T) {
	res := runWith(t, &App{}, "SELECT 1 UNION ALL SELECT 2\n", "parse")

	require.NoError(t, res.err)
	assert.Equal(t, "SELECT 1 UNION ALL SELECT 2\n", res.stdout)
}

func TestParse_File(t *testing.T) {
	path := writeFile(t, "q.sql", "WITH c AS (SELECT 1) SELECT * FROM c")

	res := run(t, "parse", "-f", path)

	require.NoError(t, res.err)
	assert.Equal(t, "WITH c AS (SELECT 1) SELECT * FROM c\n", res.stdout)
}

func TestParse_EmptyStdin(t *testing.T) {
	res := run(t, "parse")

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "INPUT ERROR: no SQL input")
}

func TestParse_Error(t *testing.T) {
	res := run(t, "parse", "SELECT * FORM users")

	require.ErrorIs(t, res.err, errReported)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Parse error at line 1:10 [E100]")
	assert.Contains(t, res.stderr, "Did you mean: FROM")
	assert.Contains(t, res.stderr, "  1 | SELECT * FORM users")
}

func TestParse_JSON(t *testing.T) {
	res := run(t, "parse", "--format", "json", "SELECT a FROM t")
	require.NoError(t, res.err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "success", doc["status"])
	assert.Equal(t, "SELECT a FROM t", doc["sql"])
	assert.Contains(t, doc["ast"], `Column("a")`)
	assert.NotContains(t, doc, "error")
}

func TestParse_JSONError(t *testing.T) {
	res := run(t, "parse", "--format", "json", "SELECT (1")
	require.ErrorIs(t, res.err, errReported)
	assert.Empty(t, res.stderr)

	var doc struct {
		Status string `json:"status"`
		Error  struct {
			Code     string   `json:"code"`
			Line     int      `json:"line"`
			Expected []string `json:"expected"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "error", doc.Status)
	assert.Equal(t, "E101", doc.Error.Code)
	assert.Equal(t, 1, doc.Error.Line)
	assert.Contains(t, doc.Error.Expected, "')'")
}

func TestParse_InvalidFormat(t *testing.T) {
	res := run(t, "parse", "--format", "jsno", "SELECT 1")

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "INVALID FORMAT")
	assert.Contains(t, res.stderr, "Did you mean: json?")
}

func TestParse_ConfigFile(t *testing.T) {
	path := writeFile(t, "sqlparse.yml", "output:\n  format: debug\ncache:\n  enabled: false\n")

	app := &App{}
	res := runWith(t, app, "", "parse", "--config", path, "SELECT 1")

	require.NoError(t, res.err)
	assert.Equal(t, "Statement{Query: Select(SelectStmt{Projection: [Number(1)], From: nil, Where: nil})}\n", res.stdout)
	assert.Nil(t, app.cache)
}

func TestParse_MissingConfigFile(t *testing.T) {
	res := run(t, "parse", "--config", filepath.Join(t.TempDir(), "missing.yml"), "SELECT 1")

	require.Error(t, res.err)
	assert.NotErrorIs(t, res.err, errReported)
	assert.Contains(t, res.err.Error(), "failed to read config file")
}

func TestCheck_Valid(t *testing.T) {
	res := run(t, "check", "SELECT * FROM t")

	require.NoError(t, res.err)
	assert.Equal(t, "✓ query: valid\n", res.stdout)
}

func TestCheck_Files(t *testing.T) {
	good := writeFile(t, "good.sql", "SELECT a FROM t")
	bad := writeFile(t, "bad.sql", "SELECT a FROM t WHEER a = 1")

	res := run(t, "check", "-f", good, "-f", bad)

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stdout, "✓ "+good+": valid")
	assert.Contains(t, res.stdout, bad+":\nParse error at line 1:17")
	assert.Contains(t, res.stdout, "Did you mean: WHERE")
}

func TestCheck_Quiet(t *testing.T) {
	res := run(t, "check", "--quiet", "SELCT 1")

	require.ErrorIs(t, res.err, errReported)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestCheck_JSON(t *testing.T) {
	res := run(t, "check", "--format", "json", "SELECT")
	require.ErrorIs(t, res.err, errReported)

	var doc struct {
		Status  string `json:"status"`
		Summary struct {
			StatementCount int `json:"statement_count"`
			ErrorCount     int `json:"error_count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "error", doc.Status)
	assert.Equal(t, 1, doc.Summary.StatementCount)
	assert.Equal(t, 1, doc.Summary.ErrorCount)
}

func TestTokens_Table(t *testing.T) {
	res := run(t, "tokens", "SELECT a FROM t -- done")

	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "KIND        LEXEME  SPAN", lines[0])
	assert.Equal(t, "SELECT      SELECT  0..6", lines[2])
	assert.Equal(t, "IDENTIFIER  a       7..8", lines[3])
}

func TestTokens_JSON(t *testing.T) {
	res := run(t, "tokens", "--format", "json", "--eof", "a <> 'x'")
	require.NoError(t, res.err)

	var tokens []tokenJSON
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tokens))
	assert.Equal(t, []tokenJSON{
		{Kind: "IDENTIFIER", Lexeme: "a", Start: 0, End: 1},
		{Kind: "NOTEQUAL", Lexeme: "<>", Start: 2, End: 4},
		{Kind: "STRING", Lexeme: "'x'", Start: 5, End: 8},
		{Kind: "EOF", Lexeme: "", Start: 8, End: 8},
	}, tokens)
}

const script = `SELECT 1;
SELECT * FORM t;
-- a comment; with a semicolon
SELECT 'a;b' FROM t;
`

func TestBatch_Text(t *testing.T) {
	path := writeFile(t, "script.sql", script)

	res := run(t, "batch", path)

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stdout, "Statement 2 (line 2)")
	assert.Contains(t, res.stdout, "Did you mean: FROM")
	assert.Contains(t, res.stdout, "Statements: 3\n")
	assert.Contains(t, res.stdout, "Errors:     1\n")
	assert.NotContains(t, res.stdout, "error limit")
}

func TestBatch_JSON(t *testing.T) {
	res := runWith(t, &App{}, script, "batch", "--format", "json")
	require.ErrorIs(t, res.err, errReported)

	var doc struct {
		Errors []struct {
			Statement int    `json:"statement"`
			Code      string `json:"code"`
		} `json:"errors"`
		Summary struct {
			StatementCount int  `json:"statement_count"`
			ErrorCount     int  `json:"error_count"`
			Truncated      bool `json:"truncated"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, 2, doc.Errors[0].Statement)
	assert.Equal(t, "E100", doc.Errors[0].Code)
	assert.Equal(t, 3, doc.Summary.StatementCount)
	assert.False(t, doc.Summary.Truncated)
}

func TestBatch_AllValid(t *testing.T) {
	res := runWith(t, &App{}, "SELECT 1; SELECT 2;", "batch")

	require.NoError(t, res.err)
	assert.Equal(t, "Statements: 2\nErrors:     0\n", res.stdout)
}

func TestBatch_MaxErrors(t *testing.T) {
	res := runWith(t, &App{}, "x; y; z", "batch", "--max-errors", "1")

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stdout, "Statement 1 (line 1)")
	assert.NotContains(t, res.stdout, "Statement 2")
	assert.Contains(t, res.stdout, "Errors:     3\n")
	assert.Contains(t, res.stdout, "error limit reached")
}

func TestBatch_MaxErrorsJSON(t *testing.T) {
	res := runWith(t, &App{}, "x; y; z", "batch", "--max-errors", "1", "--format", "json")
	require.ErrorIs(t, res.err, errReported)

	var doc sqlerrors.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Len(t, doc.Errors, 1)
	assert.Equal(t, sqlerrors.Summary{StatementCount: 3, ErrorCount: 3, Truncated: true}, doc.Summary)
}

func TestBatch_Logging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := &App{Logger: zap.New(core)}

	res := runWith(t, app, "SELECT 1; SELECT 1; SELECT FROM", "batch")
	require.ErrorIs(t, res.err, errReported)

	finished := logs.FilterMessage("batch finished").All()
	require.Len(t, finished, 1)

	fields := finished[0].ContextMap()
	assert.NotEmpty(t, fields["run_id"])
	assert.Equal(t, int64(3), fields["statements"])
	assert.Equal(t, int64(1), fields["errors"])
	assert.Equal(t, uint64(1), fields["cache_hits"])

	started := logs.FilterMessage("batch started").All()
	require.Len(t, started, 1)
	assert.Equal(t, fields["run_id"], started[0].ContextMap()["run_id"])
}

func TestFormat_Query(t *testing.T) {
	res := run(t, "format", "select a,b from t where a>1")

	require.NoError(t, res.err)
	assert.Equal(t, "SELECT a, b\nFROM t\nWHERE a > 1;\n", res.stdout)
}

func TestFormat_CheckAndWrite(t *testing.T) {
	path := writeFile(t, "q.sql", "select 1")

	res := run(t, "format", "-f", path, "--check")
	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stdout, path+" is not formatted")

	res = run(t, "format", "-f", path, "--write")
	require.NoError(t, res.err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", string(data))

	res = run(t, "format", "-f", path, "--check")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "✓ "+path+" is formatted")
}

func TestFormat_Diff(t *testing.T) {
	path := writeFile(t, "q.sql", "select a from t;\n")

	res := run(t, "format", "-f", path, "--diff")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-select a from t;\n+SELECT a\n")
}

func TestFormat_Style(t *testing.T) {
	style := writeFile(t, "style.yml", "format:\n  keyword_case: lower\n")

	res := run(t, "format", "--style", style, "SELECT a FROM t")

	require.NoError(t, res.err)
	assert.Equal(t, "select a\nfrom t;\n", res.stdout)
}

func TestFormat_ParseError(t *testing.T) {
	res := run(t, "format", "SELECT 1; SELECT FROM")

	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "FORMAT FAILED: statement 2 (line 1)")
}

func TestFormat_WriteWithoutFile(t *testing.T) {
	res := run(t, "format", "--write", "SELECT 1")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--write requires --file")
}

func TestWatchCommand(t *testing.T) {
	cmd := NewWatchCommand(&App{})

	assert.Equal(t, "watch [dir...]", cmd.Use)
	pattern := cmd.Flags().Lookup("pattern")
	require.NotNil(t, pattern)
	assert.Equal(t, "[*.sql]", pattern.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("delay"))
}

func TestServeCommand(t *testing.T) {
	cmd := NewServeCommand(&App{})

	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("style"))
}

func TestServe_BadAddress(t *testing.T) {
	res := run(t, "serve", "--addr", "256.0.0.1:http-nope")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to listen")
}

func TestCheckChanged(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	good := writeFile(t, "good.sql", "SELECT 1;\nSELECT 2;\n")
	bad := writeFile(t, "bad.sql", script)
	missing := filepath.Join(t.TempDir(), "gone.sql")

	var stdout bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)

	checkChanged(cmd, &App{Logger: zap.NewNop()}, []string{bad, missing, good})

	out := stdout.String()
	assert.Contains(t, out, bad+"\n")
	assert.Contains(t, out, "Statement 2 (line 2)")
	assert.Contains(t, out, good+"\n")
	assert.Contains(t, out, "Statements: 2\nErrors:     0\n")
	assert.NotContains(t, out, "gone.sql")
}
