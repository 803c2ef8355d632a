package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagtree/internal/diagfmt"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runCLI запускает CLI без поиска tagtree.toml, если config не задан явно.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	hasConfig := false
	for _, a := range args {
		if a == "--config" || strings.HasPrefix(a, "--config=") {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append([]string{"--config", "none"}, args...)
	}
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestTokenizeCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.html", "<p>x</p>")
	code, out, errOut := runCLI(t, "tokenize", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, `Literal    "p"`) || !strings.Contains(out, "EOF") {
		t.Fatalf("unexpected tokens:\n%s", out)
	}

	code, out, _ = runCLI(t, "tokenize", "--format", "json", path)
	if code != 0 {
		t.Fatalf("json exit %d", code)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(toks) == 0 || toks[len(toks)-1]["kind"] != "EOF" {
		t.Fatalf("expected EOF last, got %v", toks)
	}
}

func TestParseCommandFormats(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.html", "<div><!-- c --><p>x</p></div>\n")

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{"tree", nil, func(t *testing.T, out string) {
			if !strings.Contains(out, "<div>") || !strings.Contains(out, `"x"`) {
				t.Fatalf("unexpected tree:\n%s", out)
			}
			if strings.Contains(out, " c ") {
				t.Fatalf("comment leaked into tree:\n%s", out)
			}
		}},
		{"tree spans", []string{"--spans"}, func(t *testing.T, out string) {
			if !strings.Contains(out, "<p> [1:16-1:24]") {
				t.Fatalf("expected span on <p>:\n%s", out)
			}
		}},
		{"json", []string{"--format", "json"}, func(t *testing.T, out string) {
			var tree diagfmt.TreeOutput
			if err := json.Unmarshal([]byte(out), &tree); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tree.Nodes != 3 || tree.Root == nil || len(tree.Root.Children) != 1 {
				t.Fatalf("unexpected tree json: %+v", tree)
			}
		}},
		{"html", []string{"--format", "html"}, func(t *testing.T, out string) {
			if out != "<div><p>x</p></div>\n" {
				t.Fatalf("unexpected html: %q", out)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"parse"}, tt.args...)
			code, out, errOut := runCLI(t, append(args, path)...)
			if code != 0 {
				t.Fatalf("exit %d, stderr:\n%s", code, errOut)
			}
			tt.check(t, out)
		})
	}
}

func TestParseCommandDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.html", "<div><span>x</div>")
	code, out, errOut := runCLI(t, "parse", "--format", "html", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "SYN2003") {
		t.Fatalf("expected mismatch diagnostic, got:\n%s", errOut)
	}
	if strings.Contains(errOut, "error:") {
		t.Fatalf("diagnostic exit must not print an error line:\n%s", errOut)
	}
	// дерево всё равно строится
	if !strings.HasPrefix(out, "<div><span>") {
		t.Fatalf("expected recovered tree, got %q", out)
	}

	code, _, errOut = runCLI(t, "--path-mode", "basename", "parse", "--diagnostics", "short", path)
	if code != 1 || !strings.Contains(errOut, "error SYN2003 bad.html:1:") {
		t.Fatalf("expected short diagnostics, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, "note SYN2003 bad.html:1:6 <span> opened here") {
		t.Fatalf("expected note line, got:\n%s", errOut)
	}

	code, _, errOut = runCLI(t, "parse", "--diagnostics", "json", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, `"SYN2003"`) {
		t.Fatalf("expected json diagnostics, got:\n%s", errOut)
	}
}

func TestParseCommandFatal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fatal.html", "<div>/* never closes")
	code, out, errOut := runCLI(t, "--trace-mode", "ring", "parse", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if out != "" {
		t.Fatalf("fatal parse must not print a tree, got %q", out)
	}
	if !strings.Contains(errOut, "SYN2001") {
		t.Fatalf("expected unterminated comment, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, "trace: last events before fatal error") {
		t.Fatalf("expected ring dump, got:\n%s", errOut)
	}
}

func TestParseCommandStdin(t *testing.T) {
	a := &app{}
	cmd := newRootCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetArgs([]string{"--config", "none", "parse", "--format", "html", "-"})
	cmd.SetIn(strings.NewReader("<ul><li>a</li></ul>"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v\n%s", err, errOut.String())
	}
	a.tracing.close(&errOut)
	if out.String() != "<ul><li>a</li></ul>\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestParseCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", "<p>a</p>")
	writeFile(t, dir, "sub/b.html", "<p>b</b>")
	writeFile(t, dir, "notes.txt", "<p>ignored</p>")

	code, out, errOut := runCLI(t, "--ui", "off", "parse", "--jobs", "2", dir)
	if code != 1 {
		t.Fatalf("expected exit 1 for the broken file, got %d", code)
	}
	if got := strings.Count(out, "== "); got != 2 {
		t.Fatalf("expected 2 file headers, got %d:\n%s", got, out)
	}
	if !strings.Contains(errOut, "parsed 2 files: 1 with errors, 0 from cache") {
		t.Fatalf("unexpected summary:\n%s", errOut)
	}

	code, out, _ = runCLI(t, "--ui", "off", "--quiet", "parse", "--format", "json", dir)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	var trees map[string]*diagfmt.TreeOutput
	if err := json.Unmarshal([]byte(out), &trees); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(trees) != 2 {
		t.Fatalf("expected 2 trees, got %d", len(trees))
	}
}

func TestParseCommandCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/a.html", "<p>a</p>")
	cacheDir := filepath.Join(dir, "cache")

	args := []string{"--ui", "off", "parse", "--cache", "--cache-dir", cacheDir, filepath.Join(dir, "docs")}
	if code, _, errOut := runCLI(t, args...); code != 0 {
		t.Fatalf("first run exit %d:\n%s", code, errOut)
	}
	code, _, errOut := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("second run exit %d:\n%s", code, errOut)
	}
	if !strings.Contains(errOut, "1 from cache") {
		t.Fatalf("expected cache hit, got:\n%s", errOut)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "tagtree.toml", "[output]\nformat = \"html\"\n\n[parse]\ndecode_entities = true\n")
	page := writeFile(t, dir, "p.html", "<p>a &amp; b</p>")

	code, out, errOut := runCLI(t, "--config", cfg, "parse", page)
	if code != 0 {
		t.Fatalf("exit %d:\n%s", code, errOut)
	}
	if out != "<p>a &amp; b</p>\n" {
		t.Fatalf("expected html with re-escaped entity, got %q", out)
	}

	// флаг перекрывает файл
	code, out, _ = runCLI(t, "--config", cfg, "parse", "--format", "tree", page)
	if code != 0 || !strings.Contains(out, `"a & b"`) {
		t.Fatalf("expected decoded text in tree output, got %q", out)
	}

	bad := writeFile(t, dir, "bad.toml", "[output]\nformat = \"yaml\"\n")
	code, _, errOut = runCLI(t, "--config", bad, "parse", page)
	if code != 1 || !strings.Contains(errOut, "error:") {
		t.Fatalf("expected config error, got %d:\n%s", code, errOut)
	}
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(out, "tagtree 0.1.0-dev") {
		t.Fatalf("unexpected version output %q", out)
	}

	code, out, _ = runCLI(t, "version", "--format", "json", "--full")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Tool != "tagtree" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.html", "<p></p>")
	code, _, errOut := runCLI(t, "parse", "--format", "yaml", path)
	if code != 1 || !strings.Contains(errOut, "error: unknown format: yaml") {
		t.Fatalf("expected format error, got %d:\n%s", code, errOut)
	}
}

func TestProgressMode(t *testing.T) {
	var errOut bytes.Buffer // не терминал
	tests := []struct {
		value string
		quiet bool
		want  bool
	}{
		{"", false, false},
		{"auto", false, false},
		{" ON ", false, true},
		{"on", true, false},
		{"off", false, false},
	}
	for _, tt := range tests {
		var m progressMode
		if err := m.Set(tt.value); err != nil {
			t.Fatalf("Set(%q): %v", tt.value, err)
		}
		if got := m.show(&errOut, tt.quiet); got != tt.want {
			t.Fatalf("show(%q, quiet=%v) = %v, want %v", tt.value, tt.quiet, got, tt.want)
		}
	}

	code, _, stderr := runCLI(t, "--ui", "sideways", "version")
	if code != 1 || !strings.Contains(stderr, `expected auto|on|off, got "sideways"`) {
		t.Fatalf("expected --ui error, got %d:\n%s", code, stderr)
	}
}

func TestMinSeverity(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dup.html", `<p id="a" id="b">x</p>`)
	code, _, errOut := runCLI(t, "parse", path)
	if code != 0 || !strings.Contains(errOut, "WARNING") {
		t.Fatalf("expected a warning and exit 0, got %d:\n%s", code, errOut)
	}
	code, _, errOut = runCLI(t, "--min-severity", "error", "parse", path)
	if code != 0 || errOut != "" {
		t.Fatalf("warning should be hidden, got %d:\n%s", code, errOut)
	}
}
