package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		code  int
	}{
		{"match", []string{"match", "a{2,3}"}, "aaa", ExitOK},
		{"too_many", []string{"match", "a{2,3}"}, "aaaa", ExitNoMatch},
		{"too_few", []string{"match", "foo"}, "fo", ExitNoMatch},
		{"bad_pattern", []string{"match", "(a"}, "a", ExitError},
		{"missing_pattern", []string{"match"}, "", ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := execute(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMatchCommandFileAndPrint(t *testing.T) {
	path := writeFile(t, "input.txt", "bb")

	code, out, _ := execute(t, "", "match", "--print", "a|b*|c", path)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "match\n", out)

	code, _, stderr := execute(t, "", "match", "a", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "unable to open input")
}

func TestDumpCommand(t *testing.T) {
	code, out, _ := execute(t, "", "dump", "[abc][a-c]")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "classes: 1")
	assert.Contains(t, out, "nodes: 3")
}

const rulesYAML = `
rules:
  - name: ws
    pattern: "[ \t\r\n]+"
    skip: true
  - name: number
    pattern: "[0-9]+"
  - name: word
    pattern: "[a-z]+"
`

func TestTokensCommand(t *testing.T) {
	path := writeFile(t, "rules.yaml", rulesYAML)

	code, out, _ := execute(t, "abc 12\nx", "tokens", "--rules", path)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "1:1\tword\t\"abc\"\n1:5\tnumber\t\"12\"\n2:1\tword\t\"x\"\n", out)
}

func TestTokensCommandErrors(t *testing.T) {
	path := writeFile(t, "rules.yaml", rulesYAML)

	code, _, stderr := execute(t, "", "tokens")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "--rules is required")

	code, out, stderr := execute(t, "ab ?", "tokens", "--rules", path)
	assert.Equal(t, ExitError, code)
	assert.Equal(t, "1:1\tword\t\"ab\"\n", out)
	assert.Contains(t, stderr, "no rule matches at line 1:4")
}

func TestTokensCommandRulesFromEnv(t *testing.T) {
	path := writeFile(t, "rules.yaml", rulesYAML)
	t.Setenv("STREAMRE_RULES", path)
	t.Setenv("STREAMRE_SKIP_DELIMS", "true")

	code, out, _ := execute(t, "1,2", "tokens")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "1:1\tnumber\t\"1\"\n1:3\tnumber\t\"2\"\n", out)
}

func TestConfigFile(t *testing.T) {
	rulesPath := writeFile(t, "rules.yaml", rulesYAML)
	cfg := writeFile(t, "config.yaml", "rules: "+rulesPath+"\nlog-level: warn\n")

	code, out, _ := execute(t, "hi", "--config", cfg, "tokens")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "1:1\tword\t\"hi\"\n", out)

	code, _, stderr := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "dump", "a")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "unable to read config file")
}

func TestTokensCommandFollow(t *testing.T) {
	rulesPath := writeFile(t, "rules.yaml", rulesYAML)
	input := writeFile(t, "input.txt", "tail 1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	code := Execute(ctx, []string{"tokens", "--rules", rulesPath, "--follow", "--poll-interval", "5ms", input},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, ExitOK, code, stderr.String())
	assert.Equal(t, "1:1\tword\t\"tail\"\n1:6\tnumber\t\"1\"\n", stdout.String())
}
