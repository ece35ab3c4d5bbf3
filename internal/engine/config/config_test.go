package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func noEnv(string) string { return "" }

func envMap(vals map[string]string) func(string) string {
	return func(key string) string { return vals[key] }
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	fs := NewMockFileSystem()
	fs.UserHome = "/home/tester"

	cfg, err := NewLoaderWithEnv(fs, noEnv).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("expected default addr %q, got %q", DefaultAddr, cfg.Addr)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.DefaultRepo != "" {
		t.Errorf("expected empty default repo, got %q", cfg.DefaultRepo)
	}
	if !cfg.GeminiAPIKey.IsEmpty() {
		t.Error("expected no API key by default")
	}
	if cfg.OutputVerbose || cfg.OutputJSON {
		t.Error("expected quiet text output by default")
	}
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	fs := NewMockFileSystem()
	path := "/home/tester/.config/git-mcp/config.yaml"
	fs.Files[path] = []byte(`default_repo: /srv/project
addr: "127.0.0.1:9000"
gemini_api_key: sk-test-123
model: gemini-flash
output:
  verbose: true
  json: true
`)

	cfg, err := NewLoaderWithEnv(fs, noEnv).LoadFrom(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DefaultRepo != "/srv/project" {
		t.Errorf("unexpected default repo %q", cfg.DefaultRepo)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("unexpected addr %q", cfg.Addr)
	}
	if string(cfg.GeminiAPIKey) != "sk-test-123" {
		t.Error("API key was not loaded")
	}
	if cfg.Model != "gemini-flash" {
		t.Errorf("unexpected model %q", cfg.Model)
	}
	if !cfg.OutputVerbose || !cfg.OutputJSON {
		t.Error("output preferences were not derived")
	}
}

func TestLoadFrom_EmptyValuesFallBackToDefaults(t *testing.T) {
	fs := NewMockFileSystem()
	path := "/cfg/config.yaml"
	fs.Files[path] = []byte("addr: \"\"\nmodel: \"\"\n")

	cfg, err := NewLoaderWithEnv(fs, noEnv).LoadFrom(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != DefaultAddr || cfg.Model != DefaultModel {
		t.Errorf("expected defaults for empty values, got addr=%q model=%q", cfg.Addr, cfg.Model)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	fs := NewMockFileSystem()
	path := "/cfg/config.yaml"
	fs.Files[path] = []byte("model: from-file\ndefault_repo: /from/file\n")

	env := envMap(map[string]string{
		"GIT_MCP_GEMINI_KEY": "sk-env",
		"GIT_MCP_MODEL":      "from-env",
		"GIT_MCP_REPO":       "/from/env",
		"GIT_MCP_ADDR":       "0.0.0.0:8080",
	})

	cfg, err := NewLoaderWithEnv(fs, env).LoadFrom(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(cfg.GeminiAPIKey) != "sk-env" {
		t.Error("env API key did not override")
	}
	if cfg.Model != "from-env" {
		t.Errorf("expected env model, got %q", cfg.Model)
	}
	if cfg.DefaultRepo != "/from/env" {
		t.Errorf("expected env repo, got %q", cfg.DefaultRepo)
	}
	if cfg.Addr != "0.0.0.0:8080" {
		t.Errorf("expected env addr, got %q", cfg.Addr)
	}
}

func TestLoad_NoHomeDirStillAppliesEnv(t *testing.T) {
	fs := NewMockFileSystem()
	fs.UserHomeErr = fmt.Errorf("no home")

	env := envMap(map[string]string{"GIT_MCP_REPO": "/env/repo"})
	cfg, err := NewLoaderWithEnv(fs, env).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultRepo != "/env/repo" {
		t.Errorf("expected env repo, got %q", cfg.DefaultRepo)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	fs := NewMockFileSystem()
	path := "/cfg/config.yaml"
	fs.Files[path] = []byte("addr: [unclosed")

	_, err := NewLoaderWithEnv(fs, noEnv).LoadFrom(context.Background(), path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	fs := NewMockFileSystem()
	path := "/cfg/config.yaml"
	fs.ReadErrors[path] = fmt.Errorf("permission denied")

	_, err := NewLoaderWithEnv(fs, noEnv).LoadFrom(context.Background(), path)
	if err == nil {
		t.Fatal("expected a read error")
	}
	if !strings.Contains(err.Error(), "reading config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSecretString_Redacted(t *testing.T) {
	secret := SecretString("sk-very-secret")

	if got := fmt.Sprintf("%v %s", secret, secret); !strings.Contains(got, "[REDACTED]") || strings.Contains(got, "sk-very-secret") {
		t.Errorf("secret leaked through formatting: %q", got)
	}

	out, err := yaml.Marshal(&Config{GeminiAPIKey: secret})
	if err != nil {
		t.Fatalf("marshaling config: %v", err)
	}
	if strings.Contains(string(out), "sk-very-secret") {
		t.Errorf("secret leaked through YAML: %s", out)
	}
	if !strings.Contains(string(out), "[REDACTED]") {
		t.Errorf("expected redaction marker in YAML: %s", out)
	}

	if secret.IsEmpty() {
		t.Error("non-empty secret reported empty")
	}
	if !SecretString("").IsEmpty() {
		t.Error("empty secret reported non-empty")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(".config", "git-mcp", "config.yaml")
	if !strings.HasSuffix(path, want) {
		t.Errorf("expected path ending in %q, got %q", want, path)
	}
}
