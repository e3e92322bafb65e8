package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/prompt"
)

func newTestStore(t *testing.T, root, name, input string) (*Store, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	console := prompt.NewConsole(strings.NewReader(input), &out)
	return NewStore(root, name, console, zerolog.Nop()), &out
}

func readConfigFile(t *testing.T, path string) model.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	var cfg model.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Config file is not valid JSON: %v", err)
	}
	return cfg
}

func TestPathNormalizesJSONSuffix(t *testing.T) {
	root := t.TempDir()
	expected := filepath.Join(root, "pythontube.json")

	for _, name := range []string{"pythontube", "pythontube.json"} {
		store, _ := newTestStore(t, root, name, "")
		if store.Path() != expected {
			t.Errorf("Path() for name %q = %s, expected %s", name, store.Path(), expected)
		}
	}
}

func TestBootstrapAcceptsDefaultDirectory(t *testing.T) {
	root := t.TempDir()
	store, out := newTestStore(t, root, "ytfetch", "\ny\n")

	cfg, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expectedDir := filepath.Join(root, "ytfetch-output")
	if cfg.OutputDirPath != expectedDir {
		t.Errorf("Expected output dir %s, got %s", expectedDir, cfg.OutputDirPath)
	}
	if cfg.App != "ytfetch" || cfg.Version != ConfigVersion {
		t.Errorf("Unexpected config constants: %+v", cfg)
	}

	if info, err := os.Stat(expectedDir); err != nil || !info.IsDir() {
		t.Fatalf("Expected output directory to be created: %v", err)
	}

	written := readConfigFile(t, store.Path())
	if written != *cfg {
		t.Errorf("Written config %+v does not match returned %+v", written, *cfg)
	}

	if !strings.Contains(out.String(), "is not a directory") {
		t.Errorf("Expected not-a-directory notice, got %q", out.String())
	}
}

func TestBootstrapConfirmsExistingDirectory(t *testing.T) {
	root := t.TempDir()
	existing := t.TempDir()
	store, out := newTestStore(t, root, "ytfetch", existing+"\ny\n")

	cfg, err := store.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OutputDirPath != filepath.Clean(existing) {
		t.Errorf("Expected %s, got %s", existing, cfg.OutputDirPath)
	}
	if !strings.Contains(out.String(), "Is this the right path (y/n)? ") {
		t.Errorf("Expected use confirmation prompt, got %q", out.String())
	}
}

func TestBootstrapDeclineReprompts(t *testing.T) {
	root := t.TempDir()
	existing := t.TempDir()
	declined := filepath.Join(root, "declined")
	// decline the existing dir, decline creating another, then accept the default
	input := existing + "\nn\n" + declined + "\nno\n\ny\n"
	store, out := newTestStore(t, root, "ytfetch", input)

	cfg, err := store.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OutputDirPath != store.DefaultOutputDir() {
		t.Errorf("Expected default dir %s, got %s", store.DefaultOutputDir(), cfg.OutputDirPath)
	}
	if _, err := os.Stat(declined); !os.IsNotExist(err) {
		t.Error("Declined directory should not be created")
	}
	if got := strings.Count(out.String(), "Enter the output directory path"); got != 3 {
		t.Errorf("Expected 3 path prompts, got %d", got)
	}
}

func TestBootstrapCreatesNestedRelativeDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	root := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", "media/./videos/\ny\n")

	cfg, err := store.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := filepath.Join(wd, "media", "videos")
	if cfg.OutputDirPath != expected {
		t.Errorf("Expected %s, got %s", expected, cfg.OutputDirPath)
	}
	if info, err := os.Stat(expected); err != nil || !info.IsDir() {
		t.Errorf("Expected nested directory to exist: %v", err)
	}
}

func TestBootstrapInterruptWritesNothing(t *testing.T) {
	root := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", "\n")

	_, err := store.Load(context.Background())
	if !errors.Is(err, prompt.ErrInterrupted) {
		t.Fatalf("Expected ErrInterrupted, got %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("Config file should not be written after interrupt")
	}
}

func TestLoadExistingConfigDoesNotPrompt(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	store, out := newTestStore(t, root, "ytfetch", "")

	content := `{"app":"ytfetch","version":"1.0","output_dir_path":"` + outDir + `"}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := model.Config{App: "ytfetch", Version: "1.0", OutputDirPath: outDir}
	if *cfg != expected {
		t.Errorf("Expected %+v, got %+v", expected, *cfg)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no prompt output, got %q", out.String())
	}
}

func TestLoadIsCached(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", "")

	content := `{"app":"ytfetch","version":"1.0","output_dir_path":"` + outDir + `"}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	first, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A second load must not touch the file again.
	if err := os.WriteFile(store.Path(), []byte("{broken"), 0644); err != nil {
		t.Fatalf("Failed to overwrite config: %v", err)
	}

	second, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected cached config, got error %v", err)
	}
	if first != second {
		t.Error("Expected the identical config value from both loads")
	}
}

func TestLoadDirectoryIsConflict(t *testing.T) {
	root := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", "")
	if err := os.Mkdir(store.Path(), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrNotAFile) {
		t.Errorf("Expected ErrNotAFile, got %v", err)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	tests := []string{"{not json", "[1, 2", "app: yaml"}

	for _, content := range tests {
		root := t.TempDir()
		store, _ := newTestStore(t, root, "ytfetch", "")
		if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		_, err := store.Load(context.Background())
		if !errors.Is(err, ErrMalformedConfig) {
			t.Errorf("Content %q: expected ErrMalformedConfig, got %v", content, err)
		}
	}
}

func TestLoadMissingOutputDirRunsBootstrap(t *testing.T) {
	root := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", "\ny\n")

	gone := filepath.Join(root, "gone")
	content := `{"app":"ytfetch","version":"1.0","output_dir_path":"` + gone + `"}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OutputDirPath != store.DefaultOutputDir() {
		t.Errorf("Expected re-created default dir, got %s", cfg.OutputDirPath)
	}
}

func TestResetOverwritesConfig(t *testing.T) {
	root := t.TempDir()
	first := t.TempDir()
	second := t.TempDir()
	store, _ := newTestStore(t, root, "ytfetch", first+"\ny\n"+second+"\ny\n")

	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cfg, err := store.Reset(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OutputDirPath != second {
		t.Errorf("Expected %s, got %s", second, cfg.OutputDirPath)
	}
	if written := readConfigFile(t, store.Path()); written.OutputDirPath != second {
		t.Errorf("Expected file to hold %s, got %s", second, written.OutputDirPath)
	}
}
