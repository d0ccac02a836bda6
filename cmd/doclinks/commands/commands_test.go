package commands

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/errors"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// execute parses args like the binary does and runs the selected command.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := executeWith(t, context.Background(), &out, args...)
	return out.String(), err
}

func executeWith(t *testing.T, ctx context.Context, stdout io.Writer, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("doclinks"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	kctx.BindTo(ctx, (*context.Context)(nil))

	return kctx.Run(&Global{Logger: discardLogger(), Stdout: stdout}, &cli)
}

// reportWriter buffers output and cancels once a complete report has been written.
type reportWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	cancel context.CancelFunc
}

func (w *reportWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	out := w.buf.String()
	if strings.Contains(out, "No broken links found!") || strings.Contains(out, "broken links:") {
		w.cancel()
	}
	return n, err
}

func (w *reportWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRunCheck_ReportsBrokenLinks(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.md": "[Ok](./ok) [Missing](./missing#part)\n",
		"ok.mdx":   "# Ok\n",
	})
	cfg := config.Default()
	cfg.ContentRoot = root

	var out bytes.Buffer
	err := runCheck(context.Background(), cfg, discardLogger(), &out)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryLinks))
	assert.Equal(t, 1, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	want := "Scanning " + root + "...\n" +
		"Found 1 broken links:\n" +
		filepath.Join(root, "index.md") + ": Broken link: ./missing (resolved: " + filepath.Join(root, "missing") + ")\n"
	assert.Equal(t, want, out.String())
}

func TestRunCheck_CleanTree(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Web](https://example.com)\n"})
	cfg := config.Default()
	cfg.ContentRoot = root

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), cfg, discardLogger(), &out))
	assert.Equal(t, "Scanning "+root+"...\nNo broken links found!\n", out.String())
}

func TestRunCheck_WritesMetricsFile(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "![Gone](/gone)\n"})
	metricsPath := filepath.Join(t.TempDir(), "doclinks.prom")
	cfg := config.Default()
	cfg.ContentRoot = root
	cfg.MetricsFile = metricsPath

	err := runCheck(context.Background(), cfg, discardLogger(), io.Discard)
	require.Error(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "doclinks_files_scanned_total 1")
	assert.Contains(t, string(data), `doclinks_broken_references_total{kind="image"} 1`)
}

func TestCLI_CheckIsDefaultCommand(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Self](./index.md)\n"})

	out, err := execute(t, "--content-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No broken links found!")
}

func TestCLI_JSONFormat(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Missing](./missing)\n"})

	out, err := execute(t, "check", "--content-root", root, "--format", "json", "--workers", "4")
	require.Error(t, err)

	var report struct {
		ErrorCount int `json:"error_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.ErrorCount)
}

func TestCLI_ExplicitConfigMustExist(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "check")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
	assert.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestCLI_ConfigFileAndFlagOverride(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Dir](./section)\n", "section/readme.md": ""})
	cfgPath := filepath.Join(t.TempDir(), "doclinks.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("content_root: "+root+"\n"), 0o600))

	out, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Scanning "+root+"...")

	_, err = execute(t, "--config", cfgPath, "--strict-directories")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryLinks))
}

func TestCLI_InvalidExtractor(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": ""})
	_, err := execute(t, "--content-root", root, "--extractor", "regex")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestCLI_MissingContentRoot(t *testing.T) {
	out, err := execute(t, "--content-root", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
	assert.Contains(t, out, "Scanning ")
}

func TestCLI_NegatedStrictDirectoriesOverridesConfig(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Dir](./section)\n", "section/readme.md": ""})
	cfgPath := filepath.Join(t.TempDir(), "doclinks.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("content_root: "+root+"\nstrict_directories: true\n"), 0o600))

	_, err := execute(t, "--config", cfgPath)
	require.Error(t, err)

	out, err := execute(t, "--config", cfgPath, "--no-strict-directories")
	require.NoError(t, err)
	assert.Contains(t, out, "No broken links found!")
}

func TestCLI_SkipHiddenFlag(t *testing.T) {
	root := writeSite(t, map[string]string{".drafts/a.md": "[x](./missing)\n"})

	_, err := execute(t, "--content-root", root)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryLinks))

	out, err := execute(t, "--content-root", root, "--skip-hidden")
	require.NoError(t, err)
	assert.Contains(t, out, "No broken links found!")
}

func TestWatch_RunsInitialCheckUntilCancelled(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": "[Missing](./missing)\n"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out := &reportWriter{cancel: cancel}

	err := executeWith(t, ctx, out, "watch", "--content-root", root, "--debounce", "20ms")
	require.NoError(t, err)
	assert.NotErrorIs(t, ctx.Err(), context.DeadlineExceeded, "watch should stop after the first report")

	want := "Scanning " + root + "...\n" +
		"Found 1 broken links:\n" +
		filepath.Join(root, "index.md") + ": Broken link: ./missing (resolved: " + filepath.Join(root, "missing") + ")\n"
	assert.Equal(t, want, out.String())
}

func TestWatch_InvalidDebounce(t *testing.T) {
	root := writeSite(t, map[string]string{"index.md": ""})

	err := executeWith(t, context.Background(), io.Discard, "watch", "--content-root", root, "--debounce", "soon")
	require.Error(t, err)
	dle, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryValidation, dle.Category)
	assert.Equal(t, "watch.debounce", dle.Context["field"])
}

func TestWatch_MissingContentRoot(t *testing.T) {
	err := executeWith(t, context.Background(), io.Discard, "watch", "--content-root", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestWatchSetupError(t *testing.T) {
	missing := watchSetupError("docs", &os.PathError{Op: "lstat", Path: "docs", Err: os.ErrNotExist})
	assert.True(t, errors.IsCategory(missing, errors.CategoryConfig))

	limit := watchSetupError("docs", fmt.Errorf("failed to watch directory docs/a: %w", stderrors.New("no space left on device")))
	assert.True(t, errors.IsCategory(limit, errors.CategoryFileSystem))
	assert.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(limit))
}
