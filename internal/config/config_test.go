package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclinks/internal/errors"
)

func TestLoad_MissingOptionalFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, DefaultContentRoot, cfg.ContentRoot)
	assert.Equal(t, DefaultAssetsRoot, cfg.AssetsRoot)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.SourceExtensions)
	assert.Equal(t, []string{".md", ".mdx", ".png", ".svg", ".jpg", ".webp"}, cfg.ProbeExtensions())
	assert.Equal(t, "index", cfg.IndexName)
	assert.Equal(t, ExtractorPattern, cfg.Extractor)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.StrictDirectories)
	assert.False(t, cfg.SkipHidden)
	assert.Equal(t, DefaultDebounce, cfg.DebounceDuration())
}

func TestLoad_MissingRequiredFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_FileValuesAndNormalization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`content_root: site/content
source_extensions: [md, ".MARKDOWN"]
extractor: goldmark
strict_directories: true
skip_hidden: true
workers: 4
format: json
watch:
  debounce: 2s
`), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "site/content", cfg.ContentRoot)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.SourceExtensions)
	assert.Equal(t, ExtractorGoldmark, cfg.Extractor)
	assert.True(t, cfg.StrictDirectories)
	assert.True(t, cfg.SkipHidden)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "2s", cfg.Watch.Debounce)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCLINKS_CONTENT_ROOT", "from-env")
	t.Setenv("DOCLINKS_WORKERS", "3")
	t.Setenv("DOCLINKS_STRICT_DIRECTORIES", "true")
	t.Setenv("DOCLINKS_EXTRACTOR", "GOLDMARK")
	t.Setenv("DOCLINKS_SKIP_HIDDEN", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ContentRoot)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.StrictDirectories)
	assert.Equal(t, ExtractorGoldmark, cfg.Extractor)
	assert.True(t, cfg.SkipHidden)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown extractor", "extractor: markdown-it\n", "extractor"},
		{"unknown format", "format: xml\n", "format"},
		{"bad debounce", "watch:\n  debounce: soon\n", "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doclinks.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path, true)
			require.Error(t, err)
			dle, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.CategoryValidation, dle.Category)
			assert.Equal(t, tt.field, dle.Context["field"])
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content_root: [unterminated\n"), 0o600))

	_, err := Load(path, true)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_BadWorkersEnv(t *testing.T) {
	t.Setenv("DOCLINKS_WORKERS", "many")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestResolvePaths_PrefersWorkDir(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(work, "docs"), 0o750))

	cfg := Default()
	cfg.ContentRoot = "docs"
	cfg.ResolvePaths(work)

	assert.Equal(t, "docs", cfg.ContentRoot)
}

func TestResolvePaths_FallsBackToWorktreeRoot(t *testing.T) {
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "docs"), 0o750))
	sub := filepath.Join(repoDir, "tools", "nested")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	cfg := Default()
	cfg.ContentRoot = "docs"
	cfg.AssetsRoot = "assets"
	cfg.ResolvePaths(sub)

	assert.Equal(t, filepath.Join(repoDir, "docs"), cfg.ContentRoot)
	// Missing everywhere: left untouched.
	assert.Equal(t, "assets", cfg.AssetsRoot)
}

func TestResolvePaths_AbsoluteUntouched(t *testing.T) {
	cfg := Default()
	cfg.ContentRoot = "/srv/docs/../docs"
	cfg.ResolvePaths(t.TempDir())
	assert.Equal(t, "/srv/docs", cfg.ContentRoot)
}
