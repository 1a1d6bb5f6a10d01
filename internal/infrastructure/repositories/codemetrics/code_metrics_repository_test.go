//go:build unit

package codemetrics_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/codemetrics"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

func byBaseName(report *entities.CodeMetricsReport) map[string]entities.FileReport {
	result := make(map[string]entities.FileReport, len(report.Files))
	for _, file := range report.Files {
		result[filepath.Base(file.Path)] = file
	}
	return result
}

func TestCodeMetricsRepository_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("should count Go comments found by the parser", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"main.go": "package main\n\n// entry point\n/*\n multi\n*/\nfunc main() {} // trailing\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		file := report.Files[0]
		assert.Equal(t, "Go", file.Language)
		assert.Equal(t, int64(2), file.Code)
		assert.Equal(t, int64(4), file.Comments)
		assert.Equal(t, int64(1), file.Blanks)
		assert.Equal(t, file.LanguageTotals, report.Languages["Go"])
	})

	t.Run("should count Python hash comments", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"tool.py": "# helper\nx = 1\n\ny = x + 1\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		totals := report.Languages["Python"]
		assert.Equal(t, int64(2), totals.Code)
		assert.Equal(t, int64(1), totals.Comments)
		assert.Equal(t, int64(1), totals.Blanks)
	})

	t.Run("should fall back to comment markers for languages without a grammar", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"lib.c": "/* a\n   b */\nint x;\n// y\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		totals := report.Languages["C"]
		assert.Equal(t, int64(1), totals.Code)
		assert.Equal(t, int64(3), totals.Comments)
	})

	t.Run("should not count HCL heredoc lines as comments", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"main.tf": "# header\nlocals {\n  script = <<EOT\n# inside heredoc\nEOT\n}\n/* block\n   end */\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		totals := report.Languages["HCL"]
		assert.Equal(t, int64(5), totals.Code)
		assert.Equal(t, int64(3), totals.Comments)
	})

	t.Run("should sum totals per language across files", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"a.go":     "package a\n",
			"pkg/b.go": "package pkg\n\nvar B = 1\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		assert.Len(t, report.Files, 2)
		assert.Equal(t, int64(3), report.Languages["Go"].Code)
		assert.Equal(t, int64(1), report.Languages["Go"].Blanks)
	})

	t.Run("should parse many grammar-backed files across workers", func(t *testing.T) {
		t.Parallel()

		// given
		files := make(map[string]string, 64)
		for i := range 64 {
			files[fmt.Sprintf("pkg%02d/file.go", i)] = "package pkg\n\n// doc\nvar X = 1\n"
		}
		root := writeTree(t, files)
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		first, err := repository.Analyze(context.Background(), []string{root}, nil)
		require.NoError(t, err)
		second, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		assert.Len(t, second.Files, 64)
		assert.Equal(t, int64(128), second.Languages["Go"].Code)
		assert.Equal(t, int64(64), second.Languages["Go"].Comments)
		assert.Equal(t, first.Languages, second.Languages)
	})

	t.Run("should skip excluded, unknown and .git paths", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"main.go":           "package main\n",
			"vendor/lib/x.go":   "package lib\n",
			"api.gen.go":        "package main\n",
			"README.txt":        "hello\n",
			".git/hooks/pre.go": "package hooks\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, []string{"vendor/**", "*.gen.go"})

		// then
		require.NoError(t, err)
		files := byBaseName(report)
		assert.Len(t, files, 1)
		assert.Contains(t, files, "main.go")
	})

	t.Run("should recognise files by name", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{
			"Makefile": "# build\nall:\n\tgo build ./...\n",
		})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		report, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(2), report.Languages["Makefile"].Code)
		assert.Equal(t, int64(1), report.Languages["Makefile"].Comments)
	})

	t.Run("should reject malformed exclude patterns", func(t *testing.T) {
		t.Parallel()

		// given
		root := writeTree(t, map[string]string{"main.go": "package main\n"})
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		_, err := repository.Analyze(context.Background(), []string{root}, []string{"src/[a"})

		// then
		require.Error(t, err)
	})

	t.Run("should fail on a missing root", func(t *testing.T) {
		t.Parallel()

		// given
		root := filepath.Join(t.TempDir(), "missing")
		repository := codemetrics.NewCodeMetricsRepository()

		// when
		_, err := repository.Analyze(context.Background(), []string{root}, nil)

		// then
		require.Error(t, err)
	})
}
