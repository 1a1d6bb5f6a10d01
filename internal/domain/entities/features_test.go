//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/test/domain/entitybuilders"
)

func TestNegativeSentimentForInt(t *testing.T) {
	t.Parallel()

	cases := map[int64]float64{
		0:     0,
		-5:    0,
		1:     0,
		9:     0,
		10:    -1,
		999:   -2,
		1000:  -3,
		54321: -4,
	}
	for input, expected := range cases {
		t.Run("should floor the decimal magnitude", func(t *testing.T) {
			t.Parallel()

			// given
			value := input

			// when
			result := entities.NegativeSentimentForInt(value)

			// then
			assert.InDelta(t, expected, result, 1e-12, "input %d", value)
		})
	}
}

func TestNegativeSentimentForFloat(t *testing.T) {
	t.Parallel()

	t.Run("should return -log10 of positive frequencies", func(t *testing.T) {
		t.Parallel()

		// given
		frequency := 100.0

		// when
		result := entities.NegativeSentimentForFloat(frequency)

		// then
		assert.InDelta(t, -2.0, result, 1e-12)
	})

	t.Run("should return 0 for a zero frequency", func(t *testing.T) {
		t.Parallel()

		// given
		frequency := 0.0

		// when
		result := entities.NegativeSentimentForFloat(frequency)

		// then
		assert.Zero(t, result)
	})

	t.Run("should be positive for frequencies below 1", func(t *testing.T) {
		t.Parallel()

		// given
		frequency := 0.1

		// when
		result := entities.NegativeSentimentForFloat(frequency)

		// then
		assert.InDelta(t, 1.0, result, 1e-12)
	})
}

func TestFlattenTokens(t *testing.T) {
	t.Parallel()

	t.Run("should emit one token per leaf with sorted keys", func(t *testing.T) {
		t.Parallel()

		// given
		value := map[string]any{
			"zeta":  1,
			"alpha": map[string]any{"b": "x", "a": true},
			"list":  []any{"first", 2.5},
		}

		// when
		tokens, err := entities.FlattenTokens("main.go", value)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			`main.go: /alpha/a/true`,
			`main.go: /alpha/b/"x"`,
			`main.go: /list/0/"first"`,
			`main.go: /list/1/2.5`,
			`main.go: /zeta/1`,
		}, tokens)
	})

	t.Run("should produce identical sequences for equal inputs", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewSourceFileBuilder().WithContent("package main\n\nfunc main() {}\n").BuildSourceFile()
		record := entities.NewFileToEmbed(file)

		// when
		first, firstErr := entities.FlattenTokens(record.Name, record.Data)
		second, secondErr := entities.FlattenTokens(record.Name, record.Data)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Equal(t, first, second)
	})

	t.Run("should not escape HTML characters in string leaves", func(t *testing.T) {
		t.Parallel()

		// given
		value := map[string]string{"contents": "a < b && c > d"}

		// when
		tokens, err := entities.FlattenTokens("x.go", value)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{`x.go: /contents/"a < b && c > d"`}, tokens)
	})
}

func TestPrepareTokens(t *testing.T) {
	t.Parallel()

	t.Run("should flatten every file in registry order", func(t *testing.T) {
		t.Parallel()

		// given
		files := []entities.SourceFileInfo{
			entitybuilders.NewSourceFileBuilder().WithRelativePath("a.go").WithLOC(12).BuildSourceFile(),
			entitybuilders.NewSourceFileBuilder().WithRelativePath("b.py").WithLanguage("Python").
				WithContent("print(1)\n").WithCommits(1, 10).BuildSourceFile(),
		}
		repo := entities.NewRepositoryInfo("demo", files, nil)

		// when
		tokens, err := entities.PrepareTokens(repo)

		// then
		require.NoError(t, err)
		require.Len(t, tokens, 12)
		assert.Equal(t, `a.go: /contents/"package main\n"`, tokens[0])
		assert.Contains(t, tokens, `a.go: /language/"Go"`)
		assert.Contains(t, tokens, `a.go: /loc_sentiment/-1`)
		assert.Contains(t, tokens, `a.go: /size_sentiment/-1`)
		assert.Contains(t, tokens, `b.py: /size_sentiment/0`)
		assert.Contains(t, tokens, `b.py: /language/"Python"`)
		assert.Equal(t, "b.py: ", tokens[6][:6])
	})
}
