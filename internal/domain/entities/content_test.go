//go:build unit

package entities_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("should return the lowercase hex SHA-256 digest", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("abc")

		// when
		hash := entities.ContentHash(content)

		// then
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hash)
	})

	t.Run("should hash equal content equally and different content differently", func(t *testing.T) {
		t.Parallel()

		// given
		first, second, other := []byte("package main\n"), []byte("package main\n"), []byte("package lib\n")

		// when
		a, b, c := entities.ContentHash(first), entities.ContentHash(second), entities.ContentHash(other)

		// then
		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("should hash empty content", func(t *testing.T) {
		t.Parallel()

		// given
		var content []byte

		// when
		hash := entities.ContentHash(content)

		// then
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hash)
	})
}

func TestCheckedSize(t *testing.T) {
	t.Parallel()

	t.Run("should convert lengths that fit in int64", func(t *testing.T) {
		t.Parallel()

		// given
		length := uint64(math.MaxInt64)

		// when
		size, err := entities.CheckedSize(length)

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), size)
	})

	t.Run("should reject lengths that overflow int64", func(t *testing.T) {
		t.Parallel()

		// given
		length := uint64(math.MaxUint64)

		// when
		_, err := entities.CheckedSize(length)

		// then
		require.Error(t, err)
	})
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	t.Run("should return 0 when the total is 0", func(t *testing.T) {
		t.Parallel()

		// given
		part, total := 3.0, 0.0

		// when
		result := entities.Percentage(part, total)

		// then
		assert.Zero(t, result)
	})
}
