//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should provide the default settings", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, entities.RegisterProviders(container))

		// when
		var settings *entities.Settings
		err := container.Invoke(func(s *entities.Settings) { settings = s })

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultSettings(), settings)
	})
}
