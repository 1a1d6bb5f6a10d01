//go:build unit

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal"
	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/infrastructure/controllers"
	"github.com/rios0rios0/repominer/test/domain/commanddoubles"
)

func TestAddSubcommands(t *testing.T) {
	t.Parallel()

	t.Run("should mount every controller with its flags", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()
		app := internal.NewAppInternal(&[]entities.Controller{
			controllers.NewMineController(&commanddoubles.StubMineCommand{}),
			controllers.NewEmbedController(&commanddoubles.StubEmbedCommand{}),
		})

		// when
		addSubcommands(root, app)

		// then
		mine, _, err := root.Find([]string{"mine"})
		require.NoError(t, err)
		assert.Equal(t, "mine", mine.Name())
		assert.NotNil(t, mine.Flags().Lookup("output"))

		embed, _, err := root.Find([]string{"embed"})
		require.NoError(t, err)
		assert.NotNil(t, embed.Flags().Lookup("provider"))
		assert.NotNil(t, root.PersistentFlags().Lookup("metrics-addr"))
	})

	t.Run("should reject more than one path argument", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()
		stub := &commanddoubles.StubMineCommand{}
		addSubcommands(root, internal.NewAppInternal(&[]entities.Controller{controllers.NewMineController(stub)}))
		root.SetArgs([]string{"mine", "a", "b"})
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})

		// when
		err := root.Execute()

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
