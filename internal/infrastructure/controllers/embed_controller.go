package controllers

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// EmbedController handles the "embed" subcommand.
type EmbedController struct {
	command commands.Embed
}

// NewEmbedController creates a new EmbedController.
func NewEmbedController(command commands.Embed) *EmbedController {
	return &EmbedController{command: command}
}

// GetBind returns the Cobra command metadata for the embed controller.
func (it *EmbedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "embed [path]",
		Short: "Mine, embed and store a local repository",
		Long: `Mine a local Git repository, send its tokens to the configured embedding
provider (mock, openai, gemini, ollama) and save the snapshot to the
configured vector store (none, bbolt, sqlite).`,
	}
}

// Execute runs the full pipeline.
func (it *EmbedController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		settings.Embedding.Provider = provider
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		settings.Store.Type = store
	}
	if storePath, _ := cmd.Flags().GetString("store-path"); storePath != "" {
		settings.Store.Path = storePath
	}

	snapshot, err := it.command.Execute(context.Background(), settings, mineOptions(cmd, args))
	if err != nil {
		return err
	}

	printSummary(cmd, snapshot.Repository)
	_, _ = color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "  vectors:  %d (%s -> %s)\n",
		len(snapshot.Vectors), settings.Embedding.Provider, settings.Store.Type)
	return nil
}

// AddFlags adds the embed-specific flags to the given Cobra command.
func (it *EmbedController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Repository name (default: go.mod module path or directory name)")
	cmd.Flags().String("provider", "",
		fmt.Sprintf("Embedding provider override (%s)", "mock, openai, gemini, ollama"),
	)
	cmd.Flags().String("store", "", "Vector store override (none, bbolt, sqlite)")
	cmd.Flags().String("store-path", "", "Vector store file override")
}
