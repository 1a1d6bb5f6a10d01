package controllers

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// TokensController handles the "tokens" subcommand.
type TokensController struct {
	command commands.Tokens
}

// NewTokensController creates a new TokensController.
func NewTokensController(command commands.Tokens) *TokensController {
	return &TokensController{command: command}
}

// GetBind returns the Cobra command metadata for the tokens controller.
func (it *TokensController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "tokens [path]",
		Short: "Print the embedding tokens of a local repository",
		Long: `Mine a local Git repository and print the flattened token sequence
that would be sent to the embedding provider, one token per line.`,
	}
}

// Execute prints the tokens of the mined repository.
func (it *TokensController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	tokens, err := it.command.Execute(context.Background(), settings, mineOptions(cmd, args))
	if err != nil {
		return err
	}

	var builder strings.Builder
	for _, token := range tokens {
		builder.WriteString(token)
		builder.WriteByte('\n')
	}
	return writeOutput(cmd, []byte(builder.String()))
}

// AddFlags adds the tokens-specific flags to the given Cobra command.
func (it *TokensController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Repository name (default: go.mod module path or directory name)")
	cmd.Flags().StringP("output", "o", "", "Write the tokens to this file instead of stdout")
}
