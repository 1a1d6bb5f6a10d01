package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// MineController handles the "mine" subcommand.
type MineController struct {
	command commands.Mine
}

// NewMineController creates a new MineController.
func NewMineController(command commands.Mine) *MineController {
	return &MineController{command: command}
}

// GetBind returns the Cobra command metadata for the mine controller.
func (it *MineController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "mine [path]",
		Short: "Mine a local repository into a JSON document",
		Long: `Walk the commit history and the source files of a local Git repository
and print the aggregated model: per-file statistics, the language
distribution, the predominant language and contributor activity.`,
	}
}

// Execute runs one mining pass and writes the document.
func (it *MineController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	repo, err := it.command.Execute(context.Background(), settings, mineOptions(cmd, args))
	if err != nil {
		return err
	}

	document, err := repo.MarshalDocument()
	if err != nil {
		return err
	}
	if err = writeOutput(cmd, append(document, '\n')); err != nil {
		return err
	}

	printSummary(cmd, repo)
	return nil
}

// AddFlags adds the mine-specific flags to the given Cobra command.
func (it *MineController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Repository name (default: go.mod module path or directory name)")
	cmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")
}
