package controllers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// loadSettings resolves the configuration from --config or the default
// locations and applies the --verbose flag.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// mineOptions builds the options of a pass from the path argument and the
// --name flag.
func mineOptions(cmd *cobra.Command, args []string) commands.MineOptions {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}
	name, _ := cmd.Flags().GetString("name")
	return commands.MineOptions{RepoPath: repoPath, Name: name}
}

// writeOutput writes data to the --output file, or to stdout when unset.
func writeOutput(cmd *cobra.Command, data []byte) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %q: %w", output, err)
	}
	logger.Infof("Wrote %s", output)
	return nil
}

// printSummary prints a short colored overview of the mined repository on
// stderr.
func printSummary(cmd *cobra.Command, repo *entities.RepositoryInfo) {
	out := cmd.ErrOrStderr()
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)

	_, _ = title.Fprintf(out, "%s\n", repo.Name)
	_, _ = label.Fprint(out, "  files:    ")
	_, _ = fmt.Fprintf(out, "%d\n", repo.Statistics.NumFiles)
	_, _ = label.Fprint(out, "  loc:      ")
	_, _ = fmt.Fprintf(out, "%d\n", repo.Statistics.LOC)
	_, _ = label.Fprint(out, "  commits:  ")
	_, _ = fmt.Fprintf(out, "%d\n", repo.Statistics.NumCommits)
	if repo.PredominantLanguage != nil {
		_, _ = label.Fprint(out, "  language: ")
		_, _ = color.New(color.FgGreen).Fprintf(out, "%s (%.2f%%)\n",
			repo.PredominantLanguage.Name, repo.PredominantLanguage.Percentage)
	}
}
