// forgectl compiles raw workflow submissions from the command line: the
// file-in, text-out analogue of the form flow.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agent-forge/backend/internal/compiler"
	"agent-forge/backend/internal/projector"
	"agent-forge/backend/internal/services"
	"agent-forge/backend/pkg/models"
)

var outputFormat string

var rootCmd = &cobra.Command{
	Use:   "forgectl",
	Short: "forgectl — compile workflow submissions to SQL and generator payloads",
}

var compileCmd = &cobra.Command{
	Use:   "compile <submission-file>",
	Short: "Compile a raw submission file into SQL or the generator payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

var generateCmd = &cobra.Command{
	Use:   "generate <submission-file>",
	Short: "Compile a submission and generate its state with the local generator",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available workflow templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range services.Templates() {
			fmt.Printf("%-16s %s (%s)\n", t.Name, t.DisplayName, t.Category)
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&outputFormat, "output", "o", "sql", "output format: sql or payload")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
}

func loadSubmission(path string) (models.RawSubmission, error) {
	var sub models.RawSubmission
	data, err := os.ReadFile(path)
	if err != nil {
		return sub, err
	}
	if err := json.Unmarshal(data, &sub); err != nil {
		return sub, fmt.Errorf("failed to parse submission file: %w", err)
	}
	return sub, nil
}

func reportWarnings(warnings []models.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s.%s: %s\n", w.OwnerID, w.Field, w.Reason)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	sub, err := loadSubmission(args[0])
	if err != nil {
		return err
	}

	compiled, err := compiler.Assemble(sub)
	if err != nil {
		return err
	}
	reportWarnings(compiled.Warnings)

	switch outputFormat {
	case "sql":
		fmt.Print(projector.SQL(compiled.Workflow, compiled.Blocks))
	case "payload":
		data, err := json.MarshalIndent(projector.Request(compiled.Workflow, compiled.Blocks), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sub, err := loadSubmission(args[0])
	if err != nil {
		return err
	}

	svc := services.NewWorkflowService(services.NewLocalGenerator())
	result, err := svc.GenerateState(context.Background(), sub)
	if err != nil {
		return err
	}
	reportWarnings(result.Warnings)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
