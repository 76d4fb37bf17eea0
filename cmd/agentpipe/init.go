package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold an example pipeline project",
	Long: `Init creates a starter project layout:

  pipeline.yaml       two-agent sequential pipeline
  agents/
    researcher.yaml   gathers material for the task
    writer.yaml       turns the material into prose

The directory argument defaults to the current directory. Existing files
are never overwritten unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing definition files")
}

const researcherYAML = `name: researcher
backend: openai
instructions: |
  You are a meticulous researcher. Gather the key facts, figures and
  arguments relevant to the task. Reply with a structured set of findings,
  not finished prose.
llm:
  model: gpt-4o-mini
  api_key_env: OPENAI_API_KEY
  temperature: 0.1
tools:
  - name: fetch_page
`

const writerYAML = `name: writer
backend: openai
instructions: |
  You are a clear technical writer. Turn the findings you are given into a
  concise, well-structured answer to the original task.
llm:
  model: gpt-4o-mini
  api_key_env: OPENAI_API_KEY
  temperature: 0.3
`

const pipelineYAML = `name: research-and-write
strategy: sequential
agents:
  - researcher
  - writer
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	agentsDir := filepath.Join(dir, "agents")
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", agentsDir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(agentsDir, "researcher.yaml"), researcherYAML},
		{filepath.Join(agentsDir, "writer.yaml"), writerYAML},
		{filepath.Join(dir, "pipeline.yaml"), pipelineYAML},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !initForce {
			printStatus("-", f.path+" exists, skipping (use --force to overwrite)", color.FgYellow)
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		printStatus("✓", "Created "+f.path, color.FgGreen)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		printStatus("⚠", "OPENAI_API_KEY not set (the example agents need it)", color.FgYellow)
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  agentpipe pipeline %s \"your task here\"\n", filepath.Join(dir, "pipeline.yaml"))
	fmt.Printf("  agentpipe list %s\n", dir)
	return nil
}

// printStatus prints a status line with a colored symbol.
func printStatus(symbol, message string, attr color.Attribute) {
	fmt.Printf("%s %s\n", color.New(attr).Sprint(symbol), message)
}
