package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentpipe/agentpipe/config"
)

var (
	pipelineAgentsDir  string
	pipelineTranscript bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <pipeline-file> <task>",
	Short: "Run a multi-agent pipeline on a task",
	Long: `Pipeline loads a pipeline definition, assembles its agents from the
agents directory and executes the task with the configured strategy.

Each agent the pipeline lists must exist as <name>.yaml (or .yml/.json) in
the agents directory, which defaults to an "agents" directory next to the
pipeline file.

Examples:
  agentpipe pipeline pipeline.yaml "Draft the release notes"
  agentpipe pipeline review.yaml "Audit this design" --agents-dir ./team --transcript`,
	Args: cobra.ExactArgs(2),
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineAgentsDir, "agents-dir", "", "Directory holding the agent definition files")
	pipelineCmd.Flags().BoolVar(&pipelineTranscript, "transcript", false, "Print the full transcript instead of only the final reply")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	pipe, err := config.LoadPipelineSpec(args[0])
	if err != nil {
		return fmt.Errorf("loading pipeline: %w", err)
	}

	agentsDir := pipelineAgentsDir
	if agentsDir == "" {
		agentsDir = filepath.Join(filepath.Dir(args[0]), "agents")
	}
	roster, err := config.LoadRoster(agentsDir, pipe.Agents)
	if err != nil {
		return fmt.Errorf("assembling roster: %w", err)
	}

	result, err := newPipe().Run(cmd.Context(), pipe, roster, args[1])
	if err != nil {
		return err
	}
	return printResult(result, pipelineTranscript)
}
