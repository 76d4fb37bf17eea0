package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentpipe/agentpipe/config"
)

var runTranscript bool

var runCmd = &cobra.Command{
	Use:   "run <agent-file> <message>",
	Short: "Invoke a single agent with one message",
	Long: `Run loads an agent definition from a YAML (or JSON) file and sends it a
single message, outside any pipeline.

Examples:
  agentpipe run agents/researcher.yaml "Summarize RFC 9110"
  agentpipe run agents/coder.yaml "Write a binary search in Go" --transcript`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runTranscript, "transcript", false, "Print the full transcript instead of only the reply")
}

func runRun(cmd *cobra.Command, args []string) error {
	spec, err := config.LoadAgentSpec(args[0])
	if err != nil {
		return fmt.Errorf("loading agent: %w", err)
	}

	result, err := newPipe().RunAgent(cmd.Context(), spec, args[1])
	if err != nil {
		return err
	}
	return printResult(result, runTranscript)
}
