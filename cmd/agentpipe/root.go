package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentpipe/agentpipe"
	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "agentpipe",
	Short: "Multi-agent conversational pipelines from YAML",
	Long: `Agentpipe runs LLM agents defined in YAML files, alone or composed
into pipelines with a coordination strategy:

  sequential  each agent's reply becomes the next agent's input
  group_chat  every agent responds to the shared transcript in round-robin order
  supervisor  a designated agent routes the task to one specialist

Agents declare their backend (openai or anthropic), instructions, model
settings and tools. API keys are read from the environment variable each
agent's llm block names.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log orchestration details to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// newPipe builds the façade shared by the run and pipeline commands.
func newPipe() *agentpipe.AgentPipe {
	return agentpipe.New(func(o *agentpipe.Options) {
		if verbose {
			o.Logger = logging.NewTextLogger(os.Stderr, slog.LevelDebug)
		}
	})
}

// printResult renders a finished run: the transcript when asked for, the
// final content, and a colored reason line. Failure reasons map to a
// non-nil error so the process exits non-zero.
func printResult(result *core.RunResult, showTranscript bool) error {
	if showTranscript {
		for _, turn := range result.Transcript() {
			speaker := color.CyanString(turn.Speaker)
			if turn.IsUser() {
				speaker = color.YellowString(turn.Speaker)
			}
			fmt.Printf("%s: %s\n\n", speaker, turn.Content)
		}
	}

	switch result.Reason {
	case core.ReasonCompleted:
		if !showTranscript {
			fmt.Println(result.Content)
		}
		return nil
	case core.ReasonMaxRoundsExceeded:
		if !showTranscript {
			fmt.Println(result.Content)
		}
		fmt.Fprintf(os.Stderr, "%s round budget exhausted before completion\n", color.YellowString("⚠"))
		return nil
	default:
		return fmt.Errorf("run ended with %s: %s", result.Reason, result.Content)
	}
}
