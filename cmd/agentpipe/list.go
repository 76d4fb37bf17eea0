package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentpipe/agentpipe/config"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List agent and pipeline definitions in a directory",
	Long: `List scans a directory (default: current directory) for YAML and JSON
definition files and prints a summary of each agent and pipeline found.
Subdirectories are scanned one level deep so the conventional agents/
directory is included.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := collectSpecFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No agent or pipeline definitions found in %s\n", dir)
		return nil
	}

	var agents, pipelines, skipped []string
	for _, path := range files {
		if spec, err := config.LoadAgentSpec(path); err == nil {
			agents = append(agents, fmt.Sprintf("  %s  %s/%s  %s",
				color.CyanString("%-16s", spec.Name), spec.Backend, spec.LLM.Model, spec.Summary()))
			continue
		}
		if spec, err := config.LoadPipelineSpec(path); err == nil {
			pipelines = append(pipelines, fmt.Sprintf("  %s  %-10s  %s",
				color.MagentaString("%-16s", spec.Name), spec.Strategy, strings.Join(spec.Agents, " → ")))
			continue
		}
		skipped = append(skipped, path)
	}

	if len(agents) > 0 {
		fmt.Println(color.New(color.Bold).Sprint("Agents"))
		sort.Strings(agents)
		for _, line := range agents {
			fmt.Println(line)
		}
	}
	if len(pipelines) > 0 {
		if len(agents) > 0 {
			fmt.Println()
		}
		fmt.Println(color.New(color.Bold).Sprint("Pipelines"))
		sort.Strings(pipelines)
		for _, line := range pipelines {
			fmt.Println(line)
		}
	}
	for _, path := range skipped {
		fmt.Fprintf(os.Stderr, "%s skipped %s: not a valid agent or pipeline definition\n", color.YellowString("⚠"), path)
	}
	return nil
}

// collectSpecFiles gathers definition files in dir and its immediate
// subdirectories.
func collectSpecFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			subEntries, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			for _, sub := range subEntries {
				if !sub.IsDir() && isSpecFile(sub.Name()) {
					files = append(files, filepath.Join(path, sub.Name()))
				}
			}
			continue
		}
		if isSpecFile(e.Name()) {
			files = append(files, path)
		}
	}
	return files, nil
}

func isSpecFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
