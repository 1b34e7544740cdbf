package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/script"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/trace"
)

var (
	scenarioPath    string // YAML scenario file
	technique       string // paging or segmentation
	memorySize      int    // Total memory in bytes
	pageSize        int    // Frame size in bytes
	algorithm       string // FIFO or LRU
	inlineOps       string // Comma-separated steps, e.g. "allocate:100,access:0"
	continueOnError bool   // Keep replaying after a failed step
	resultsPath     string // Optional JSON output file
)

// RunReport is what `run` writes to --results-output.
type RunReport struct {
	Config  sim.Config          `json:"config"`
	Steps   []script.StepResult `json:"steps"`
	Results sim.Results         `json:"results"`
	Summary *trace.LogSummary   `json:"summary"`
	State   sim.State           `json:"final_state"`
}

// runCmd replays a scenario headlessly and prints the analytics.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a sequence of memory operations and report the results",
	Long: "Replay a YAML scenario (--scenario) or an inline step list (--ops) against a fresh engine.\n" +
		"Inline steps are op[:operand] separated by commas, e.g. allocate:128,access:0,deallocate:0.",
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := buildScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		engine, steps, err := script.Replay(scenario)
		if engine == nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		if err != nil {
			logrus.Errorf("Replay stopped: %v", err)
		}
		for _, st := range steps {
			logrus.Infof("step %d: %s @%d %s %s", st.Index, st.Op, st.Address, st.Outcome, st.Error)
		}

		results := engine.Results()
		if perr := results.Print(os.Stdout); perr != nil {
			logrus.Fatalf("Failed to print results: %v", perr)
		}

		if resultsPath != "" {
			report := RunReport{
				Config:  engine.Config(),
				Steps:   steps,
				Results: results,
				Summary: trace.Summarize(engine.Log()),
				State:   engine.State(),
			}
			if werr := writeReport(resultsPath, report); werr != nil {
				logrus.Fatalf("%v", werr)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}
		if err != nil {
			os.Exit(1)
		}
	},
}

// buildScenario loads --scenario if given, otherwise assembles one from flags.
// Explicitly set configuration flags override the scenario file.
func buildScenario(cmd *cobra.Command) (*script.Scenario, error) {
	scenario := &script.Scenario{Config: sim.DefaultConfig()}
	if scenarioPath != "" {
		loaded, err := script.LoadScenario(scenarioPath)
		if err != nil {
			return nil, err
		}
		scenario = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("technique") || scenarioPath == "" {
		scenario.Config.Technique = sim.Technique(technique)
	}
	if flags.Changed("memory-size") || scenarioPath == "" {
		scenario.Config.MemorySize = memorySize
	}
	if flags.Changed("page-size") || scenarioPath == "" {
		scenario.Config.PageSize = pageSize
	}
	if flags.Changed("algorithm") || scenarioPath == "" {
		scenario.Config.Algorithm = sim.Algorithm(algorithm)
	}
	scenario.Config = scenario.Config.Normalize()
	if !sim.IsValidTechnique(string(scenario.Config.Technique)) {
		return nil, fmt.Errorf("unknown technique %q; valid: paging, segmentation", scenario.Config.Technique)
	}
	if !sim.IsValidAlgorithm(string(scenario.Config.Algorithm)) {
		return nil, fmt.Errorf("unknown algorithm %q; valid: FIFO, LRU", scenario.Config.Algorithm)
	}
	if flags.Changed("continue-on-error") {
		scenario.ContinueOnError = continueOnError
	}

	if inlineOps != "" {
		steps, err := ParseSteps(inlineOps)
		if err != nil {
			return nil, err
		}
		scenario.Steps = append(scenario.Steps, steps...)
	}
	return scenario, nil
}

// ParseSteps parses "op[:operand],..." into steps. The operand is the size
// for allocate and the address otherwise; omitted operands take defaults.
func ParseSteps(s string) ([]script.Step, error) {
	var steps []script.Step
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		op, operand, hasOperand := strings.Cut(part, ":")
		st := script.Step{Op: strings.ToLower(strings.TrimSpace(op))}
		if hasOperand {
			v, err := strconv.Atoi(strings.TrimSpace(operand))
			if err != nil {
				return nil, fmt.Errorf("step %d (%q): invalid operand: %w", i, part, err)
			}
			if st.Op == "allocate" {
				st.Size = &v
			} else {
				st.Address = &v
			}
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("step %d (%q): %w", i, part, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func writeReport(path string, report RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	return nil
}

func init() {
	defaults := sim.DefaultConfig()
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario (config + steps)")
	runCmd.Flags().StringVar(&technique, "technique", string(defaults.Technique), "Memory management technique (paging, segmentation)")
	runCmd.Flags().IntVar(&memorySize, "memory-size", defaults.MemorySize, "Total memory size in bytes (1-4096)")
	runCmd.Flags().IntVar(&pageSize, "page-size", defaults.PageSize, "Page/frame size in bytes (1-512)")
	runCmd.Flags().StringVar(&algorithm, "algorithm", string(defaults.Algorithm), "Page replacement algorithm (FIFO, LRU)")
	runCmd.Flags().StringVar(&inlineOps, "ops", "", "Comma-separated steps appended to the scenario, e.g. allocate:128,access:0")
	runCmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep replaying after a failed step")
	runCmd.Flags().StringVar(&resultsPath, "results-output", "", "Write config, steps, results and final state as JSON to this file")

	rootCmd.AddCommand(runCmd)
}
