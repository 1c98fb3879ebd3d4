// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pediaflow/twinsim/core"
	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/scenario"
	"github.com/pediaflow/twinsim/core/trace"
)

var (
	scenarioPath string
	outputCSV    string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "twinsim",
	Short: "Pediatric fluid resuscitation digital twin",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario bundle and print the outcome",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		bundle, err := scenario.LoadBundle(scenarioPath)
		if err != nil {
			logrus.Fatalf("loading scenario: %v", err)
		}
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}

		in := bundle.ToPatientInput()
		p, warnings, err := core.BuildParams(in)
		if err != nil {
			logrus.Fatalf("calibrating patient: %v", err)
		}
		if warnings.HctAutocorrected != nil {
			logrus.Warnf("hematocrit/hemoglobin mismatch: reported=%.1f derived=%.1f",
				warnings.HctAutocorrected.Reported, warnings.HctAutocorrected.Derived)
		}

		state, err := core.InitState(in, p, &warnings)
		if err != nil {
			logrus.Fatalf("initializing state: %v", err)
		}
		if warnings.LactateEstimated {
			logrus.Debugf("lactate inferred from capillary refill time, not measured")
		}

		logrus.Infof("starting run: fluid=%s volume=%.0fml duration=%dmin",
			bundle.Run.FluidTag, bundle.Run.VolumeMl, bundle.Run.DurationMin)

		result := core.Run(state, p, fluid.Tag(bundle.Run.FluidTag), bundle.Run.VolumeMl, bundle.Run.DurationMin, outputCSV != "")

		alerts := core.Evaluate(result.FinalState, p, &in)
		for _, name := range alerts.Active() {
			logrus.Warnf("safety alert: %s", name)
		}

		fmt.Printf("completed=%v stop_reason=%s final_map=%.1f final_urine=%.2f\n",
			result.Completed, result.StopReason, result.FinalState.MapMmHg, result.FinalState.QUrineMlMin)
		for _, a := range result.Advisories {
			fmt.Printf("advisory: %s\n", a)
		}

		if outputCSV != "" {
			if err := trace.WriteCSV(result.Trajectory, outputCSV); err != nil {
				logrus.Fatalf("writing trajectory: %v", err)
			}
			summary := trace.Summarize(result.Trajectory)
			fmt.Printf("trajectory written to %s (%d points, mean MAP %.1f +/- %.1f)\n",
				outputCSV, summary.PointCount, summary.MeanMapMmHg, summary.StdDevMapMmHg)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML bundle (required)")
	runCmd.Flags().StringVar(&outputCSV, "out", "", "Write the recorded trajectory to this CSV path")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.MarkFlagRequired("scenario")

	rootCmd.AddCommand(runCmd)
}
