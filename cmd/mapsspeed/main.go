// Command mapsspeed runs the Yandex-maps-style average-speed graph
// (algorithms.YandexMaps) over two JSON-lines inputs: edge travel-time
// events and a static edge-length table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanmoss/rowgraph/algorithms"
	"github.com/aidanmoss/rowgraph/internal/cliutil"
	"github.com/aidanmoss/rowgraph/rowgraph"
	"github.com/aidanmoss/rowgraph/rowio"
)

var (
	timesPath   string
	lengthsPath string
	outputPath  string
)

var rootCmd = &cobra.Command{
	Use:   "mapsspeed",
	Short: "Estimate average travel speed by weekday and hour",
	Long: `mapsspeed reads edge travel-time events from --times and a static
edge-length table (start/end coordinate pairs) from --lengths, both
JSON-lines, and writes one row per (weekday, hour) bucket giving the
average travel speed in km/h over edges observed in that bucket.`,
	Example: `  mapsspeed --times times.jsonl --lengths lengths.jsonl --output speed.jsonl`,
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&timesPath, "times", "", "input JSON-lines file of travel-time events (required)")
	flags.StringVar(&lengthsPath, "lengths", "", "input JSON-lines file of edge lengths (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "output JSON-lines file (required)")
	_ = rootCmd.MarkFlagRequired("times")
	_ = rootCmd.MarkFlagRequired("lengths")
	_ = rootCmd.MarkFlagRequired("output")
	cliutil.BindRunFlags(rootCmd)
}

func run(cmd *cobra.Command, args []string) error {
	if err := cliutil.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	log := cliutil.NewLogger(cliutil.LogLevel())

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	graph := algorithms.YandexMaps(algorithms.YandexMapsConfig{
		TimesInput:          "times",
		LengthsInput:        "lengths",
		EnterTimeColumn:     "enter_time",
		LeaveTimeColumn:     "leave_time",
		EdgeIDColumn:        "edge_id",
		StartCoordColumn:    "start",
		EndCoordColumn:      "end",
		WeekdayResultColumn: "weekday",
		HourResultColumn:    "hour",
		SpeedResult:         "speed",
	})

	inputs := rowgraph.NamedInputs{
		"times":   rowio.SourceFromFile(timesPath),
		"lengths": rowio.SourceFromFile(lengthsPath),
	}

	log.WithField("times", timesPath).WithField("lengths", lengthsPath).Info("running mapsspeed graph")
	result, err := graph.Run(inputs,
		rowgraph.WithLog(log),
		rowgraph.WithSortBuffer(cliutil.SortBufferRows()),
		rowgraph.WithSpillDir(cliutil.SpillDir()),
	)
	if err != nil {
		return fmt.Errorf("run graph: %w", err)
	}

	if err := rowio.WriteLines(out, result); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	log.WithField("output", outputPath).Info("mapsspeed complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
