// Command wordcount runs the word-count graph (algorithms.WordCount)
// over a JSON-lines input file and writes JSON-lines results.
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
	inputPath   string
	outputPath  string
	textColumn  string
	countColumn string
)

var rootCmd = &cobra.Command{
	Use:   "wordcount",
	Short: "Count word occurrences in a JSON-lines corpus",
	Long: `wordcount reads rows of { "<text-column>": "..." } from a JSON-lines
file, splits each row's text into words, and writes one
{ "<text-column>": word, "<count-column>": n } row per distinct word,
sorted ascending by (count, word).`,
	Example: `  wordcount --input corpus.jsonl --output counts.jsonl`,
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "input JSON-lines file (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "output JSON-lines file (required)")
	flags.StringVar(&textColumn, "text-column", "text", "column holding the text to split")
	flags.StringVar(&countColumn, "count-column", "count", "column to write the word count into")
	_ = rootCmd.MarkFlagRequired("input")
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

	graph := algorithms.WordCount("input", textColumn, countColumn)

	inputs := rowgraph.NamedInputs{
		"input": rowio.SourceFromFile(inputPath),
	}

	log.WithField("input", inputPath).Info("running wordcount graph")
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
	log.WithField("output", outputPath).Info("wordcount complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
