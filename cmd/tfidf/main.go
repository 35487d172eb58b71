// Command tfidf runs the inverted-index (TF-IDF) graph
// (algorithms.InvertedIndex) over a JSON-lines corpus of per-document
// text rows.
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
	inputPath    string
	outputPath   string
	docColumn    string
	textColumn   string
	resultColumn string
)

var rootCmd = &cobra.Command{
	Use:   "tfidf",
	Short: "Compute per-word TF-IDF scores over a JSON-lines document corpus",
	Long: `tfidf reads rows of { "<doc-column>": doc_id, "<text-column>": "..." }
from a JSON-lines file and writes the top 3 documents for every word and
the top 3 words for every document, ranked by TF-IDF score.`,
	Example: `  tfidf --input docs.jsonl --output scores.jsonl`,
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "input JSON-lines file (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "output JSON-lines file (required)")
	flags.StringVar(&docColumn, "doc-column", "doc_id", "column holding the document identifier")
	flags.StringVar(&textColumn, "text-column", "text", "column holding the document text")
	flags.StringVar(&resultColumn, "result-column", "tf_idf", "column to write the TF-IDF score into")
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

	graph := algorithms.InvertedIndex("input", docColumn, textColumn, resultColumn)

	inputs := rowgraph.NamedInputs{
		"input": rowio.SourceFromFile(inputPath),
	}

	log.WithField("input", inputPath).Info("running tfidf graph")
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
	log.WithField("output", outputPath).Info("tfidf complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
