// Package algorithms collects a few concrete Graph compositions built
// from the rowmap/reduce/join primitives, each illustrating a different
// combination of the engine's operators end to end.
package algorithms

import (
	"github.com/aidanmoss/rowgraph/join"
	"github.com/aidanmoss/rowgraph/reduce"
	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowgraph"
	"github.com/aidanmoss/rowgraph/rowmap"
)

// WordCount builds a graph counting occurrences of each word in
// textColumn of all rows read from inputName, sorted ascending by
// (count, word).
func WordCount(inputName, textColumn, countColumn string) *rowgraph.Graph {
	return rowgraph.FromNamedSource(inputName).
		Map(rowmap.FilterPunctuation(textColumn)).
		Map(rowmap.LowerCase(textColumn)).
		Map(rowmap.Split(textColumn, "")).
		Sort([]string{textColumn}).
		Reduce(reduce.Count(countColumn), []string{textColumn}).
		Sort([]string{countColumn, textColumn})
}

// InvertedIndex builds a graph computing the TF-IDF score of every
// (word, document) pair from rows read from inputName, keeping the top
// 3 documents per word and the top 3 words per document.
func InvertedIndex(inputName, docColumn, textColumn, resultColumn string) *rowgraph.Graph {
	splitWords := rowgraph.FromNamedSource(inputName).
		Map(rowmap.FilterPunctuation(textColumn)).
		Map(rowmap.LowerCase(textColumn)).
		Map(rowmap.Split(textColumn, ""))

	countDocs := rowgraph.FromNamedSource(inputName).
		Reduce(reduce.Count("doc_count"), nil)

	countIDF := splitWords.
		Sort([]string{docColumn, textColumn}).
		Reduce(reduce.First(), []string{docColumn, textColumn}).
		Sort([]string{textColumn}).
		Reduce(reduce.Count("doc_word_count"), []string{textColumn}).
		Join(join.Inner(), countDocs, nil).
		Map(rowmap.Division("doc_count", "doc_word_count", "inv_doc_word_freq")).
		Map(rowmap.Logarithm("inv_doc_word_freq", "idf"))

	countTF := splitWords.
		Sort([]string{docColumn}).
		Reduce(reduce.TermFrequency(textColumn, "tf"), []string{docColumn}).
		Sort([]string{textColumn})

	return countIDF.
		Sort([]string{textColumn}).
		Join(join.Inner(), countTF, []string{textColumn}).
		Map(rowmap.Product([]string{"tf", "idf"}, resultColumn)).
		Map(rowmap.Project([]string{docColumn, textColumn, resultColumn})).
		Sort([]string{textColumn}).
		Reduce(reduce.TopN(resultColumn, 3), []string{textColumn}).
		Sort([]string{docColumn}).
		Reduce(reduce.TopN(resultColumn, 3), []string{docColumn})
}

// YandexMapsConfig names the columns used by YandexMaps.
type YandexMapsConfig struct {
	TimesInput, LengthsInput                          string
	EnterTimeColumn, LeaveTimeColumn                   string
	EdgeIDColumn                                       string
	StartCoordColumn, EndCoordColumn                   string
	WeekdayResultColumn, HourResultColumn, SpeedResult string
}

// YandexMaps builds a graph estimating average travel speed in km/h,
// bucketed by weekday and hour of day, from two named inputs: edge
// travel-time events and a static edge-length table.
func YandexMaps(cfg YandexMapsConfig) *rowgraph.Graph {
	travelTimes := rowgraph.FromNamedSource(cfg.TimesInput).
		Map(rowmap.TimeDifference(cfg.EnterTimeColumn, cfg.LeaveTimeColumn, "travel_time")).
		Map(rowmap.Weekday(cfg.EnterTimeColumn, cfg.WeekdayResultColumn)).
		Map(rowmap.Hour(cfg.EnterTimeColumn, cfg.HourResultColumn)).
		Map(rowmap.Filter(func(r row.Row) bool {
			return r.Has(cfg.WeekdayResultColumn) && r.Has(cfg.HourResultColumn)
		})).
		Map(rowmap.Filter(func(r row.Row) bool {
			tt, ok := r.Get("travel_time")
			if !ok {
				return false
			}
			f, ok := tt.(float64)
			return ok && f >= 0
		})).
		Map(rowmap.Project([]string{cfg.EdgeIDColumn, cfg.WeekdayResultColumn, cfg.HourResultColumn, "travel_time"})).
		Sort([]string{cfg.EdgeIDColumn})

	edgeLengths := rowgraph.FromNamedSource(cfg.LengthsInput).
		Map(rowmap.Haversine(cfg.StartCoordColumn, cfg.EndCoordColumn, "length")).
		Map(rowmap.Project([]string{cfg.EdgeIDColumn, "length"})).
		Sort([]string{cfg.EdgeIDColumn})

	joined := travelTimes.
		Join(join.Inner(), edgeLengths, []string{cfg.EdgeIDColumn}).
		Sort([]string{cfg.WeekdayResultColumn, cfg.HourResultColumn})

	totals := joined.
		Reduce(reduce.Sum("length"), []string{cfg.WeekdayResultColumn, cfg.HourResultColumn})

	durations := joined.
		Sort([]string{cfg.WeekdayResultColumn, cfg.HourResultColumn}).
		Reduce(reduce.Sum("travel_time"), []string{cfg.WeekdayResultColumn, cfg.HourResultColumn}).
		Map(rowmap.Rename("travel_time", "total_travel_time"))

	return totals.
		Sort([]string{cfg.WeekdayResultColumn, cfg.HourResultColumn}).
		Join(join.Inner(), durations, []string{cfg.WeekdayResultColumn, cfg.HourResultColumn}).
		Map(rowmap.Division("length", "total_travel_time", cfg.SpeedResult)).
		Map(rowmap.Normalize(cfg.SpeedResult, 3600.0)).
		Map(rowmap.ToCalendarWeekday(cfg.WeekdayResultColumn)).
		Map(rowmap.Project([]string{cfg.WeekdayResultColumn, cfg.HourResultColumn, cfg.SpeedResult}))
}
