package calibra

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedFormat = errors.New("unsupported data format")
var ErrMissingColumn = errors.New("missing column")
var ErrDuplicateTimestamp = errors.New("duplicate timestamp")

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

type PricePoint struct {
	Timestamp time.Time
	Close float64
}

// Series is an ordered close-price series with strictly increasing
// timestamps. It is immutable once loaded.
type Series []PricePoint

// LoadSeries reads a CSV file with timestamp and close columns and returns
// the close-price series sorted by timestamp. Only .csv input is supported.
func LoadSeries(path string) (Series, error) {
	extension := filepath.Ext(path)
	if extension != ".csv" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file (%s): %w", path, err)
	}
	defer file.Close()
	series, err := readSeries(csv.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

func readSeries(reader *csv.Reader) (Series, error) {
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	headerMap := map[string]int{}
	for index, header := range headers {
		headerMap[strings.TrimSpace(header)] = index
	}
	columns := []string{"timestamp", "close"}
	indexMap := []int{}
	for _, column := range columns {
		index, ok := headerMap[column]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
		}
		indexMap = append(indexMap, index)
	}
	series := Series{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		timestamp, err := parseTimestamp(record[indexMap[0]])
		if err != nil {
			return nil, err
		}
		closeString := record[indexMap[1]]
		closeDecimal, err := decimal.NewFromString(closeString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse close value %q: %w", closeString, err)
		}
		closePrice, _ := closeDecimal.Float64()
		point := PricePoint{
			Timestamp: timestamp,
			Close: closePrice,
		}
		series = append(series, point)
	}
	slices.SortStableFunc(series, func (a, b PricePoint) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp.Equal(series[i - 1].Timestamp) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTimestamp, getTimeString(series[i].Timestamp))
		}
	}
	return series, nil
}

func parseTimestamp(timestampString string) (time.Time, error) {
	value := strings.TrimSpace(timestampString)
	for _, layout := range timestampLayouts {
		timestamp, err := time.Parse(layout, value)
		if err == nil {
			return timestamp, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp string %q", value)
}

func getTimeString(timestamp time.Time) string {
	return timestamp.Format("2006-01-02 15:04")
}

func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, point := range s {
		closes[i] = point.Close
	}
	return closes
}

// Returns derives the percentage return series. Element i is the fractional
// change from close i-1 to close i; element 0 is zero since no prior close
// exists. The output always has the same length as the series.
func Returns(s Series) []float64 {
	returns := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		previous := s[i - 1].Close
		if previous == 0 {
			continue
		}
		returns[i] = (s[i].Close - previous) / previous
	}
	return returns
}
