package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finsim/household-simulator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// minFactor is the floor applied to synthetic growth factors so a sampled
// return below -100% cannot flip a balance negative.
var minFactor = decimal.NewFromFloat(0.01)

// DailyPoint is one row of the historical series.
type DailyPoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// DailySeries is an immutable daily price-level series, loaded once at
// startup and shared read-only across trials.
type DailySeries struct {
	Name   string
	Points []DailyPoint
}

// SeriesStats summarizes a loaded series for startup diagnostics.
type SeriesStats struct {
	Count    int
	First    time.Time
	Last     time.Time
	MinClose decimal.Decimal
	MaxClose decimal.Decimal
}

// LoadDailySeries reads a Date,Close CSV into memory. Rows with malformed
// dates or non-positive closes are skipped; an empty result is an error.
func LoadDailySeries(path string) (*DailySeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("unexpected CSV header in %s: %v", path, header)
	}

	var points []DailyPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			continue // Skip malformed rows
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil || !price.IsPositive() {
			continue
		}

		points = append(points, DailyPoint{Date: date, Close: price})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found in %s", path)
	}

	return &DailySeries{
		Name:   filepath.Base(path),
		Points: points,
	}, nil
}

// Len returns the number of daily points.
func (s *DailySeries) Len() int {
	return len(s.Points)
}

// Epoch returns the date of the first point.
func (s *DailySeries) Epoch() time.Time {
	return s.Points[0].Date
}

// Stats computes summary statistics over the series.
func (s *DailySeries) Stats() SeriesStats {
	stats := SeriesStats{
		Count:    len(s.Points),
		First:    s.Points[0].Date,
		Last:     s.Points[len(s.Points)-1].Date,
		MinClose: s.Points[0].Close,
		MaxClose: s.Points[0].Close,
	}
	for _, p := range s.Points[1:] {
		if p.Close.LessThan(stats.MinClose) {
			stats.MinClose = p.Close
		}
		if p.Close.GreaterThan(stats.MaxClose) {
			stats.MaxClose = p.Close
		}
	}
	return stats
}

// UsableOffsets returns how many day offsets can seat a full horizon, so
// the valid offsets are 0 through UsableOffsets-1. An offset o is valid
// when o plus the horizon's day span still lands inside the series.
func (s *DailySeries) UsableOffsets(years int) int {
	span := dateutil.YearsToDays(float64(years))
	n := len(s.Points) - span
	if n < 0 {
		return 0
	}
	return n
}

// CanSeat reports whether a trial at the given offset can read the whole
// horizon without running off the series.
func (s *DailySeries) CanSeat(offset, years int) bool {
	return offset >= 0 && offset < s.UsableOffsets(years)
}

// ReturnSource yields the annual growth factor for each simulated year.
// A source is owned by a single trial and must be asked for factors in
// year order; the draw sequence is part of the determinism contract.
type ReturnSource interface {
	// Factor returns the growth multiplier (1 + return) for a year.
	Factor(year int) decimal.Decimal
}

// BootstrapSource replays a window of the historical series from a fixed
// day offset. The factor for year y is the ratio of the price level one
// year-step apart, which compounds that year's daily moves exactly.
type BootstrapSource struct {
	series *DailySeries
	offset int
}

// NewBootstrapSource creates a source anchored at a day offset the caller
// has already checked with CanSeat.
func NewBootstrapSource(series *DailySeries, offset int) *BootstrapSource {
	return &BootstrapSource{series: series, offset: offset}
}

func (b *BootstrapSource) Factor(year int) decimal.Decimal {
	from := b.offset + dateutil.YearsToDays(float64(year))
	to := b.offset + dateutil.YearsToDays(float64(year+1))
	return b.series.Points[to].Close.Div(b.series.Points[from].Close)
}

// SyntheticSource draws annual returns from a normal distribution using a
// private generator, so trials never contend on shared RNG state.
type SyntheticSource struct {
	mean   decimal.Decimal
	stdDev decimal.Decimal
	rng    *rand.Rand
}

func NewSyntheticSource(mean, stdDev decimal.Decimal, seed int64) *SyntheticSource {
	return &SyntheticSource{
		mean:   mean,
		stdDev: stdDev,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *SyntheticSource) Factor(year int) decimal.Decimal {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	z := boxMullerTransform(u1, u2)

	annualReturn := s.mean.Add(decimal.NewFromFloat(z).Mul(s.stdDev))
	factor := decimal.NewFromInt(1).Add(annualReturn)
	if factor.LessThan(minFactor) {
		return minFactor
	}
	return factor
}

// boxMullerTransform converts two uniform random variables to a standard
// normal one.
func boxMullerTransform(u1, u2 float64) float64 {
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z0
}

// FixedSource applies one constant factor every year. Its main use is
// deterministic runs for tests and debugging.
type FixedSource struct {
	factor decimal.Decimal
}

func NewFixedSource(rate decimal.Decimal) *FixedSource {
	return &FixedSource{factor: decimal.NewFromInt(1).Add(rate)}
}

func (f *FixedSource) Factor(year int) decimal.Decimal {
	return f.factor
}
