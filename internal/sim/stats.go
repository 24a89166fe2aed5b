// Package sim runs batches of generations across a deterministic seed range
// and aggregates per-run metrics into distributional statistics.
package sim

import (
	"math"
	"sort"
)

// histogramBuckets is the fixed bucket count for metric histograms.
const histogramBuckets = 10

// DistributionStats summarizes one scalar metric across a batch of runs.
type DistributionStats struct {
	Min         float64           `json:"min"`
	Max         float64           `json:"max"`
	Mean        float64           `json:"mean"`
	Median      float64           `json:"median"`
	StdDev      float64           `json:"stdDev"`
	Percentiles Percentiles       `json:"percentiles"`
	Histogram   []HistogramBucket `json:"histogram"`
}

// Percentiles holds the four reported percentile cuts.
type Percentiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// HistogramBucket is one histogram bar: the bucket's lower bound and the
// number of samples falling into it.
type HistogramBucket struct {
	Bucket float64 `json:"bucket"`
	Count  int     `json:"count"`
}

// Calculate computes distribution statistics for a sample set. An empty
// sample yields all-zero statistics with an empty histogram; it is not an
// error. Samples are copied and sorted once.
func Calculate(samples []float64) DistributionStats {
	if len(samples) == 0 {
		return DistributionStats{Histogram: []HistogramBucket{}}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	n := len(sorted)
	min, max := sorted[0], sorted[n-1]

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(n)

	// Upper-middle element for even sample counts, not an averaged median
	median := sorted[n/2]

	// Population standard deviation (divide by N)
	var variance float64
	for _, v := range samples {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n)
	stdDev := math.Sqrt(variance)

	percentile := func(p float64) float64 {
		idx := int(p / 100 * float64(n-1))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		return sorted[idx]
	}

	bucketSize := (max - min) / histogramBuckets
	histogram := make([]HistogramBucket, histogramBuckets)
	for i := range histogram {
		histogram[i].Bucket = min + float64(i)*bucketSize
	}
	for _, v := range samples {
		idx := 0
		if bucketSize > 0 {
			idx = int(math.Floor((v - min) / bucketSize))
			if idx > histogramBuckets-1 {
				// The maximum lands on the right edge; the last bucket absorbs it
				idx = histogramBuckets - 1
			}
		}
		histogram[idx].Count++
	}

	return DistributionStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Percentiles: Percentiles{
			P5:  percentile(5),
			P25: percentile(25),
			P75: percentile(75),
			P95: percentile(95),
		},
		Histogram: histogram,
	}
}
