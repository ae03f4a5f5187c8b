package backtest

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yourusername/sharpline/internal/models"
)

// ECE computes the expected calibration error of settled wagers: the
// bet-count-weighted mean absolute gap between each bucket's average
// predicted probability and its observed win rate. Always in [0,1]; zero for
// perfectly calibrated predictions or an empty sample.
func ECE(wagers []Wager, edges []float64) float64 {
	if len(wagers) == 0 {
		return 0
	}
	if len(edges) < 2 {
		edges = DefaultBucketEdges()
	}

	type bucket struct {
		count   int
		wins    int
		probSum float64
	}
	buckets := make([]bucket, len(edges)-1)
	for _, w := range wagers {
		i := bucketIndex(edges, w.Probability)
		buckets[i].count++
		buckets[i].probSum += w.Probability
		if w.Won() {
			buckets[i].wins++
		}
	}

	total := float64(len(wagers))
	ece := 0.0
	for _, b := range buckets {
		if b.count == 0 {
			continue
		}
		n := float64(b.count)
		gap := math.Abs(b.probSum/n - float64(b.wins)/n)
		ece += (n / total) * gap
	}
	return ece
}

// BucketStats aggregates wagers per confidence bucket; empty buckets are
// omitted
func BucketStats(wagers []Wager, edges []float64) []models.BucketStat {
	if len(edges) < 2 {
		edges = DefaultBucketEdges()
	}

	stats := make([]models.BucketStat, len(edges)-1)
	staked := make([]decimal.Decimal, len(edges)-1)
	profit := make([]decimal.Decimal, len(edges)-1)
	for i := range stats {
		stats[i] = models.BucketStat{Low: edges[i], High: edges[i+1]}
		staked[i] = decimal.Zero
		profit[i] = decimal.Zero
	}

	for _, w := range wagers {
		i := bucketIndex(edges, w.Probability)
		stats[i].Bets++
		stats[i].AvgProb += w.Probability
		if w.Won() {
			stats[i].Wins++
		}
		staked[i] = staked[i].Add(w.Stake)
		profit[i] = profit[i].Add(w.Profit)
	}

	out := make([]models.BucketStat, 0, len(stats))
	for i, s := range stats {
		if s.Bets == 0 {
			continue
		}
		n := float64(s.Bets)
		s.AvgProb /= n
		s.WinRate = float64(s.Wins) / n
		if !staked[i].IsZero() {
			s.ROI, _ = profit[i].Div(staked[i]).Float64()
		}
		out = append(out, s)
	}
	return out
}

// oddsRange buckets American prices into the bands bettors reason about
type oddsRange struct {
	label string
	min   int
	max   int
}

var oddsRanges = []oddsRange{
	{label: "heavy favorite (-200 and shorter)", min: math.MinInt32, max: -200},
	{label: "favorite (-199 to -110)", min: -199, max: -110},
	{label: "near even (-109 to +109)", min: -109, max: 109},
	{label: "underdog (+110 to +199)", min: 110, max: 199},
	{label: "longshot (+200 and longer)", min: 200, max: math.MaxInt32},
}

// OddsRangeStats aggregates wagers per price band; empty bands are omitted
func OddsRangeStats(wagers []Wager) []models.RangeStat {
	stats := make([]models.RangeStat, len(oddsRanges))
	staked := make([]decimal.Decimal, len(oddsRanges))
	profit := make([]decimal.Decimal, len(oddsRanges))
	for i, r := range oddsRanges {
		stats[i] = models.RangeStat{Label: r.label}
		staked[i] = decimal.Zero
		profit[i] = decimal.Zero
	}

	for _, w := range wagers {
		for i, r := range oddsRanges {
			if w.Price >= r.min && w.Price <= r.max {
				stats[i].Bets++
				if w.Won() {
					stats[i].Wins++
				}
				staked[i] = staked[i].Add(w.Stake)
				profit[i] = profit[i].Add(w.Profit)
				break
			}
		}
	}

	out := make([]models.RangeStat, 0, len(stats))
	for i, s := range stats {
		if s.Bets == 0 {
			continue
		}
		s.WinRate = float64(s.Wins) / float64(s.Bets)
		if !staked[i].IsZero() {
			s.ROI, _ = profit[i].Div(staked[i]).Float64()
		}
		out = append(out, s)
	}
	return out
}

// SeasonStats aggregates wagers per season, ascending
func SeasonStats(wagers []Wager, edges []float64) []models.SeasonStat {
	bySeason := make(map[int][]Wager)
	for _, w := range wagers {
		bySeason[w.Season] = append(bySeason[w.Season], w)
	}

	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	out := make([]models.SeasonStat, 0, len(seasons))
	for _, season := range seasons {
		group := bySeason[season]
		stat := models.SeasonStat{Season: season, Bets: len(group)}
		staked, profit := decimal.Zero, decimal.Zero
		for _, w := range group {
			if w.Won() {
				stat.Wins++
			}
			staked = staked.Add(w.Stake)
			profit = profit.Add(w.Profit)
		}
		if !staked.IsZero() {
			stat.ROI, _ = profit.Div(staked).Float64()
		}
		stat.ECE = ECE(group, edges)
		out = append(out, stat)
	}
	return out
}

// bucketIndex returns the bucket a probability falls into; the final bucket
// is closed on the right so 1.0 lands in it
func bucketIndex(edges []float64, prob float64) int {
	idx := sort.SearchFloat64s(edges, prob)
	if idx > 0 && (idx >= len(edges) || edges[idx] != prob) {
		idx--
	}
	if idx >= len(edges)-1 {
		idx = len(edges) - 2
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
