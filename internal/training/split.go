package training

import "sort"

// DefaultTrainFraction is the share of examples, earliest first, used for
// fitting; the remainder validates forward-looking generalization
const DefaultTrainFraction = 0.7

// TemporalSplit sorts examples by date ascending and cuts the first fraction
// for training, the rest for validation. Never random: every validation date
// is at or after every training date.
func TemporalSplit(examples []Example, trainFraction float64) (train, validation []Example) {
	if trainFraction <= 0 || trainFraction >= 1 {
		trainFraction = DefaultTrainFraction
	}

	sorted := make([]Example, len(examples))
	copy(sorted, examples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	cut := int(float64(len(sorted)) * trainFraction)
	if cut < 1 {
		cut = 1
	}
	if cut >= len(sorted) {
		cut = len(sorted) - 1
	}
	if len(sorted) < 2 {
		return sorted, nil
	}
	return sorted[:cut], sorted[cut:]
}
