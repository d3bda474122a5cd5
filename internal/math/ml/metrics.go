package ml

// Accuracy is the fraction of matching predictions.
func Accuracy(actual, predicted []int) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}
	matches := 0
	for i := range actual {
		if actual[i] == predicted[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(actual))
}

// MicroF1 is the micro averaged f1 score, pooling true positives,
// false positives and false negatives over all classes.
func MicroF1(actual, predicted []int) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}
	tp, fp, fn := 0, 0, 0
	for i := range actual {
		if actual[i] == predicted[i] {
			tp++
		} else {
			// one class got a false positive, another a false negative
			fp++
			fn++
		}
	}
	if tp == 0 {
		return 0
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall)
}
