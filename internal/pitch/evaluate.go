package pitch

import (
	"fmt"
	"strings"

	"github.com/drakos74/pitch-guess/internal/math/ml"
)

// Evaluation is the confusion matrix and accuracy of one fitted model
// against one test split. It is not modified once computed.
type Evaluation struct {
	// Labels are the fixed confusion matrix axes, in the recognized pitch order.
	Labels []string
	// Matrix counts actual (row) against predicted (column).
	Matrix [][]int
	// Accuracy is the fraction of matching predictions.
	Accuracy float64
}

// Evaluate predicts the test split and scores it.
// A prediction outside the recognized labels is an error, there are no retries.
func Evaluate(model ml.Classifier, ds *Dataset) (*Evaluation, error) {
	predictions, err := model.Predict(ds.TestX)
	if err != nil {
		return nil, fmt.Errorf("could not predict test split: %w", err)
	}
	if len(predictions) != len(ds.TestY) {
		return nil, fmt.Errorf("prediction count mismatch: %d vs %d", len(predictions), len(ds.TestY))
	}

	axes := make(map[string]int, len(Pitches))
	for i, label := range Pitches {
		axes[label] = i
	}

	matrix := make([][]int, len(Pitches))
	for i := range matrix {
		matrix[i] = make([]int, len(Pitches))
	}
	for i := range predictions {
		actual, err := axis(axes, ds.Labels, ds.TestY[i])
		if err != nil {
			return nil, err
		}
		predicted, err := axis(axes, ds.Labels, predictions[i])
		if err != nil {
			return nil, err
		}
		matrix[actual][predicted]++
	}

	return &Evaluation{
		Labels:   Pitches,
		Matrix:   matrix,
		Accuracy: ml.Accuracy(ds.TestY, predictions),
	}, nil
}

// axis maps a class code through the dataset encoding onto the fixed label axes.
func axis(axes map[string]int, labels []string, code int) (int, error) {
	if code < 0 || code >= len(labels) {
		return 0, fmt.Errorf("class code %d is outside the label encoding", code)
	}
	i, ok := axes[labels[code]]
	if !ok {
		return 0, fmt.Errorf("label '%s' is not a recognized pitch", labels[code])
	}
	return i, nil
}

// Report renders the confusion matrix together with per label precision,
// recall and f1, in the spirit of the usual classification report.
func (e *Evaluation) Report() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-18s", ""))
	for _, label := range e.Labels {
		sb.WriteString(fmt.Sprintf("%-18s", label))
	}
	sb.WriteString("\n")
	for i, label := range e.Labels {
		sb.WriteString(fmt.Sprintf("%-18s", label))
		for j := range e.Labels {
			sb.WriteString(fmt.Sprintf("%-18d", e.Matrix[i][j]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%-18s%-12s%-12s%-12s%-12s\n", "", "precision", "recall", "f1", "support"))
	for i, label := range e.Labels {
		tp := e.Matrix[i][i]
		support, predicted := 0, 0
		for j := range e.Labels {
			support += e.Matrix[i][j]
			predicted += e.Matrix[j][i]
		}
		precision, recall, f1 := prf(tp, predicted, support)
		sb.WriteString(fmt.Sprintf("%-18s%-12.3f%-12.3f%-12.3f%-12d\n", label, precision, recall, f1, support))
	}
	sb.WriteString(fmt.Sprintf("\naccuracy %.3f\n", e.Accuracy))
	return sb.String()
}

func prf(tp, predicted, support int) (float64, float64, float64) {
	precision, recall := 0.0, 0.0
	if predicted > 0 {
		precision = float64(tp) / float64(predicted)
	}
	if support > 0 {
		recall = float64(tp) / float64(support)
	}
	if precision+recall == 0 {
		return precision, recall, 0
	}
	return precision, recall, 2 * precision * recall / (precision + recall)
}
