package ml

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/knn"
)

// KNN is a k-nearest-neighbour classifier on top of golearn.
// It is instance based, so the fitted state is the training snapshot itself.
type KNN struct {
	K        int
	Distance string
	TrainX   [][]float64
	TrainY   []int
}

// NewKNN creates a knn classifier with the given neighbour count and distance metric.
// Supported metrics are the golearn ones: euclidean, manhattan, cosine.
func NewKNN(k int, distance string) *KNN {
	return &KNN{
		K:        k,
		Distance: distance,
	}
}

func (c *KNN) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d samples vs %d labels", len(x), len(y))
	}
	c.TrainX = x
	c.TrainY = y
	return nil
}

// Predict classifies the given samples against the stored training set.
// golearn instances are built by round-tripping through csv feature files,
// the same way the raw feed data would be loaded.
func (c *KNN) Predict(x [][]float64) ([]int, error) {
	if len(c.TrainX) == 0 {
		return nil, ErrNotFitted
	}

	dir, err := os.MkdirTemp("", "pitch-knn")
	if err != nil {
		return nil, fmt.Errorf("could not create instances dir: %w", err)
	}
	defer os.RemoveAll(dir)

	trainFile := filepath.Join(dir, "train.csv")
	if err := toFeatureFile(trainFile, c.TrainX, func(i int) string {
		return classValue(c.TrainY[i])
	}); err != nil {
		return nil, err
	}
	// the class column of the prediction set is a placeholder
	testFile := filepath.Join(dir, "test.csv")
	if err := toFeatureFile(testFile, x, func(i int) string {
		return classValue(c.TrainY[0])
	}); err != nil {
		return nil, err
	}

	trainData, err := base.ParseCSVToInstances(trainFile, false)
	if err != nil {
		return nil, fmt.Errorf("could not parse train instances: %w", err)
	}
	testData, err := base.ParseCSVToInstances(testFile, false)
	if err != nil {
		return nil, fmt.Errorf("could not parse test instances: %w", err)
	}

	cls := knn.NewKnnClassifier(c.Distance, "linear", c.K)
	if err := cls.Fit(trainData); err != nil {
		return nil, fmt.Errorf("could not fit knn: %w", err)
	}
	predictions, err := cls.Predict(testData)
	if err != nil {
		return nil, fmt.Errorf("could not predict with knn: %w", err)
	}

	classes := make([]int, len(x))
	for i := range x {
		code, err := parseClassValue(base.GetClass(predictions, i))
		if err != nil {
			return nil, err
		}
		classes[i] = code
	}
	return classes, nil
}

func classValue(code int) string {
	return fmt.Sprintf("c%d", code)
}

func parseClassValue(value string) (int, error) {
	code, err := strconv.Atoi(strings.TrimPrefix(value, "c"))
	if err != nil {
		return 0, fmt.Errorf("unexpected class value '%s': %w", value, err)
	}
	return code, nil
}

// toFeatureFile writes one csv row per sample, features first, class label last.
func toFeatureFile(fn string, vectors [][]float64, class func(i int) string) error {
	file, err := os.OpenFile(fn, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	for i, vector := range vectors {
		lw := new(strings.Builder)
		for _, v := range vector {
			lw.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			lw.WriteString(",")
		}
		lw.WriteString(class(i))
		if _, err := writer.WriteString(lw.String() + "\n"); err != nil {
			return fmt.Errorf("could not write feature file '%s': %w", fn, err)
		}
	}
	return nil
}
