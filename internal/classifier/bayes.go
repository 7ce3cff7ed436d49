package classifier

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/jbrukh/bayesian"

	"paisahub/finassist/internal/finerror"
	"paisahub/finassist/internal/logging"
)

const (
	// minTrainingExamples is the smallest corpus worth training on.
	minTrainingExamples = 10
	// vocabLimit caps the vocabulary to the most frequent tokens.
	vocabLimit = 500
	// testFraction of examples is held out to measure accuracy.
	testFraction = 0.2
	// shuffleSeed makes the train/test split reproducible.
	shuffleSeed = 42
)

// ErrInsufficientData is returned when the training corpus is too small or
// covers fewer than two categories.
var ErrInsufficientData = errors.New("not enough training data")

// Example is one labeled training description.
type Example struct {
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// TrainingReport summarizes a training run.
type TrainingReport struct {
	Examples  int
	TrainSize int
	TestSize  int
	Classes   []string
	Accuracy  float64
}

// Model is a multinomial naive Bayes categorizer over unigram and bigram
// tokens. It satisfies the categorizer Predictor interface.
type Model struct {
	classifier *bayesian.Classifier
	logger     logging.Logger
}

// Name implements the Predictor interface.
func (m *Model) Name() string { return "bayes" }

// Train fits a model on labeled examples. Corpora with fewer than ten
// examples or fewer than two distinct categories return ErrInsufficientData.
// The split into training and held-out sets is deterministic.
func Train(examples []Example, logger logging.Logger) (*Model, *TrainingReport, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(examples) < minTrainingExamples {
		return nil, nil, fmt.Errorf("%w: have %d examples, need at least %d",
			ErrInsufficientData, len(examples), minTrainingExamples)
	}

	classes := distinctClasses(examples)
	if len(classes) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 categories, have %d",
			ErrInsufficientData, len(classes))
	}

	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)
	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := int(float64(len(shuffled)) * testFraction)
	if testSize == 0 {
		testSize = 1
	}
	train := shuffled[:len(shuffled)-testSize]
	test := shuffled[len(shuffled)-testSize:]

	vocab := buildVocabulary(train)

	classifier := bayesian.NewClassifier(classes...)
	for _, ex := range train {
		tokens := filterTokens(Tokenize(ex.Description), vocab)
		if len(tokens) == 0 {
			continue
		}
		classifier.Learn(tokens, bayesian.Class(ex.Category))
	}

	model := &Model{classifier: classifier, logger: logger}

	correct := 0
	for _, ex := range test {
		predicted, _, err := model.Predict(context.Background(), ex.Description)
		if err == nil && predicted == ex.Category {
			correct++
		}
	}

	report := &TrainingReport{
		Examples:  len(examples),
		TrainSize: len(train),
		TestSize:  len(test),
		Classes:   classNames(classes),
		Accuracy:  float64(correct) / float64(len(test)),
	}

	logger.WithFields(
		logging.Field{Key: "examples", Value: report.Examples},
		logging.Field{Key: "classes", Value: len(report.Classes)},
		logging.Field{Key: "accuracy", Value: report.Accuracy},
	).Info("Trained category model")

	return model, report, nil
}

// Predict returns the most likely category for a description and its
// posterior probability.
func (m *Model) Predict(_ context.Context, description string) (string, float64, error) {
	if m == nil || m.classifier == nil {
		return "", 0, &finerror.ClassificationError{
			Predictor: "bayes",
			Err:       errors.New("model not trained"),
		}
	}
	tokens := Tokenize(description)
	if len(tokens) == 0 {
		return "", 0, &finerror.ClassificationError{
			Predictor: "bayes",
			Err:       errors.New("empty description"),
		}
	}
	scores, idx, _ := m.classifier.ProbScores(tokens)
	return string(m.classifier.Classes[idx]), scores[idx], nil
}

// Save writes the model to path, creating parent directories as needed.
func (m *Model) Save(path string) error {
	if m == nil || m.classifier == nil {
		return errors.New("no trained model to save")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}
	if err := m.classifier.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}

// Load reads a previously saved model from path.
func Load(path string, logger logging.Logger) (*Model, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	classifier, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", path, err)
	}
	logger.WithField("path", path).Debug("Loaded category model")
	return &Model{classifier: classifier, logger: logger}, nil
}

func distinctClasses(examples []Example) []bayesian.Class {
	seen := make(map[string]bool)
	var classes []bayesian.Class
	for _, ex := range examples {
		if !seen[ex.Category] {
			seen[ex.Category] = true
			classes = append(classes, bayesian.Class(ex.Category))
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

func classNames(classes []bayesian.Class) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}
	return names
}

// buildVocabulary keeps the vocabLimit most frequent tokens in the training
// set. Ties break on token order so the result is deterministic.
func buildVocabulary(train []Example) map[string]bool {
	counts := make(map[string]int)
	for _, ex := range train {
		for _, tok := range Tokenize(ex.Description) {
			counts[tok]++
		}
	}
	if len(counts) <= vocabLimit {
		vocab := make(map[string]bool, len(counts))
		for tok := range counts {
			vocab[tok] = true
		}
		return vocab
	}

	type tokenCount struct {
		token string
		count int
	}
	ranked := make([]tokenCount, 0, len(counts))
	for tok, n := range counts {
		ranked = append(ranked, tokenCount{tok, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].token < ranked[j].token
	})

	vocab := make(map[string]bool, vocabLimit)
	for _, tc := range ranked[:vocabLimit] {
		vocab[tc.token] = true
	}
	return vocab
}

func filterTokens(tokens []string, vocab map[string]bool) []string {
	kept := tokens[:0]
	for _, tok := range tokens {
		if vocab[tok] {
			kept = append(kept, tok)
		}
	}
	return kept
}
