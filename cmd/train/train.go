// Package train handles training the statistical category model.
package train

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/classifier"
	"paisahub/finassist/internal/export"
	"paisahub/finassist/internal/logging"
)

var trainingFile string

// Cmd represents the train command.
var Cmd = &cobra.Command{
	Use:   "train",
	Short: "Train the category model from labeled examples",
	Long: `Train a naive Bayes category model from a CSV of labeled examples
(description,category columns) and save it to the configured model path.`,
	Run: trainFunc,
}

func init() {
	Cmd.Flags().StringVarP(&trainingFile, "input", "i", "", "Training data CSV file")
	_ = Cmd.MarkFlagRequired("input")
}

func trainFunc(cmd *cobra.Command, args []string) {
	examples, err := export.ReadTrainingExamplesFile(trainingFile, root.Log)
	if err != nil {
		root.Log.WithError(err).Error("Failed to read training data")
		os.Exit(1)
	}

	model, report, err := classifier.Train(examples, root.Log)
	if err != nil {
		if errors.Is(err, classifier.ErrInsufficientData) {
			root.Log.WithError(err).Warn("Not enough training data, model unchanged")
			return
		}
		root.Log.WithError(err).Error("Training failed")
		os.Exit(1)
	}

	if err := model.Save(root.Cfg.Classifier.ModelPath); err != nil {
		root.Log.WithError(err).Error("Failed to save model")
		os.Exit(1)
	}

	root.Log.WithFields(
		logging.Field{Key: "path", Value: root.Cfg.Classifier.ModelPath},
		logging.Field{Key: "examples", Value: report.Examples},
		logging.Field{Key: "accuracy", Value: report.Accuracy},
	).Info("Model trained and saved")
}
