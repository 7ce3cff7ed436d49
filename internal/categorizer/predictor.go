package categorizer

import "context"

// Predictor is the minimal capability interface a statistical text classifier
// must provide. Concrete implementations (the offline-trained bag-of-words
// model, the Gemini-backed client) stay interchangeable behind it, so the
// keyword-blending logic is independent of the modeling technique.
type Predictor interface {
	// Predict returns the predicted category label for a description and the
	// model's confidence in [0,1].
	Predict(ctx context.Context, description string) (category string, confidence float64, err error)

	// Name identifies the predictor for logging and diagnostics.
	Name() string
}
