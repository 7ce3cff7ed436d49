// Package categorizer assigns spending categories to free-text expense
// descriptions. A keyword matcher provides a deterministic baseline and an
// optional statistical Predictor refines the result when its confidence is
// high enough.
package categorizer

import (
	"context"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

const (
	// keywordConfidence is the confidence assigned to a plain keyword match.
	keywordConfidence = 0.5
	// noMatchConfidence is the confidence when nothing matched at all.
	noMatchConfidence = 0.2
	// agreementBoost is added when the keyword matcher and the statistical
	// predictor agree on the category.
	agreementBoost = 0.1
)

// Categorizer blends keyword matching with an optional statistical predictor.
type Categorizer struct {
	matcher        *KeywordMatcher
	predictor      Predictor
	trustThreshold float64
	logger         logging.Logger
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithPredictor attaches a statistical predictor. A nil predictor leaves the
// categorizer in keyword-only mode.
func WithPredictor(p Predictor) Option {
	return func(c *Categorizer) { c.predictor = p }
}

// WithTrustThreshold overrides the confidence level above which a predictor
// result is trusted on its own, even when it disagrees with the keywords.
func WithTrustThreshold(t float64) Option {
	return func(c *Categorizer) {
		if t > 0 {
			c.trustThreshold = t
		}
	}
}

// WithLogger sets the logger used for predictor diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Categorizer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Categorizer using the given keyword tables. Empty tables fall
// back to the built-in defaults.
func New(tables []models.CategoryConfig, opts ...Option) *Categorizer {
	c := &Categorizer{
		matcher:        NewKeywordMatcher(tables),
		trustThreshold: 0.6,
		logger:         logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasPredictor reports whether a statistical predictor is attached.
func (c *Categorizer) HasPredictor() bool {
	return c.predictor != nil
}

// Suggest returns the best category for a description together with a
// confidence score in [0,1].
//
// The keyword match always runs first. When a predictor is attached its
// result is blended in: agreement boosts confidence, a high-confidence
// disagreement is trusted outright, and anything else falls back to the
// keyword answer. Predictor failures degrade to keyword-only behaviour.
func (c *Categorizer) Suggest(ctx context.Context, description string) (models.Category, float64) {
	keywordCat := c.matcher.Match(description)

	if c.predictor == nil {
		if keywordCat != models.CategoryOther {
			return keywordCat, keywordConfidence
		}
		return models.CategoryOther, noMatchConfidence
	}

	predicted, confidence, err := c.predictor.Predict(ctx, description)
	if err != nil {
		c.logger.WithError(err).WithField("predictor", c.predictor.Name()).
			Warn("Predictor failed, falling back to keyword match")
		return keywordCat, keywordConfidence
	}

	statCat := models.Category(predicted)
	if !models.IsValidCategory(predicted) {
		c.logger.WithField("category", predicted).
			Warn("Predictor returned unknown category, falling back to keyword match")
		return keywordCat, keywordConfidence
	}

	if statCat == keywordCat {
		boosted := confidence + agreementBoost
		if boosted > 1.0 {
			boosted = 1.0
		}
		return statCat, boosted
	}
	if confidence > c.trustThreshold {
		return statCat, confidence
	}
	return keywordCat, keywordConfidence
}
