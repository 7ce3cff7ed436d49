package root

import (
	"os"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/classifier"
	"paisahub/finassist/internal/models"
	"paisahub/finassist/internal/nlparser"
	"paisahub/finassist/internal/storage"
	"paisahub/finassist/internal/store"
)

// NewStore opens the SQLite store at the configured path.
func NewStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(Cfg.Database.Path, Log)
}

// NewAssistant builds an assistant backed by the configured database. When
// the database cannot be opened the assistant runs memory-only; the returned
// cleanup must be called on exit either way.
func NewAssistant() (*assistant.Assistant, func()) {
	sqlStore, err := NewStore()
	if err != nil {
		Log.WithError(err).Warn("Could not open database, running without persistence")
		return assistant.New(nil, Log), func() {}
	}
	return assistant.New(sqlStore, Log), func() {
		if err := sqlStore.Close(); err != nil {
			Log.WithError(err).Warn("Failed to close database")
		}
	}
}

// KeywordTables loads the configured category keyword tables. An empty result
// means the built-in tables apply.
func KeywordTables() []models.CategoryConfig {
	categoryStore := store.NewCategoryStore(Cfg.Categories.File, Log)
	tables, err := categoryStore.LoadCategories()
	if err != nil {
		Log.WithError(err).Warn("Could not load category tables, using built-ins")
		return nil
	}
	return tables
}

// NewParser builds the free-text expense parser using the configured keyword
// tables.
func NewParser() *nlparser.Parser {
	return nlparser.NewParser(
		nlparser.WithMatcher(categorizer.NewKeywordMatcher(KeywordTables())),
	)
}

// NewCategorizer builds the category suggester. The statistical predictor is
// the Gemini client when AI is enabled, otherwise the trained model at the
// configured path if one exists; with neither, suggestions are keyword-only.
func NewCategorizer() *categorizer.Categorizer {
	opts := []categorizer.Option{
		categorizer.WithLogger(Log),
		categorizer.WithTrustThreshold(Cfg.Classifier.TrustThreshold),
	}

	if predictor := newPredictor(); predictor != nil {
		opts = append(opts, categorizer.WithPredictor(predictor))
	}

	return categorizer.New(KeywordTables(), opts...)
}

func newPredictor() categorizer.Predictor {
	if Cfg.AI.Enabled && Cfg.AI.APIKey != "" {
		Log.WithField("model", Cfg.AI.Model).Info("Using Gemini for category prediction")
		return categorizer.NewGeminiPredictor(Cfg.AI.APIKey, Cfg.AI.Model, Log)
	}

	if _, err := os.Stat(Cfg.Classifier.ModelPath); err == nil {
		model, err := classifier.Load(Cfg.Classifier.ModelPath, Log)
		if err != nil {
			Log.WithError(err).Warn("Could not load category model")
			return nil
		}
		Log.WithField("path", Cfg.Classifier.ModelPath).Info("Loaded trained category model")
		return model
	}

	return nil
}
