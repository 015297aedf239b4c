package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
	"github.com/cognicore/lexfeat/pkg/lexfeat/normalize"
	"github.com/cognicore/lexfeat/pkg/lexfeat/pmi"
	"github.com/cognicore/lexfeat/pkg/lexfeat/stoplist"
	"github.com/cognicore/lexfeat/pkg/lexfeat/store/sqlite"
)

// Loader loads all reference data named by a Config and constructs components
type Loader struct {
	Config Config
}

// Components holds all loaded pipeline components
type Components struct {
	Stopwords  stoplist.Set
	Normalizer *normalize.Normalizer
	NGram      NGram
	Measure    pmi.Measure
	Tagging    bool
}

// Load reads all reference data and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, _ := normalize.ParseStrategy(cfg.Strategy)
	measure, _ := pmi.ParseMeasure(cfg.NGram.Measure)

	var store *sqlite.Store
	if cfg.DatabasePath != "" {
		st, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open resource database: %w", err)
		}
		defer st.Close()
		store = st
	}

	stops, err := loadStopwords(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	var lemmas *lexicon.LemmaMap
	if strategy == normalize.Lemmatize {
		lemmas, err = loadLemmas(ctx, cfg, store)
		if err != nil {
			return nil, err
		}
	}

	norm, err := normalize.New(normalize.Config{
		Strategy: strategy,
		Language: cfg.Language,
		Lemmas:   lemmas,
	})
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}

	slog.Debug("Pipeline components loaded",
		"language", cfg.Language,
		"strategy", strategy.String(),
		"explicitStopwords", stops.Len(),
		"builtinStopwords", stops.Language() != "",
		"lemmas", lemmas.Stats().Lemmas)

	return &Components{
		Stopwords:  stops,
		Normalizer: norm,
		NGram:      cfg.NGram,
		Measure:    measure,
		Tagging:    cfg.Tagging,
	}, nil
}

func loadStopwords(ctx context.Context, cfg Config, store *sqlite.Store) (stoplist.Set, error) {
	stops := stoplist.New(nil)
	if cfg.BuiltinStopwords {
		builtin, err := stoplist.ForLanguage(cfg.Language)
		if err != nil {
			return stoplist.Set{}, err
		}
		stops = builtin
	}

	if cfg.StoplistPath != "" {
		sl, err := LoadStoplist(cfg.StoplistPath)
		if err != nil {
			return stoplist.Set{}, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stops.With(sl.Terms...)
	}

	if store != nil {
		terms, err := store.Stopwords(ctx, cfg.Language)
		switch {
		case errors.Is(err, internalerr.ErrNotFound):
			slog.Debug("No stopwords in resource database", "language", cfg.Language)
		case err != nil:
			return stoplist.Set{}, fmt.Errorf("load stopwords from database: %w", err)
		default:
			stops = stops.With(terms...)
		}
	}

	return stops, nil
}

func loadLemmas(ctx context.Context, cfg Config, store *sqlite.Store) (*lexicon.LemmaMap, error) {
	if cfg.LemmasPath != "" {
		lemmas, err := lexicon.LoadFromYAML(cfg.LemmasPath)
		if err != nil {
			return nil, fmt.Errorf("load lemmas: %w", err)
		}
		return lemmas, nil
	}
	if store != nil {
		lemmas, err := store.LemmaMap(ctx)
		if err != nil {
			return nil, fmt.Errorf("load lemmas from database: %w", err)
		}
		return lemmas, nil
	}
	return nil, fmt.Errorf("%w: lemmatize strategy needs lemmas or database", internalerr.ErrInvalidConfig)
}
