// Package sqlite stores the read-only reference data the pipeline consumes
// (stop word lists and lemma tables) in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
)

// Store is a SQLite-backed resource store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a resource database with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS stopwords (
	language TEXT NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(language, token)
);

CREATE TABLE IF NOT EXISTS lemmas (
	form TEXT NOT NULL,
	pos TEXT NOT NULL DEFAULT '',
	lemma TEXT NOT NULL,
	seq INTEGER NOT NULL,
	PRIMARY KEY(form, pos)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertStopwords replaces the stop word list of a language in a single
// transaction.
func (s *Store) UpsertStopwords(ctx context.Context, language string, tokens []string) error {
	language = strings.ToLower(strings.TrimSpace(language))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stopwords WHERE language=?`, language); err != nil {
		return err
	}

	if len(tokens) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stopwords (language, token) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, language, tok); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Stopwords returns the stop word list of a language, sorted. A language with
// no rows yields ErrNotFound.
func (s *Store) Stopwords(ctx context.Context, language string) ([]string, error) {
	language = strings.ToLower(strings.TrimSpace(language))

	rows, err := s.db.QueryContext(ctx, `SELECT token FROM stopwords WHERE language=? ORDER BY token`, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: stopwords for language %q", internalerr.ErrNotFound, language)
	}
	return out, nil
}

// UpsertLemmas replaces the lemma table with the given entries in a single
// transaction. Entry order is kept so that a reloaded map resolves
// conflicting forms the same way.
func (s *Store) UpsertLemmas(ctx context.Context, entries []lexicon.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lemmas`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO lemmas (form, pos, lemma, seq) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	// Normalize through LemmaMap so the stored rows match lookups.
	seq := 0
	for _, e := range lexicon.New(entries).Entries() {
		forms := append([]string{e.Lemma}, e.Forms...)
		for _, f := range forms {
			if _, err := stmt.ExecContext(ctx, f, string(e.POS), e.Lemma, seq); err != nil {
				return err
			}
			seq++
		}
	}

	return tx.Commit()
}

// LemmaMap loads the lemma table into an immutable LemmaMap. An empty table
// yields ErrNotFound.
func (s *Store) LemmaMap(ctx context.Context) (*lexicon.LemmaMap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT form, pos, lemma FROM lemmas ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []lexicon.Entry
	for rows.Next() {
		var form, pos, lemma string
		if err := rows.Scan(&form, &pos, &lemma); err != nil {
			return nil, err
		}
		entries = append(entries, lexicon.Entry{
			Lemma: lemma,
			POS:   lexicon.POS(pos),
			Forms: []string{form},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: lemma table is empty", internalerr.ErrNotFound)
	}
	return lexicon.New(entries), nil
}
