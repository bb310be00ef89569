package sqlite

import (
	"database/sql"
	"os"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
)

const schema = `
CREATE TABLE doc (name TEXT NOT NULL);
CREATE TABLE meta (owner TEXT NOT NULL, key TEXT NOT NULL, value TEXT NOT NULL);
CREATE TABLE media (id TEXT PRIMARY KEY, url TEXT NOT NULL, mimetype TEXT NOT NULL);
CREATE TABLE vocab (name TEXT PRIMARY KEY);
CREATE TABLE vocab_entry (
	vocab TEXT NOT NULL REFERENCES vocab(name),
	rank INTEGER NOT NULL,
	tag TEXT NOT NULL,
	tagtype TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE tier (
	id TEXT PRIMARY KEY,
	rank INTEGER NOT NULL,
	name TEXT NOT NULL,
	media_id TEXT,
	vocab TEXT
);
CREATE TABLE annotation (
	id TEXT PRIMARY KEY,
	tier_id TEXT NOT NULL REFERENCES tier(id),
	rank INTEGER NOT NULL,
	kind TEXT NOT NULL
);
CREATE TABLE span (
	ann_id TEXT NOT NULL REFERENCES annotation(id),
	rank INTEGER NOT NULL,
	xmin REAL NOT NULL,
	xmin_r REAL NOT NULL,
	xmax REAL NOT NULL,
	xmax_r REAL NOT NULL
);
CREATE TABLE label (
	ann_id TEXT NOT NULL REFERENCES annotation(id),
	label_rank INTEGER NOT NULL,
	tag_rank INTEGER NOT NULL,
	tag TEXT NOT NULL,
	tagtype TEXT NOT NULL,
	score REAL NOT NULL,
	scored INTEGER NOT NULL
);
CREATE TABLE hierarchy (
	type TEXT NOT NULL,
	parent_id TEXT NOT NULL REFERENCES tier(id),
	child_id TEXT NOT NULL REFERENCES tier(id)
);
`

// writeDB replaces the file with a fresh database holding the whole
// transcription, in one transaction.
func writeDB(path string, t *trs.Transcription) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewIO("remove", path, err)
	}
	db, err := open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "creating schema")
	}
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	if err := insertAll(tx, t); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertAll(tx *sql.Tx, t *trs.Transcription) error {
	if _, err := tx.Exec(`INSERT INTO doc (name) VALUES (?)`, t.Name()); err != nil {
		return errors.Wrap(err, "inserting document")
	}
	if err := insertMeta(tx, "", t.Metadata(), ""); err != nil {
		return err
	}

	for _, m := range t.Media() {
		if _, err := tx.Exec(`INSERT INTO media (id, url, mimetype) VALUES (?, ?, ?)`,
			m.ID(), m.URL(), m.MimeType()); err != nil {
			return errors.Wrap(err, "inserting media")
		}
	}

	for _, v := range t.Vocabs() {
		if _, err := tx.Exec(`INSERT INTO vocab (name) VALUES (?)`, v.Name()); err != nil {
			return errors.Wrap(err, "inserting vocabulary")
		}
		for rank, entry := range v.Entries() {
			if _, err := tx.Exec(
				`INSERT INTO vocab_entry (vocab, rank, tag, tagtype, description) VALUES (?, ?, ?, ?, ?)`,
				v.Name(), rank, entry.Tag.Content(), entry.Tag.Type().String(), entry.Description); err != nil {
				return errors.Wrap(err, "inserting vocabulary entry")
			}
		}
	}

	for rank, tier := range t.Tiers() {
		if err := insertTier(tx, rank, tier); err != nil {
			return err
		}
	}

	for _, tier := range t.Tiers() {
		if link := t.Hierarchy().ParentOf(tier); link != nil {
			if _, err := tx.Exec(`INSERT INTO hierarchy (type, parent_id, child_id) VALUES (?, ?, ?)`,
				string(link.Type), link.Parent.ID(), link.Child.ID()); err != nil {
				return errors.Wrap(err, "inserting hierarchy link")
			}
		}
	}
	return nil
}

func insertMeta(tx *sql.Tx, owner string, meta *ann.Metadata, skip string) error {
	for _, key := range meta.Keys() {
		if key == skip {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO meta (owner, key, value) VALUES (?, ?, ?)`,
			owner, key, meta.GetDefault(key, "")); err != nil {
			return errors.Wrap(err, "inserting metadata")
		}
	}
	return nil
}

func insertTier(tx *sql.Tx, rank int, tier *trs.Tier) error {
	var mediaID, vocabName any
	if m := tier.Media(); m != nil {
		mediaID = m.ID()
	}
	if v := tier.CtrlVocab(); v != nil {
		vocabName = v.Name()
	}
	if _, err := tx.Exec(`INSERT INTO tier (id, rank, name, media_id, vocab) VALUES (?, ?, ?, ?, ?)`,
		tier.ID(), rank, tier.Name(), mediaID, vocabName); err != nil {
		return errors.Wrap(err, "inserting tier")
	}
	if err := insertMeta(tx, tier.ID(), tier.Metadata(), ann.MetaKeyID); err != nil {
		return err
	}

	for rank, a := range tier.Annotations() {
		if err := insertAnnotation(tx, tier, rank, a); err != nil {
			return err
		}
	}
	return nil
}

func insertAnnotation(tx *sql.Tx, tier *trs.Tier, rank int, a *ann.Annotation) error {
	loc := a.Location().Best()
	if _, err := tx.Exec(`INSERT INTO annotation (id, tier_id, rank, kind) VALUES (?, ?, ?, ?)`,
		a.ID(), tier.ID(), rank, loc.Kind().String()); err != nil {
		return errors.Wrap(err, "inserting annotation")
	}

	for i, span := range spansOf(loc) {
		if _, err := tx.Exec(
			`INSERT INTO span (ann_id, rank, xmin, xmin_r, xmax, xmax_r) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID(), i, span[0], span[1], span[2], span[3]); err != nil {
			return errors.Wrap(err, "inserting span")
		}
	}

	for li, label := range a.Labels() {
		for ti, st := range label.Tags() {
			scored := 0
			if st.Scored {
				scored = 1
			}
			if _, err := tx.Exec(
				`INSERT INTO label (ann_id, label_rank, tag_rank, tag, tagtype, score, scored) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				a.ID(), li, ti, st.Tag.Content(), st.Tag.Type().String(), st.Score, scored); err != nil {
				return errors.Wrap(err, "inserting label")
			}
		}
	}
	return nil
}

// spansOf flattens the localization into [xmin, xmin_r, xmax, xmax_r]
// rows: one for a point or an interval, one per interval of a disjoint.
func spansOf(loc ann.Localization) [][4]float64 {
	switch l := loc.(type) {
	case *ann.Point:
		return [][4]float64{{l.Midpoint(), l.Radius(), l.Midpoint(), l.Radius()}}
	case *ann.Interval:
		return [][4]float64{intervalSpan(l)}
	case *ann.Disjoint:
		spans := make([][4]float64, 0, len(l.Intervals()))
		for _, iv := range l.Intervals() {
			spans = append(spans, intervalSpan(iv))
		}
		return spans
	}
	return nil
}

func intervalSpan(iv *ann.Interval) [4]float64 {
	return [4]float64{
		iv.Begin().Midpoint(), iv.Begin().Radius(),
		iv.End().Midpoint(), iv.End().Radius(),
	}
}
