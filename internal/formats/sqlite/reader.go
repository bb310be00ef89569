package sqlite

import (
	"database/sql"
	"os"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
)

func readDB(path string) (*trs.Transcription, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewIO("stat", path, err)
	}
	db, err := open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer db.Close()

	var name string
	if err := db.QueryRow(`SELECT name FROM doc`).Scan(&name); err != nil {
		return nil, errors.NewParse("adb", path, 0, "missing doc row: "+err.Error())
	}
	t := trs.NewTranscription(name)
	if err := readMeta(db, "", t.Metadata()); err != nil {
		return nil, err
	}

	mediaByID, err := readMedia(db, t)
	if err != nil {
		return nil, err
	}
	if err := readVocabs(db, t); err != nil {
		return nil, err
	}
	tierByID, err := readTiers(db, t, mediaByID)
	if err != nil {
		return nil, err
	}
	if err := readHierarchy(db, path, t, tierByID); err != nil {
		return nil, err
	}
	return t, nil
}

func readMeta(db *sql.DB, owner string, meta *ann.Metadata) error {
	rows, err := db.Query(`SELECT key, value FROM meta WHERE owner = ? ORDER BY rowid`, owner)
	if err != nil {
		return errors.Wrap(err, "querying metadata")
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return errors.Wrap(err, "scanning metadata")
		}
		meta.Set(key, value)
	}
	return rows.Err()
}

func readMedia(db *sql.DB, t *trs.Transcription) (map[string]*trs.Media, error) {
	rows, err := db.Query(`SELECT id, url, mimetype FROM media ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "querying media")
	}
	defer rows.Close()

	byID := make(map[string]*trs.Media)
	for rows.Next() {
		var id, url, mime string
		if err := rows.Scan(&id, &url, &mime); err != nil {
			return nil, errors.Wrap(err, "scanning media")
		}
		m := trs.NewMedia(url, mime)
		m.SetID(id)
		if err := t.AddMedia(m); err != nil {
			return nil, err
		}
		byID[id] = m
	}
	return byID, rows.Err()
}

func readVocabs(db *sql.DB, t *trs.Transcription) error {
	rows, err := db.Query(`SELECT name FROM vocab ORDER BY rowid`)
	if err != nil {
		return errors.Wrap(err, "querying vocabularies")
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, "scanning vocabulary")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range names {
		v := trs.NewCtrlVocab(name)
		entries, err := db.Query(
			`SELECT tag, tagtype, description FROM vocab_entry WHERE vocab = ? ORDER BY rank`, name)
		if err != nil {
			return errors.Wrapf(err, "querying entries of vocabulary %q", name)
		}
		for entries.Next() {
			var content, typeName, description string
			if err := entries.Scan(&content, &typeName, &description); err != nil {
				entries.Close()
				return errors.Wrapf(err, "scanning entry of vocabulary %q", name)
			}
			tag, err := typedTag(content, typeName)
			if err != nil {
				entries.Close()
				return err
			}
			if err := v.Add(tag, description); err != nil {
				entries.Close()
				return err
			}
		}
		if err := entries.Err(); err != nil {
			entries.Close()
			return err
		}
		entries.Close()
		if err := t.AddVocab(v); err != nil {
			return err
		}
	}
	return nil
}

type tierRow struct {
	id, name         string
	mediaID, vocabin sql.NullString
}

func readTiers(db *sql.DB, t *trs.Transcription, mediaByID map[string]*trs.Media) (map[string]*trs.Tier, error) {
	rows, err := db.Query(`SELECT id, name, media_id, vocab FROM tier ORDER BY rank`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tiers")
	}
	var tierRows []tierRow
	for rows.Next() {
		var r tierRow
		if err := rows.Scan(&r.id, &r.name, &r.mediaID, &r.vocabin); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scanning tier")
		}
		tierRows = append(tierRows, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	byID := make(map[string]*trs.Tier)
	for _, r := range tierRows {
		tier, err := t.NewTier(r.name)
		if err != nil {
			return nil, err
		}
		tier.SetID(r.id)
		tier.AllowOverlaps()
		if err := readMeta(db, r.id, tier.Metadata()); err != nil {
			return nil, err
		}
		if r.mediaID.Valid {
			if m := mediaByID[r.mediaID.String]; m != nil {
				tier.SetMedia(m)
			}
		}
		if r.vocabin.Valid {
			if v := t.Vocab(r.vocabin.String); v != nil {
				if err := tier.SetCtrlVocab(v); err != nil {
					return nil, err
				}
			}
		}
		if err := readAnnotations(db, tier, r.id); err != nil {
			return nil, err
		}
		byID[r.id] = tier
	}
	return byID, nil
}

func readAnnotations(db *sql.DB, tier *trs.Tier, tierID string) error {
	rows, err := db.Query(`SELECT id, kind FROM annotation WHERE tier_id = ? ORDER BY rank`, tierID)
	if err != nil {
		return errors.Wrap(err, "querying annotations")
	}
	type annRow struct{ id, kind string }
	var annRows []annRow
	for rows.Next() {
		var r annRow
		if err := rows.Scan(&r.id, &r.kind); err != nil {
			rows.Close()
			return errors.Wrap(err, "scanning annotation")
		}
		annRows = append(annRows, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, r := range annRows {
		loc, err := readLocation(db, r.id, r.kind)
		if err != nil {
			return err
		}
		labels, err := readLabels(db, r.id)
		if err != nil {
			return err
		}
		a, err := tier.CreateAnnotation(loc, labels...)
		if err != nil {
			return err
		}
		a.Metadata().Set(ann.MetaKeyID, r.id)
	}
	return nil
}

func readLocation(db *sql.DB, annID, kind string) (*ann.Location, error) {
	rows, err := db.Query(
		`SELECT xmin, xmin_r, xmax, xmax_r FROM span WHERE ann_id = ? ORDER BY rank`, annID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying spans of annotation %s", annID)
	}
	defer rows.Close()

	var spans [][4]float64
	for rows.Next() {
		var s [4]float64
		if err := rows.Scan(&s[0], &s[1], &s[2], &s[3]); err != nil {
			return nil, errors.Wrapf(err, "scanning span of annotation %s", annID)
		}
		spans = append(spans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, errors.NewEmpty("annotation " + annID + " has no span")
	}

	var loc ann.Localization
	switch kind {
	case ann.KindPoint.String():
		loc, err = ann.NewPoint(spans[0][0], spans[0][1])
	case ann.KindInterval.String():
		loc, err = spanInterval(spans[0])
	case ann.KindDisjoint.String():
		var intervals []*ann.Interval
		for _, s := range spans {
			iv, err := spanInterval(s)
			if err != nil {
				return nil, err
			}
			intervals = append(intervals, iv)
		}
		loc, err = ann.NewDisjoint(intervals...)
	default:
		return nil, errors.NewType(kind, "localization kind")
	}
	if err != nil {
		return nil, err
	}
	return ann.NewLocation(loc)
}

func spanInterval(s [4]float64) (*ann.Interval, error) {
	begin, err := ann.NewPoint(s[0], s[1])
	if err != nil {
		return nil, err
	}
	end, err := ann.NewPoint(s[2], s[3])
	if err != nil {
		return nil, err
	}
	return ann.NewInterval(begin, end)
}

func readLabels(db *sql.DB, annID string) ([]*ann.Label, error) {
	rows, err := db.Query(
		`SELECT label_rank, tag, tagtype, score, scored FROM label WHERE ann_id = ? ORDER BY label_rank, tag_rank`,
		annID)
	if err != nil {
		return nil, errors.Wrap(err, "querying labels")
	}
	defer rows.Close()

	var labels []*ann.Label
	lastRank := -1
	for rows.Next() {
		var (
			rank     int
			content  string
			typeName string
			score    float64
			scored   int
		)
		if err := rows.Scan(&rank, &content, &typeName, &score, &scored); err != nil {
			return nil, errors.Wrap(err, "scanning label")
		}
		tag, err := typedTag(content, typeName)
		if err != nil {
			return nil, err
		}
		if rank != lastRank {
			lastRank = rank
			if scored == 1 {
				labels = append(labels, ann.NewScoredLabel(tag, score))
			} else {
				labels = append(labels, ann.NewLabel(tag))
			}
			continue
		}
		label := labels[len(labels)-1]
		if scored == 1 {
			label.Append(tag, score)
		} else {
			label.AppendUnscored(tag)
		}
	}
	return labels, rows.Err()
}

func readHierarchy(db *sql.DB, path string, t *trs.Transcription, tierByID map[string]*trs.Tier) error {
	rows, err := db.Query(`SELECT type, parent_id, child_id FROM hierarchy ORDER BY rowid`)
	if err != nil {
		return errors.Wrap(err, "querying hierarchy")
	}
	type linkRow struct{ typ, parent, child string }
	var links []linkRow
	for rows.Next() {
		var r linkRow
		if err := rows.Scan(&r.typ, &r.parent, &r.child); err != nil {
			rows.Close()
			return errors.Wrap(err, "scanning hierarchy link")
		}
		links = append(links, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, r := range links {
		parent := tierByID[r.parent]
		child := tierByID[r.child]
		if parent == nil || child == nil {
			return errors.NewParse("adb", path, 0, "hierarchy link references an unknown tier id")
		}
		if err := t.AddLink(trs.LinkType(r.typ), parent, child); err != nil {
			return err
		}
	}
	return nil
}

func typedTag(content, typeName string) (ann.Tag, error) {
	typ, err := ann.TagTypeFromString(typeName)
	if err != nil {
		return ann.Tag{}, err
	}
	return ann.NewTypedTag(content, typ)
}
