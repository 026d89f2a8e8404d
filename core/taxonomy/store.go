package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query selects terms by field equality.
type Query struct {
	Vocabulary string
	Name       string
	// Langcode restricts the name match to one translation. Empty matches any.
	Langcode string
	// Limit caps the number of ids returned. Zero means no limit.
	Limit int
}

// Store is the term storage backend.
type Store interface {
	// FindTermIDs returns the ids of terms matching q, lowest id first.
	FindTermIDs(ctx context.Context, q Query) ([]uint, error)
	// Create builds an unsaved term whose default translation holds name and fields.
	Create(vocabulary, langcode, name string, fields Fields) *Term
	// Load reads a term and all of its translations.
	Load(ctx context.Context, id uint) (*Term, error)
	// SaveTranslation persists a single translation. A new term is inserted first,
	// along with its default translation.
	SaveTranslation(ctx context.Context, term *Term, langcode string) error
	// Save persists the term and all of its translations.
	Save(ctx context.Context, term *Term) error
}

// GormStore implements Store on the taxonomy tables.
type GormStore struct {
	db    *gorm.DB
	clock clockwork.Clock
}

// NewGormStore creates a store. A nil clock uses the real clock.
func NewGormStore(db *gorm.DB, clock clockwork.Clock) *GormStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GormStore{db: db, clock: clock}
}

// FindTermIDs implements Store.
func (s *GormStore) FindTermIDs(ctx context.Context, q Query) ([]uint, error) {
	tx := s.db.WithContext(ctx).
		Model(&TermFieldData{}).
		Where("vid = ? AND name = ?", q.Vocabulary, q.Name)
	if q.Langcode != "" {
		tx = tx.Where("langcode = ?", q.Langcode)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var ids []uint
	if err := tx.Order("tid").Pluck("tid", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	return ids, nil
}

// Create implements Store.
func (s *GormStore) Create(vocabulary, langcode, name string, fields Fields) *Term {
	term := NewTerm(vocabulary, langcode)
	term.translations[langcode] = &Translation{
		Langcode:  langcode,
		Name:      name,
		Published: true,
		Fields:    fields,
	}
	term.EnforceIsNew()
	return term
}

// Load implements Store.
func (s *GormStore) Load(ctx context.Context, id uint) (*Term, error) {
	var data TermData
	err := s.db.WithContext(ctx).First(&data, "tid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrTermNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load term %d: %w", id, err)
	}

	var rows []TermFieldData
	if err := s.db.WithContext(ctx).Where("tid = ?", id).Order("langcode").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load translations of term %d: %w", id, err)
	}

	return assemble(data, rows), nil
}

// All loads every term of a vocabulary ordered by id.
func (s *GormStore) All(ctx context.Context, vocabulary string) ([]*Term, error) {
	var datas []TermData
	if err := s.db.WithContext(ctx).Where("vid = ?", vocabulary).Order("tid").Find(&datas).Error; err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	if len(datas) == 0 {
		return []*Term{}, nil
	}

	var rows []TermFieldData
	if err := s.db.WithContext(ctx).Where("vid = ?", vocabulary).Order("tid, langcode").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	byTerm := make(map[uint][]TermFieldData, len(datas))
	for _, row := range rows {
		byTerm[row.TID] = append(byTerm[row.TID], row)
	}

	terms := make([]*Term, 0, len(datas))
	for _, data := range datas {
		terms = append(terms, assemble(data, byTerm[data.TID]))
	}
	return terms, nil
}

// SaveTranslation implements Store.
func (s *GormStore) SaveTranslation(ctx context.Context, term *Term, langcode string) error {
	tr, err := term.Translation(langcode)
	if err != nil {
		return err
	}
	term.syncShared()

	return s.transaction(ctx, term, func(tx *gorm.DB) error {
		return s.upsertTranslation(tx, term, tr)
	})
}

// Save implements Store.
func (s *GormStore) Save(ctx context.Context, term *Term) error {
	if !term.HasTranslation(term.Langcode) {
		return fmt.Errorf("cannot save term without %s translation: %w", term.Langcode, ErrTranslationMissing)
	}
	term.syncShared()

	return s.transaction(ctx, term, func(tx *gorm.DB) error {
		for _, lc := range term.Langcodes() {
			if err := s.upsertTranslation(tx, term, term.translations[lc]); err != nil {
				return err
			}
		}
		return nil
	})
}

// transaction runs fn after inserting the term if needed. The term's identity is
// restored when the transaction rolls back.
func (s *GormStore) transaction(ctx context.Context, term *Term, fn func(tx *gorm.DB) error) error {
	id, uid, isNew := term.ID, term.UUID, term.isNew

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureTerm(tx, term); err != nil {
			return err
		}
		return fn(tx)
	})
	if err != nil {
		term.ID, term.UUID, term.isNew = id, uid, isNew
	}
	return err
}

// ensureTerm inserts the base row of a new term together with its default
// translation and assigns its id. A stored term always has a default
// translation, so it stays findable by its default name.
func (s *GormStore) ensureTerm(tx *gorm.DB, term *Term) error {
	if !term.IsNew() {
		return nil
	}
	def, ok := term.translations[term.Langcode]
	if !ok {
		return fmt.Errorf("cannot insert term without %s translation: %w", term.Langcode, ErrTranslationMissing)
	}

	data := TermData{TID: term.ID, UUID: term.UUID, VID: term.Vocabulary, Langcode: term.Langcode}
	if err := tx.Create(&data).Error; err != nil {
		return fmt.Errorf("failed to insert term: %w", err)
	}
	term.ID = data.TID
	term.UUID = data.UUID
	term.isNew = false

	return s.upsertTranslation(tx, term, def)
}

func (s *GormStore) upsertTranslation(tx *gorm.DB, term *Term, tr *Translation) error {
	tr.Changed = s.clock.Now().UTC().Truncate(time.Second)

	row := TermFieldData{
		TID:             term.ID,
		Langcode:        tr.Langcode,
		VID:             term.Vocabulary,
		Name:            tr.Name,
		Status:          tr.Published,
		DefaultLangcode: tr.Langcode == term.Langcode,
		ISO2:            tr.Fields.ISO2,
		ISO3:            tr.Fields.ISO3,
		NumericCode:     tr.Fields.NumericCode,
		Continent:       tr.Fields.Continent,
		Subregion:       tr.Fields.Subregion,
		Latitude:        tr.Fields.Lat,
		Longitude:       tr.Fields.Long,
		Changed:         tr.Changed.Unix(),
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tid"}, {Name: "langcode"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save %s translation of term %d: %w", tr.Langcode, term.ID, err)
	}
	return nil
}

func assemble(data TermData, rows []TermFieldData) *Term {
	term := NewTerm(data.VID, data.Langcode)
	term.ID = data.TID
	term.UUID = data.UUID
	term.isNew = false

	for _, row := range rows {
		term.translations[row.Langcode] = &Translation{
			Langcode:  row.Langcode,
			Name:      row.Name,
			Published: row.Status,
			Fields: Fields{
				ISO2:        row.ISO2,
				ISO3:        row.ISO3,
				NumericCode: row.NumericCode,
				Continent:   row.Continent,
				Subregion:   row.Subregion,
				Lat:         row.Latitude,
				Long:        row.Longitude,
			},
			Changed: time.Unix(row.Changed, 0).UTC(),
		}
	}
	return term
}
