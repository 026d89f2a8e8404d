package taxonomy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TermData is the base row of a term.
type TermData struct {
	TID      uint   `gorm:"column:tid;primaryKey;autoIncrement"`
	UUID     string `gorm:"column:uuid;size:36;uniqueIndex"`
	VID      string `gorm:"column:vid;size:32;index"`
	Langcode string `gorm:"column:langcode;size:12"`
}

// TableName specifies the table name
func (TermData) TableName() string {
	return "taxonomy_term_data"
}

// BeforeCreate assigns a UUID to new terms.
func (d *TermData) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == "" {
		d.UUID = uuid.NewString()
	}
	return nil
}

// TermFieldData holds one translation of a term.
type TermFieldData struct {
	TID             uint    `gorm:"column:tid;primaryKey;autoIncrement:false"`
	Langcode        string  `gorm:"column:langcode;primaryKey;size:12"`
	VID             string  `gorm:"column:vid;size:32;index:idx_term_vid_name,priority:1"`
	Name            string  `gorm:"column:name;size:255;index:idx_term_vid_name,priority:2"`
	Status          bool    `gorm:"column:status"`
	DefaultLangcode bool    `gorm:"column:default_langcode"`
	ISO2            string  `gorm:"column:iso2;size:2"`
	ISO3            string  `gorm:"column:iso3;size:3"`
	NumericCode     string  `gorm:"column:numeric_code;size:3"`
	Continent       string  `gorm:"column:continent;size:64"`
	Subregion       string  `gorm:"column:subregion;size:64"`
	Latitude        float64 `gorm:"column:latitude"`
	Longitude       float64 `gorm:"column:longitude"`
	Changed         int64   `gorm:"column:changed"`
}

// TableName specifies the table name
func (TermFieldData) TableName() string {
	return "taxonomy_term_field_data"
}

// Language is an entry of the language registry.
type Language struct {
	Langcode  string `gorm:"column:langcode;primaryKey;size:12" json:"langcode"`
	Name      string `gorm:"column:name;size:64" json:"name"`
	Weight    int    `gorm:"column:weight" json:"weight"`
	IsDefault bool   `gorm:"column:is_default" json:"is_default"`
}

// TableName specifies the table name
func (Language) TableName() string {
	return "languages"
}

// Migrate creates or updates the taxonomy tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TermData{}, &TermFieldData{}, &Language{})
}
