// Package taxonomy stores categorized terms and their translations.
//
// A Term belongs to a vocabulary and has one Translation per language. Names are
// translatable; the country Fields are shared and written from the default
// translation onto every translation row on save.
//
// # Tables
//
//   - taxonomy_term_data: one row per term (tid, uuid, vid, langcode)
//   - taxonomy_term_field_data: one row per term and language
//   - languages: the language registry
//
// # Store
//
// The Store interface is what the reconcile engine consumes: find ids by field
// equality, create, load, save a single translation and save the whole term.
// GormStore implements it for MySQL and SQLite.
//
// # Registry
//
// GormRegistry lists and seeds the languages table. CachedRegistry adds a TTL
// cache with singleflight so per-record lookups during an import stay cheap.
package taxonomy
