// Package integrity provides health checks for the country taxonomy.
//
// Unlike the 'country' package which writes terms, this package only inspects
// what has been stored.
//
// # Checks Provided
//
//   - Schema: the taxonomy tables exist with every column the models declare.
//   - Translations: every term has exactly one translation per registered language.
//   - Snapshots: the snapshot bucket exists; reports how many documents it holds.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/translations : Runs the translation check.
//   - GET /integrity/snapshots : Runs the snapshot check (404 when disabled).
package integrity
