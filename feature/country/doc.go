// Package country imports the restcountries dataset into the country vocabulary.
//
// # Flow
//
//   - Fetcher: one GET to the configured URL, body decoded as a JSON array.
//   - MapRecord: validates each element and maps it to taxonomy fields.
//   - Importer: reconciles records one by one through reconcile.Engine. Bad
//     records are logged and skipped; a failed fetch aborts the run.
//   - Archiver: optionally stores each fetched document in object storage and
//     can replay it later as a Source.
//
// # HTTP Endpoints
//
//   - GET /countries?lang=xx : Lists countries named in lang.
//   - GET /countries/:id : One country with all translations.
//   - POST /countries/import : Runs an import (409 while one is running).
//   - GET /countries/import/plan : Dry run.
package country
