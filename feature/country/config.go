package country

// SourceConfig holds the remote dataset settings.
type SourceConfig struct {
	// URL is the restcountries v3.1 endpoint returning a JSON array of countries.
	URL string `mapstructure:"url" default:"https://restcountries.com/v3.1/all?fields=name,cca2,cca3,ccn3,region,subregion,latlng"`
	// TimeoutSeconds bounds the whole request, body included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// SnapshotConfig controls archiving of fetched documents to object storage.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled" default:"false"`
	Prefix  string `mapstructure:"prefix" default:"snapshots/countries"`
}
