package config

// SearchConfig задает семантику текстового поиска по задачам.
type SearchConfig struct {
	CaseInsensitive bool `yaml:"case_insensitive" env:"TASKS_SEARCH_CASE_INSENSITIVE" env-default:"false"`
}
