package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "/usr/local/var/catalogrank/catalog.json"
	}
	if cfg.Catalog.Table == "" {
		cfg.Catalog.Table = "products"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.PrefilterThreshold == 0 {
		cfg.Search.PrefilterThreshold = 5000
	}
	if cfg.Search.PrefilterCandidates == 0 {
		cfg.Search.PrefilterCandidates = 1000
	}
	if cfg.Search.Fuzziness == 0 {
		cfg.Search.Fuzziness = 2
	}
	if cfg.Search.SuggestionThreshold == 0 {
		cfg.Search.SuggestionThreshold = 0.5
	}
	cfg.Ranking.ApplyDefaults()
}
