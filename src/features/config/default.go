package config

var defaultConfig = Config{
	Server: Server{
		PrintRoutes: false,
		Port:        3535,
	},
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Listing: Listing{
		BaseURL:        "http://localhost:8080",
		UserAgent:      "playdir/1.0",
		Timeout:        0,
		TolerateStatus: false,
	},
	Resolver: Resolver{
		PatternMode: "literal",
		Concurrency: 1,
	},
	Database: Database{
		Path: "./playdir.db",
	},
	Metrics: Metrics{
		Enabled: true,
		Path:    "/metrics",
	},
	WatchConfig: false,
}

// createDefaultConfig returns a copy of the default configuration
func createDefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}
