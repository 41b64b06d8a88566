package config

// Config represents the complete configuration structure
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GitHubConfig holds GitHub API connection details
type GitHubConfig struct {
	URL      string `mapstructure:"url"`
	Token    string `mapstructure:"token"`
	PageSize int    `mapstructure:"page_size"`
	Timeout  int    `mapstructure:"timeout"` // per-request timeout in seconds
}

// DownloadConfig contains download behavior settings
type DownloadConfig struct {
	Folder      string `mapstructure:"folder"`
	Concurrency int    `mapstructure:"concurrency"`
	Limit       int    `mapstructure:"limit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
