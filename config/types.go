package config

// Config represents the complete configuration structure
type Config struct {
	Articut  ArticutConfig  `mapstructure:"articut"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ArticutConfig holds Articut API credentials and connection details
type ArticutConfig struct {
	Username string `mapstructure:"username"`
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// DefaultsConfig contains default request parameters applied when the
// command line does not override them
type DefaultsConfig struct {
	Version       string `mapstructure:"version"`
	Level         string `mapstructure:"level"`
	Pinyin        string `mapstructure:"pinyin"`
	OpendataPlace bool   `mapstructure:"opendata_place"`
	Wikidata      bool   `mapstructure:"wikidata"`
	Chemical      bool   `mapstructure:"chemical"`
	Emoji         bool   `mapstructure:"emoji"`
	TimeRef       string `mapstructure:"time_ref"`
	UserDict      string `mapstructure:"user_dict"`
}

// BatchConfig contains batch processing settings
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains named filter preset definitions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
