package model

// Config is the persisted application configuration.
type Config struct {
	App           string `json:"app" mapstructure:"app"`
	Version       string `json:"version" mapstructure:"version"`
	OutputDirPath string `json:"output_dir_path" mapstructure:"output_dir_path"`
}
