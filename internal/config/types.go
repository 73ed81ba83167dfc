package config

// Config is the top-level structure parsed from covgate YAML.
type Config struct {
	Project  Project  `yaml:"project"`
	Coverage Coverage `yaml:"coverage"`
	Git      Git      `yaml:"git"`
	Maven    Maven    `yaml:"maven"`
	History  History  `yaml:"history"`
}

// Project locates the Maven project and its source layout.
type Project struct {
	Dir        string `yaml:"dir"`
	SourceRoot string `yaml:"source_root"`
	TestRoot   string `yaml:"test_root"`
}

// Coverage controls the commit gate's coverage behavior.
type Coverage struct {
	Report    string  `yaml:"report"`
	Threshold float64 `yaml:"threshold"`
	Include   bool    `yaml:"include"`
}

// Git holds remote and staging-filter settings. A non-empty Excludes
// list replaces the built-in exclusion patterns entirely.
type Git struct {
	Remote   string   `yaml:"remote"`
	Base     string   `yaml:"base"`
	Excludes []string `yaml:"excludes"`
}

// Maven configures how the build tool is invoked.
type Maven struct {
	Command string   `yaml:"command"`
	Goals   []string `yaml:"goals"`
}

// History configures the local run-history database.
type History struct {
	Path    string `yaml:"path"`
	Disable bool   `yaml:"disable"`
}
