package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/IvanShishkin/pathhound/pkg/glob"
)

// Config represents the finder configuration
type Config struct {
	// Match settings
	CaseInsensitive bool `mapstructure:"case_insensitive"` // fold case while matching
	FollowSymlinks  bool `mapstructure:"follow_symlinks"`  // recurse through directory symlinks
	MaxDepth        int  `mapstructure:"max_depth"`        // directory levels below each root (-1 = unlimited)
	Workers         int  `mapstructure:"workers"`          // concurrent directory reads in stream mode
	AllowTraversal  bool `mapstructure:"allow_traversal"`  // accept patterns with ".." segments
	Stream          bool `mapstructure:"stream"`           // print results as they are found

	// Filter settings
	MinSize   string `mapstructure:"min_size"`   // e.g. 10K, 2M
	MaxSize   string `mapstructure:"max_size"`   // e.g. 650K
	FileType  string `mapstructure:"file_type"`  // file, dir, symlink, any
	NewerThan string `mapstructure:"newer_than"` // modified within this duration (e.g. 24h)
	OlderThan string `mapstructure:"older_than"` // modified before this duration ago

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json
	OutputFile   string `mapstructure:"output_file"`   // output file path, empty for stdout
	ShowMetrics  bool   `mapstructure:"show_metrics"`  // include cache metrics in the report
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("case_insensitive", false)
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("max_depth", -1)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("allow_traversal", false)
	v.SetDefault("stream", false)
	v.SetDefault("min_size", "")
	v.SetDefault("max_size", "")
	v.SetDefault("file_type", "any")
	v.SetDefault("newer_than", "")
	v.SetDefault("older_than", "")
	v.SetDefault("report_format", "text")
	v.SetDefault("output_file", "")
	v.SetDefault("show_metrics", false)

	// Read environment variables
	v.SetEnvPrefix("PATHHOUND")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GlobOptions converts the configuration into engine options.
func (c *Config) GlobOptions() (glob.Options, error) {
	preds, err := c.predicates()
	if err != nil {
		return glob.Options{}, err
	}

	return glob.NewBuilder().
		CaseSensitive(!c.CaseInsensitive).
		FollowSymlinks(c.FollowSymlinks).
		MaxDepth(c.MaxDepth).
		MaxInflight(c.Workers).
		RejectPathTraversal(!c.AllowTraversal).
		Predicates(preds).
		Build()
}

func (c *Config) predicates() (glob.Predicates, error) {
	var p glob.Predicates

	if c.MinSize != "" {
		n, err := ParseSize(c.MinSize)
		if err != nil {
			return p, fmt.Errorf("invalid min size %q: %w", c.MinSize, err)
		}
		p.MinSize = &n
	}
	if c.MaxSize != "" {
		n, err := ParseSize(c.MaxSize)
		if err != nil {
			return p, fmt.Errorf("invalid max size %q: %w", c.MaxSize, err)
		}
		p.MaxSize = &n
	}

	switch c.FileType {
	case "", "any":
		p.FileType = glob.FileTypeAny
	case "file", "f":
		p.FileType = glob.FileTypeFile
	case "dir", "d", "directory":
		p.FileType = glob.FileTypeDir
	case "symlink", "l", "link":
		p.FileType = glob.FileTypeSymlink
	default:
		return p, fmt.Errorf("unknown file type %q", c.FileType)
	}

	now := time.Now()
	if c.NewerThan != "" {
		d, err := time.ParseDuration(c.NewerThan)
		if err != nil {
			return p, fmt.Errorf("invalid newer-than duration %q: %w", c.NewerThan, err)
		}
		cutoff := now.Add(-d)
		p.MTimeAfter = &cutoff
	}
	if c.OlderThan != "" {
		d, err := time.ParseDuration(c.OlderThan)
		if err != nil {
			return p, fmt.Errorf("invalid older-than duration %q: %w", c.OlderThan, err)
		}
		cutoff := now.Add(-d)
		p.MTimeBefore = &cutoff
	}

	return p, nil
}

// ParseSize parses a human size string (plain bytes or a K/M/G suffix)
func ParseSize(sizeStr string) (int64, error) {
	if len(sizeStr) == 0 {
		return 0, fmt.Errorf("empty size")
	}

	// Get last character (unit)
	last := sizeStr[len(sizeStr)-1]
	var multiplier int64 = 1

	switch last {
	case 'K', 'k':
		multiplier = 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	var size int64
	if _, err := fmt.Sscanf(sizeStr, "%d", &size); err != nil {
		return 0, fmt.Errorf("not a size: %w", err)
	}
	if size < 0 {
		return 0, fmt.Errorf("negative size")
	}

	return size * multiplier, nil
}
