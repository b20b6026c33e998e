// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"ab1align/internal/align"
)

// Config is the full set of tunables, loadable from a TOML file.
type Config struct {
	Scoring align.Policy `toml:"scoring"`
	Report  Report       `toml:"report"`
	Limits  Limits       `toml:"limits"`
	Server  Server       `toml:"server"`
}

type Report struct {
	Width        int    `toml:"width"`
	Labels       bool   `toml:"labels"`
	ArtifactName string `toml:"artifact_name"`
}

type Limits struct {
	MaxSequenceLength int `toml:"max_sequence_length"` // 0 = unlimited
	MaxCells          int `toml:"max_cells"`           // 0 = unlimited
}

type Server struct {
	Addr           string `toml:"addr"`
	UploadDir      string `toml:"upload_dir"`
	ResultsDir     string `toml:"results_dir"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scoring: align.DefaultPolicy,
		Report: Report{
			Width:        60,
			Labels:       false,
			ArtifactName: "alignment_result.txt",
		},
		Limits: Limits{
			MaxSequenceLength: 50000,
			MaxCells:          400_000_000,
		},
		Server: Server{
			Addr:           "127.0.0.1:5000",
			UploadDir:      "uploads",
			ResultsDir:     "results",
			MaxUploadBytes: 16 << 20,
		},
	}
}

// Load decodes TOML from r over the defaults. Keys that do not map to a
// field are returned so callers can warn about them.
func Load(r io.Reader) (Config, []string, error) {
	conf := Default()
	md, err := toml.NewDecoder(r).Decode(&conf)
	if err != nil {
		return Config{}, nil, fmt.Errorf("config: %w", err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := conf.Validate(); err != nil {
		return Config{}, unknown, err
	}
	return conf, unknown, nil
}

// LoadFile is Load for a path.
func LoadFile(path string) (Config, []string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("config: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Validate checks values that would make a run meaningless.
func (c Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if c.Report.Width < 1 {
		return fmt.Errorf("config: report.width must be ≥ 1")
	}
	if c.Limits.MaxSequenceLength < 0 || c.Limits.MaxCells < 0 {
		return fmt.Errorf("config: limits must be ≥ 0")
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be ≥ 0")
	}
	return nil
}

// ValidateServer adds the checks that only matter when serving uploads.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	s := c.Server
	if s.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if s.UploadDir == "" || s.ResultsDir == "" {
		return fmt.Errorf("config: server.upload_dir and server.results_dir must not be empty")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be > 0")
	}
	return nil
}

// FlagMerge fills every field whose flag was not set explicitly from file.
// set holds the names of flags given on the command line.
func (c *Config) FlagMerge(file Config, set map[string]bool) {
	if !set["match"] {
		c.Scoring.Match = file.Scoring.Match
	}
	if !set["mismatch"] {
		c.Scoring.Mismatch = file.Scoring.Mismatch
	}
	if !set["gap-open"] {
		c.Scoring.GapOpen = file.Scoring.GapOpen
	}
	if !set["gap-extend"] {
		c.Scoring.GapExtend = file.Scoring.GapExtend
	}
	if !set["width"] {
		c.Report.Width = file.Report.Width
	}
	if !set["labels"] {
		c.Report.Labels = file.Report.Labels
	}
	if !set["artifact-name"] {
		c.Report.ArtifactName = file.Report.ArtifactName
	}
	if !set["max-length"] {
		c.Limits.MaxSequenceLength = file.Limits.MaxSequenceLength
	}
	if !set["max-cells"] {
		c.Limits.MaxCells = file.Limits.MaxCells
	}
	if !set["addr"] {
		c.Server.Addr = file.Server.Addr
	}
	if !set["upload-dir"] {
		c.Server.UploadDir = file.Server.UploadDir
	}
	if !set["results-dir"] {
		c.Server.ResultsDir = file.Server.ResultsDir
	}
	if !set["max-upload"] {
		c.Server.MaxUploadBytes = file.Server.MaxUploadBytes
	}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
