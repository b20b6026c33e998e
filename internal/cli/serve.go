package cli

import (
	"errors"
	"flag"

	"ab1align/internal/cliutil"
	"ab1align/internal/config"
)

// ServeOptions holds the ab1align-serve flags.
type ServeOptions struct {
	Config     config.Config
	ConfigFile string
	Set        map[string]bool

	Quiet   bool
	Version bool
}

// ParseServeArgs registers and parses the server flags.
func ParseServeArgs(fs *flag.FlagSet, argv []string) (ServeOptions, error) {
	opt := ServeOptions{Config: config.Default()}
	var help bool

	registerCore(fs, &opt.Config, &opt.ConfigFile)

	s := &opt.Config.Server
	fs.StringVar(&s.Addr, "addr", s.Addr, "listen address")
	fs.StringVar(&s.UploadDir, "upload-dir", s.UploadDir, "directory for uploaded files")
	fs.StringVar(&s.ResultsDir, "results-dir", s.ResultsDir, "directory for saved reports")
	fs.Int64Var(&s.MaxUploadBytes, "max-upload", s.MaxUploadBytes, "maximum request body in bytes")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress request logging")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	opt.Set = cliutil.SetFlags(fs, aliases)
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, errors.New("ab1align-serve takes no positional arguments")
	}
	if s.Addr == "" {
		return opt, errors.New("--addr must not be empty")
	}
	if s.MaxUploadBytes <= 0 {
		return opt, errors.New("--max-upload must be > 0")
	}
	return opt, nil
}
