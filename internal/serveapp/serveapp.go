// internal/serveapp/serveapp.go
package serveapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"ab1align/internal/cli"
	"ab1align/internal/cmdutil"
	"ab1align/internal/config"
	"ab1align/internal/pipeline"
	"ab1align/internal/runutil"
	"ab1align/internal/server"
	"ab1align/internal/version"
)

const shutdownGrace = 5 * time.Second

// listen is swapped in tests.
var listen = net.Listen

// RunContext is the ab1align-serve entry point. It serves until ctx is
// cancelled and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("ab1align-serve")
	fs.SetOutput(io.Discard)
	cli.InstallServeUsage(fs)

	opts, err := cli.ParseServeArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return cmdutil.ExitOK
		}
		cmdutil.Errorf(stderr, "%v", err)
		fs.Usage()
		return cmdutil.ExitUsage
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ab1align-serve version %s\n", version.Version)
		return cmdutil.ExitOK
	}

	if opts.ConfigFile != "" {
		file, unknown, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return cmdutil.ExitUsage
		}
		for _, k := range unknown {
			cmdutil.Warnf(stderr, opts.Quiet, "%s: unknown key %q ignored", opts.ConfigFile, k)
		}
		opts.Config.FlagMerge(file, opts.Set)
	}
	conf := opts.Config
	if err := conf.ValidateServer(); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitUsage
	}
	for _, w := range runutil.ValidateLimits(conf.Limits.MaxSequenceLength, conf.Limits.MaxCells) {
		cmdutil.Warnf(stderr, opts.Quiet, "%s", w)
	}
	runner, err := pipeline.NewRunner(conf)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitCode(err)
	}
	for _, d := range []string{conf.Server.UploadDir, conf.Server.ResultsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return cmdutil.ExitOutput
		}
	}

	logOut := stderr
	if opts.Quiet {
		logOut = io.Discard
	}
	logger := log.New(logOut, "ab1align-serve: ", log.LstdFlags)

	srv := &server.Server{
		Runner:       runner,
		UploadDir:    conf.Server.UploadDir,
		ResultsDir:   conf.Server.ResultsDir,
		ArtifactName: conf.Report.ArtifactName,
		MaxUpload:    conf.Server.MaxUploadBytes,
		Log:          logger,
	}
	hs := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := listen("tcp", conf.Server.Addr)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitUsage
	}
	logger.Printf("listening on http://%s", ln.Addr())

	done := make(chan error, 1)
	go func() { done <- hs.Serve(ln) }()

	select {
	case err := <-done:
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitOutput
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	<-done
	logger.Printf("stopped")
	return cmdutil.ExitInterrupted
}
