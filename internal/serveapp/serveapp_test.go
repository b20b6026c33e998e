package serveapp

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestVersionAndHelp(t *testing.T) {
	var out, errB bytes.Buffer
	if code := RunContext(context.Background(), []string{"--version"}, &out, &errB); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "ab1align-serve version ") {
		t.Fatalf("version output %q", out.String())
	}
	out.Reset()
	if code := RunContext(context.Background(), []string{"-h"}, &out, &errB); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "--upload-dir") {
		t.Fatalf("help text incomplete:\n%s", out.String())
	}
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	zeroCap := filepath.Join(dir, "zero.toml")
	if err := os.WriteFile(zeroCap, []byte("[server]\nmax_upload_bytes = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, argv := range [][]string{
		{"--config", zeroCap},
		{"--width", "0"},
		{"extra-arg"},
		{"--max-upload", "0"},
		{"--addr", ""},
		{"--gap-open", "NaN"},
		{"--config", filepath.Join(t.TempDir(), "missing.toml")},
	} {
		var out, errB bytes.Buffer
		if code := RunContext(context.Background(), argv, &out, &errB); code != 2 {
			t.Errorf("%v: exit %d, want 2 (stderr %q)", argv, code, errB.String())
		}
	}
}

func TestServeUntilCancelled(t *testing.T) {
	addrs := make(chan net.Addr, 1)
	listen = func(network, addr string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err == nil {
			addrs <- ln.Addr()
		}
		return ln, err
	}
	defer func() { listen = net.Listen }()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	codes := make(chan int, 1)
	go func() {
		codes <- RunContext(ctx, []string{
			"-q",
			"--upload-dir", filepath.Join(dir, "up"),
			"--results-dir", filepath.Join(dir, "res"),
		}, io.Discard, io.Discard)
	}()

	var addr net.Addr
	select {
	case addr = <-addrs:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	resp, err := http.Get("http://" + addr.String() + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status %d", resp.StatusCode)
	}

	cancel()
	select {
	case code := <-codes:
		if code != 130 {
			t.Fatalf("exit %d, want 130", code)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
