// internal/server/server.go
package server

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"ab1align/internal/align"
	"ab1align/internal/ingest"
	"ab1align/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Form field names of the upload form.
const (
	FieldTrace     = "ab1_file"
	FieldReference = "reference_file"
)

// Server serves the upload form and the saved reports.
type Server struct {
	Runner       *pipeline.Runner
	UploadDir    string // parent of the per-request upload directories
	ResultsDir   string
	ArtifactName string
	MaxUpload    int64 // request body limit in bytes
	Log          *log.Logger
}

// Handler returns the routes:
//
//	GET  /               upload form
//	POST /               align the uploaded pair, redirect to /result
//	GET  /result?id=     rendered report
//	GET  /results/<id>   report download
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/result", s.result)
	mux.HandleFunc("/results/", s.download)
	return mux
}

type formPage struct {
	Error   string
	Scoring align.Policy
}

type resultPage struct {
	ID     string
	Report string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.renderForm(w, http.StatusOK, "")
	case http.MethodPost:
		s.upload(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUpload)
	if err := r.ParseMultipartForm(s.MaxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.renderForm(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds the %d byte limit", s.MaxUpload))
			return
		}
		s.renderForm(w, http.StatusBadRequest, "Both AB1 and reference files are required")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	trace, traceHdr, err1 := r.FormFile(FieldTrace)
	ref, refHdr, err2 := r.FormFile(FieldReference)
	if trace != nil {
		defer trace.Close()
	}
	if ref != nil {
		defer ref.Close()
	}
	if err1 != nil || err2 != nil {
		s.renderForm(w, http.StatusBadRequest, "Both AB1 and reference files are required")
		return
	}
	if traceHdr.Filename == "" || refHdr.Filename == "" {
		s.renderForm(w, http.StatusBadRequest, "No selected file")
		return
	}
	if !ingest.AllowedUpload(traceHdr.Filename) || !ingest.AllowedUpload(refHdr.Filename) {
		s.renderForm(w, http.StatusBadRequest, "Invalid file type. Allowed file types are: .ab1, .fasta, .fa")
		return
	}

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		s.fail(w, "create upload dir", err)
		return
	}
	dir, err := os.MkdirTemp(s.UploadDir, "req-")
	if err != nil {
		s.fail(w, "create upload dir", err)
		return
	}
	defer os.RemoveAll(dir)

	tracePath, err := saveUpload(dir, traceHdr.Filename, trace)
	if err != nil {
		s.fail(w, "save upload", err)
		return
	}
	refPath, err := saveUpload(dir, refHdr.Filename, ref)
	if err != nil {
		s.fail(w, "save upload", err)
		return
	}
	// Both uploads may carry the same name; keep them apart.
	if refPath == tracePath {
		s.renderForm(w, http.StatusBadRequest, "The trace and reference files must have different names")
		return
	}

	out, err := s.Runner.Run(r.Context(), pipeline.Request{ReferencePath: refPath, TracePath: tracePath})
	if err != nil {
		var (
			ie *ingest.InputIngestionError
			ce *align.AlignmentComputationError
		)
		switch {
		case errors.As(err, &ie), errors.As(err, &ce):
			s.Log.Printf("align %s vs %s: %v", traceHdr.Filename, refHdr.Filename, err)
			s.renderForm(w, http.StatusBadRequest, "An error occurred: "+userMessage(err, dir))
		case errors.Is(err, context.Canceled):
			// client went away
		default:
			s.fail(w, "align", err)
		}
		return
	}

	id, err := newArtifactID(s.ArtifactName)
	if err != nil {
		s.fail(w, "artifact id", err)
		return
	}
	if _, err := pipeline.SaveArtifact(s.ResultsDir, id, out.Report); err != nil {
		s.fail(w, "save report", err)
		return
	}
	s.Log.Printf("aligned %s (%d bp) vs %s (%d bp): score %.2f -> %s",
		out.Trace.ID, len(out.Trace.Seq), out.Reference.ID, len(out.Reference.Seq), out.Alignment.Score, id)
	http.Redirect(w, r, "/result?id="+url.QueryEscape(id), http.StatusSeeOther)
}

func (s *Server) result(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	text, ok := s.readArtifact(w, r, id)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "result.html", resultPage{ID: id, Report: text})
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/results/")
	text, ok := s.readArtifact(w, r, id)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id))
	_, _ = io.WriteString(w, text)
}

func (s *Server) readArtifact(w http.ResponseWriter, r *http.Request, id string) (string, bool) {
	if !validID(id) {
		http.NotFound(w, r)
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(s.ResultsDir, id))
	if errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return "", false
	}
	if err != nil {
		s.fail(w, "read report", err)
		return "", false
	}
	return string(b), true
}

func (s *Server) renderForm(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, "upload.html", formPage{Error: msg, Scoring: s.Runner.Aligner.Policy})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.Log.Printf("render %s: %v", name, err)
	}
}

// fail logs err and answers 500 without exposing server paths.
func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.Log.Printf("%s: %v", what, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func saveUpload(dir, name string, src multipart.File) (string, error) {
	path := filepath.Join(dir, filepath.Base(filepath.Clean("/"+name)))
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return path, nil
	}
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fh, src); err != nil {
		fh.Close()
		return "", err
	}
	return path, fh.Close()
}

// newArtifactID returns a fresh "<16 hex>_<name>" file name.
func newArtifactID(name string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]) + "_" + filepath.Base(name), nil
}

func validID(id string) bool {
	return id != "" && !strings.HasPrefix(id, ".") && filepath.Base(id) == id && !strings.ContainsAny(id, `/\`)
}

// userMessage strips the per-request directory from err's text.
func userMessage(err error, dir string) string {
	return strings.ReplaceAll(err.Error(), dir+string(filepath.Separator), "")
}
