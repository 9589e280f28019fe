package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sucre/format"
	"github.com/dhamidi/sucre/js/parser"
	"github.com/dhamidi/sucre/transform"
)

var log = commonlog.GetLogger("sucre.ui")

//go:embed templates
var embeddedFS embed.FS

const maxSourceBytes = 1 << 20

const defaultSource = `function partition<T>(
  list: T[],
  test: (T, number) => boolean,
): [T[], T[]] {
  const yes: T[] = [];
  const no: T[] = [];
  list.forEach((x, i) => (test(x, i) ? yes : no).push(x));
  return [yes, no];
}
`

// Server is the transpiler playground: a page to paste code into and a JSON
// API behind it.
type Server struct {
	mux        *http.ServeMux
	templateFS fs.FS
}

func NewServer() (*Server, error) {
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))
	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		mux:        http.NewServeMux(),
		templateFS: templateFS,
	}

	s.mux.HandleFunc("POST /transform", s.handleTransform)
	s.mux.HandleFunc("POST /tokens", s.handleTokens)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render parses templates on every request so edits under ui/templates show
// up without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

// Request is the body of POST /transform and POST /tokens.
type Request struct {
	Code       string   `json:"code"`
	Transforms []string `json:"transforms"`
}

type Response struct {
	Code  string         `json:"code,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type PageData struct {
	Code       string
	Output     string
	Error      *ErrorResponse
	Transforms map[string]bool
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON: %w", err)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data: %w", err)
	}
	req.Code = r.FormValue("code")
	req.Transforms = r.Form["transforms"]
	return req, nil
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Content-Type") == "application/json" || r.Header.Get("Accept") == "application/json"
}

func toErrorResponse(err error) *ErrorResponse {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return &ErrorResponse{Message: se.Message, Line: se.Line, Column: se.Column}
	}
	return &ErrorResponse{Message: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp Response
	status := http.StatusOK
	res, err := transform.Transform(req.Code, transform.Options{Transforms: req.Transforms})
	if err != nil {
		resp.Error = toErrorResponse(err)
		status = http.StatusUnprocessableEntity
	} else {
		resp.Code = res.Code
	}

	if wantsJSON(r) {
		writeJSON(w, status, resp)
		return
	}
	s.render(w, "index.html", PageData{
		Code:       req.Code,
		Output:     resp.Code,
		Error:      resp.Error,
		Transforms: transformSet(req.Transforms),
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	features, err := transform.Features(req.Transforms)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: toErrorResponse(err)})
		return
	}
	file, err := parser.Parse(req.Code, parser.WithFeatures(features))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, Response{Error: toErrorResponse(err)})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := format.NewJSONEncoder(w).Encode(file); err != nil {
		log.Errorf("encode tokens: %s", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", PageData{
		Code:       defaultSource,
		Transforms: transformSet([]string{transform.TypeScript}),
	})
}

func transformSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS serves files from primaryPath on disk when present, else from
// secondary.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
