// Package server exposes the processing pipeline over HTTP.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/cache"
	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/pipeline"
)

const (
	DefaultMaxUploadBytes = 10 << 20
	DefaultRequestTimeout = 120 * time.Second
	// ServiceName is reported by the health check.
	ServiceName = "BlogDigest API"
)

// Processor runs requests. *pipeline.Pipeline implements it.
type Processor interface {
	Process(ctx context.Context, req pipeline.Request) (*content.Result, error)
	SupportedOptions(t content.InputType) []content.Option
}

// Config tunes the HTTP surface.
type Config struct {
	// MaxUploadBytes caps request bodies. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64
	// RequestTimeout bounds each request. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
	// AllowedOrigins for CORS. Empty means any origin.
	AllowedOrigins []string
}

// Server holds the HTTP handlers.
type Server struct {
	proc    Processor
	results *cache.ResultStore
	cfg     Config
}

// New creates a server. results may be nil, in which case processed results
// are not kept and GET /results always answers 404.
func New(proc Processor, results *cache.ResultStore, cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Server{proc: proc, results: results, cfg: cfg}
}

// Routes returns the router with all middleware installed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.cfg.AllowedOrigins))
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Post("/process", s.handleProcess)
	r.Get("/options/{inputType}", s.handleOptions)
	r.Get("/results/{id}", s.handleResult)
	return r
}

type envelope struct {
	Status string       `json:"status"`
	Data   envelopeData `json:"data"`
}

type envelopeData struct {
	ID            string            `json:"id"`
	OriginalInput string            `json:"original_input"`
	InputType     content.InputType `json:"input_type"`
	Option        content.Option    `json:"option"`
	Result        *content.Result   `json:"result"`
}

type errorBody struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	kindInvalidRequest = "invalid_request"
	kindNotFound       = "not_found"
	kindTooLarge       = "payload_too_large"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": ServiceName})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "inputType")
	t, err := content.ParseInputType(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "Invalid input type: "+raw)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"input_type": t,
			"options":    s.proc.SupportedOptions(t),
		},
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if s.results != nil {
		if b, ok := s.results.Load(chi.URLParam(r, "id")); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(b)
			return
		}
	}
	writeError(w, http.StatusNotFound, kindNotFound, "Result not found")
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		s.processUpload(w, r)
		return
	}
	s.processJSON(w, r)
}

func (s *Server) processJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, kindTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "No data provided")
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "No data provided")
		return
	}
	var req processRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "Invalid request body")
		return
	}
	t, msg := req.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, msg)
		return
	}

	ref := content.Reference{Value: strings.TrimSpace(req.Input)}
	if t == content.InputImage {
		data, err := base64.StdEncoding.DecodeString(ref.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, kindInvalidRequest, "Invalid image data")
			return
		}
		ref = content.Reference{Data: data, Name: "inline_image"}
	}
	s.run(w, r, pipeline.Request{
		InputType:      t,
		Option:         content.Option(strings.TrimSpace(req.Option)),
		Reference:      ref,
		TargetLanguage: req.TargetLanguage,
	}, req.Input)
}

func (s *Server) processUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, kindTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "No data provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" without a filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeError(w, http.StatusBadRequest, kindInvalidRequest, "No file selected")
			return
		}
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "No data provided")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if header.Filename == "" || name == "." || name == "/" {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "No file selected")
		return
	}
	if !allowedFile(name) {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "File type not allowed")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "Could not read upload")
		return
	}

	option := strings.TrimSpace(r.FormValue("option"))
	if option == "" {
		option = string(content.OptionExtractText)
	}
	s.run(w, r, pipeline.Request{
		InputType:      content.InputImage,
		Option:         content.Option(option),
		Reference:      content.Reference{Data: data, Name: name},
		TargetLanguage: r.FormValue("target_language"),
	}, name)
}

// run processes req and writes the success envelope or the mapped error.
func (s *Server) run(w http.ResponseWriter, r *http.Request, req pipeline.Request, original string) {
	res, err := s.proc.Process(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("process failed")
		}
		writeError(w, status, kindName(err), err.Error())
		return
	}
	id := cache.NewID()
	b, err := json.Marshal(envelope{
		Status: "success",
		Data: envelopeData{
			ID:            id,
			OriginalInput: original,
			InputType:     req.InputType,
			Option:        req.Option,
			Result:        res,
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, string(content.KindInternal), "encode response: "+err.Error())
		return
	}
	if s.results != nil {
		s.results.Save(id, b)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch content.KindOf(err) {
	case content.KindEmptyInput, content.KindUnsupportedCombination:
		return http.StatusBadRequest
	case content.KindNoContent:
		return http.StatusUnprocessableEntity
	case content.KindExtraction, content.KindTranslation:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func kindName(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return string(content.KindOf(err))
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Status: "error", Kind: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
