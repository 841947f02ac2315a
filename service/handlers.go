package service

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ziahq/specstudio/document"
	"github.com/ziahq/specstudio/internal/naming"
	"github.com/ziahq/specstudio/marker"
	"github.com/ziahq/specstudio/serializer"
	"github.com/ziahq/specstudio/validator"
)

// maxBodyBytes bounds request bodies; OpenAPI documents edited by hand
// stay far under this.
const maxBodyBytes = 4 << 20

type contentRequest struct {
	Content string `json:"content"`
}

type validateResponse struct {
	Result  *validator.Result `json:"result"`
	Markers []marker.Marker   `json:"markers"`
}

type renderRequest struct {
	Format string `json:"format"`
}

type renderResponse struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
	MIMEType string `json:"mimeType"`
}

type importResponse struct {
	Document    *document.Document `json:"document"`
	FullyParsed bool               `json:"fullyParsed"`
	ParseError  string             `json:"parseError,omitempty"`
}

func (s *Service) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	result := s.val.Validate(req.Content)
	s.metrics.observeValidation(result, time.Since(start))
	s.writeJSON(w, http.StatusOK, validateResponse{
		Result:  result,
		Markers: marker.FromDiagnostics(result.Diagnostics(), req.Content),
	})
}

func (s *Service) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	doc := s.doc
	title := ""
	if doc.Info != nil {
		title = doc.Info.Title
	}
	var content string
	var err error
	switch req.Format {
	case "", "yaml":
		req.Format = "yaml"
		content = serializer.Serialize(doc)
	case "json":
		content, err = serializer.SerializeJSON(doc)
	default:
		s.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "format must be yaml or json")
		return
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("render failed")
		s.writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	s.metrics.observeRender(req.Format)
	s.writeJSON(w, http.StatusOK, renderResponse{
		Content:  content,
		FileName: naming.ExportFileName(title),
		MIMEType: naming.YAMLMIMEType,
	})
}

func (s *Service) handleImport(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	outcome := s.imp.Merge(s.doc, req.Content)
	s.snapshot()
	resp := importResponse{Document: s.doc, FullyParsed: outcome.FullyParsed}
	if outcome.ParseError != nil {
		resp.ParseError = outcome.ParseError.Error()
	}
	body, err := json.Marshal(resp)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	s.metrics.observeImport(outcome)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Service) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body, err := json.Marshal(s.doc)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Service) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	var doc document.Document
	if !s.decode(w, r, &doc) {
		return
	}

	s.mu.Lock()
	s.doc = &doc
	s.snapshot()
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGetBuffer(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, contentRequest{Content: s.docs.LoadBuffer()})
}

func (s *Service) handlePutBuffer(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.docs.SaveBuffer(req.Content); err != nil {
		s.log.Warn().Err(err).Msg("buffer flush failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON request body, writing the error response itself on
// failure.
func (s *Service) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Msg("response encode failed")
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
