package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resuscan/internal/analysis"
	"resuscan/internal/errors"
	"resuscan/internal/observability"
	"resuscan/internal/render"
	"resuscan/internal/store"
	"resuscan/internal/types"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req ResumeTextRequest
	if !s.decode(w, r, &req) {
		return
	}
	score, err := s.deps.Analyzer.ScoreATS(r.Context(), req.ResumeText, req.JobTitle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.Float64("ats.overall", score.Overall))
	writeJSON(w, http.StatusOK, score)
}

func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	var req ResumeTextRequest
	if !s.decode(w, r, &req) {
		return
	}
	gap, err := s.deps.Analyzer.SkillGap(req.ResumeText, req.JobTitle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gap)
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	var req TipsRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Analyzer.Tips(types.ComponentScores{
		Keyword:     req.KeywordScore,
		Format:      req.FormatScore,
		Readability: req.ReadabilityScore,
		Structure:   req.StructureScore,
	}))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Analyzer.Recommend(req.MissingSkills, req.JobTitle))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	text, err := s.deps.Analyzer.Extract(r.Context(), upload.name, upload.contentType, upload.data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ExtractedText{FileName: upload.name, Text: text})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	jobTitle := strings.TrimSpace(r.FormValue("job_title"))
	if jobTitle == "" {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, "job_title is required", nil))
		return
	}

	result, err := s.deps.Analyzer.Analyze(r.Context(), analysis.Request{
		FileName:    upload.name,
		ContentType: upload.contentType,
		Data:        upload.data,
		JobTitle:    jobTitle,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImproveBullets(w http.ResponseWriter, r *http.Request) {
	var req ImproveRequest
	if !s.decode(w, r, &req) {
		return
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.Int("request.bullets", len(req.BulletPoints)))

	result, err := s.deps.Analyzer.ImproveBullets(r.Context(), req.BulletPoints, req.JobTitle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.TemplateList{Templates: render.List()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.deps.Renderer == nil {
		s.unavailable(w, "rendering")
		return
	}
	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeDocument(w, r, req.Resume, req.Template, "")
}

func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.unavailable(w, "version storage")
		return
	}
	var req SaveVersionRequest
	if !s.decode(w, r, &req) {
		return
	}
	version, err := s.saveVersion(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, version)
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.unavailable(w, "version storage")
		return
	}
	versions, err := s.deps.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.VersionList{Versions: versions})
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.unavailable(w, "version storage")
		return
	}
	version, err := s.deps.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, version)
}

func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.unavailable(w, "version storage")
		return
	}
	id := r.PathValue("id")
	name, err := s.deps.Store.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteVersionResponse{ID: id, Name: name, Deleted: true})
}

// handleSaveAndRender stores the resume as a new version and answers with
// its PDF. The version id is returned in X-Version-ID.
func (s *Server) handleSaveAndRender(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil || s.deps.Renderer == nil {
		s.unavailable(w, "version rendering")
		return
	}
	var req SaveVersionRequest
	if !s.decode(w, r, &req) {
		return
	}
	version, err := s.saveVersion(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, r, version.ResumeData, req.Template, version.ID)
}

func (s *Server) saveVersion(r *http.Request, req SaveVersionRequest) (types.Version, error) {
	version, err := s.deps.Store.Save(r.Context(), req.Name, req.JobTitle, req.Resume)
	s.om.RecordBusinessMetric(r.Context(), observability.MetricVersionSaved, err == nil)
	return version, err
}

// attachment builds a Content-Disposition value; quotes and non-ASCII in
// the user supplied name are escaped or RFC 2231 encoded.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, resume types.Resume, templateID, versionID string) {
	doc, err := s.deps.Renderer.RenderDocument(r.Context(), resume, templateID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(render.FileName(resume.Name, time.Now())))
	w.Header().Set("X-Template", doc.Template)
	if doc.Key != "" {
		w.Header().Set("X-Object-Key", doc.Key)
	}
	if versionID != "" {
		w.Header().Set("X-Version-ID", versionID)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		s.Logger.LogError(err, "Failed to write document response")
	}
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

// readUpload reads the multipart "file" field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	maxMemory := s.MaxRequestSize
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"expected a multipart form with a file field", requestBodyError(err)))
		return upload{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, "file field is required", err))
		return upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read uploaded file", err))
		return upload{}, false
	}

	return upload{
		name:        header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}, true
}

// decode parses a JSON body and validates it, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := parseJSONRequest(r, v); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, err.Error(), err))
		return false
	}
	if err := validate.Struct(v); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, validationMessage(err), err))
		return false
	}
	return true
}

// validationMessage names the first failing field by its JSON name.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum of %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
}

func parseJSONRequest(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("content-type must be application/json")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return requestBodyError(err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func requestBodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
	}
	return fmt.Errorf("failed to read request body: %w", err)
}

// statusFor maps error categories to HTTP statuses.
func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeAI:
		return http.StatusBadGateway
	case errors.ErrorTypeNetwork:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	span := trace.SpanFromContext(r.Context())
	span.RecordError(err)

	title := http.StatusText(status)
	message := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		title = appErr.Code
		message = appErr.Message
		span.SetAttributes(attribute.String("error.type", string(appErr.Type)))
	}

	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed", "endpoint", r.URL.Path, "status", status)
	}
	s.om.RecordBusinessMetric(r.Context(), observability.MetricHTTPError, false,
		attribute.String("endpoint", r.URL.Path),
		attribute.Int("status", status))

	writeErrorResponse(w, title, message, status)
}

func (s *Server) unavailable(w http.ResponseWriter, feature string) {
	writeErrorResponse(w, "Service unavailable", feature+" is not configured", http.StatusServiceUnavailable)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, title, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: title, Message: message})
}
