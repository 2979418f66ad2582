package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pagefit/pkg/cache"
	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/design"
	"github.com/matzehuels/pagefit/pkg/edoc"
	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/pipeline"
)

// ReportIDHeader carries the archived report ID on raw artifact responses.
const ReportIDHeader = "X-Report-ID"

// ConvertResponse is the JSON body of a conversion without a format.
type ConvertResponse struct {
	ReportID string           `json:"reportId"`
	Mode     convert.Mode     `json:"mode"`
	Document *edoc.Document   `json:"document"`
	Stats    convert.Stats    `json:"stats"`
	Records  []convert.Record `json:"records"`
	Cached   bool             `json:"cached"`
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default": edoc.DefaultPaperType,
		"papers":  edoc.Papers(),
	})
}

// handleConvert converts the design JSON in the request body. Query
// parameters: paper, scale, format, margins, indexes, refresh.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, ok := readDesign(w, r)
	if !ok {
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" {
		opts.Formats = []string{format}
	} else {
		opts.Formats = []string{pipeline.FormatJSON}
	}
	opts.Source = r.URL.Query().Get("source")

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), res.Report); err != nil {
		s.log.Warn("archive report failed", "id", res.Report.ID, "err", err)
	}

	if format == "" {
		writeJSON(w, http.StatusOK, ConvertResponse{
			ReportID: res.Report.ID,
			Mode:     res.Conversion.Mode,
			Document: res.Conversion.Document,
			Stats:    res.Conversion.Stats(),
			Records:  res.Conversion.Records,
			Cached:   res.CacheInfo.ConvertHit,
		})
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(ReportIDHeader, res.Report.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// handleStats converts the design and returns only its statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	data, ok := readDesign(w, r)
	if !ok {
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := design.Decode(data)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Convert(r.Context(), doc, cache.Hash(data), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Stats())
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}
	reports, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	type item struct {
		ID       string        `json:"id"`
		Source   string        `json:"source,omitempty"`
		Created  string        `json:"createdAt"`
		Mode     convert.Mode  `json:"mode"`
		Stats    convert.Stats `json:"stats"`
		Elements int           `json:"elements"`
	}
	out := make([]item, 0, len(reports))
	for _, rep := range reports {
		out = append(out, item{
			ID:       rep.ID,
			Source:   rep.Source,
			Created:  rep.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Mode:     rep.Mode,
			Stats:    rep.Stats,
			Elements: len(rep.Elements),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": out})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// readDesign reads a size-limited request body. It writes the error
// response itself and reports whether the caller should continue.
func readDesign(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, design.MaxInputBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "design document exceeds 10 MB", string(apperr.ErrCodeInvalidInput), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		writeError(w, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read request body"))
		return nil, false
	}
	if len(data) == 0 {
		writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "request body is empty"))
		return nil, false
	}
	return data, true
}

func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		PaperType: q.Get("paper"),
		Margins:   q.Get("margins") == "true",
		Indexes:   q.Get("indexes") == "true",
		Refresh:   q.Get("refresh") == "true",
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apperr.New(apperr.ErrCodeInvalidScale, "invalid scale factor: %q", v)
		}
		opts.ScaleFactor = f
	}
	return opts, nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperr.IsInvalid(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.Is(err, apperr.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	status := statusFor(err)
	msg := apperr.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	jsonError(w, msg, string(code), status)
}

func jsonError(w http.ResponseWriter, msg, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}
