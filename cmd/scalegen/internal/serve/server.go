package serve

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/schema"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/codegen"
	"github.com/broady/scalegen/metadata"
)

// GenerateQuery is the query string of GET /generate. Empty values fall back
// to the server's configuration.
type GenerateQuery struct {
	Root     string `schema:"root"`
	Format   string `schema:"format"`
	Comments *bool  `schema:"comments"`
	Indent   int    `schema:"indent"`
}

// Server renders one decoded descriptor on demand.
type Server struct {
	metadata *metadata.Prefixed
	defaults codegen.Config
	logger   *slog.Logger
	decoder  *schema.Decoder
}

// NewServer returns a Server for p. defaults supplies the root namespace,
// format and rendering options used when a request leaves them out.
// p is expected to have been validated already.
func NewServer(p *metadata.Prefixed, defaults *codegen.Config) *Server {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(false)

	s := &Server{
		metadata: p,
		defaults: *defaults,
		decoder:  dec,
		logger:   defaults.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler returns the HTTP routes:
//
//	GET /generate  rendered output for the query's root and format
//	GET /healthz   liveness probe
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /generate", s.handleGenerate)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var q GenerateQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, r, scalegen.Errorf(scalegen.CodeInvalidMetadata, "invalid query: %v", err), http.StatusBadRequest)
		return
	}

	cfg := s.defaults
	cfg.Metadata = s.metadata
	cfg.Input = ""
	cfg.OutDir = ""
	cfg.Sink = nil
	cfg.SkipValidation = true
	cfg.Logger = s.logger
	if q.Root != "" {
		cfg.RootNamespace = q.Root
	}
	if q.Format != "" {
		cfg.Formats = []string{q.Format}
	}
	if len(cfg.Formats) > 1 {
		cfg.Formats = cfg.Formats[:1]
	}
	if q.Comments != nil {
		cfg.EmitComments = q.Comments
	}
	if q.Indent > 0 {
		cfg.IndentSize = q.Indent
	}

	if _, err := codegen.Renderers(&cfg); err != nil {
		s.writeError(w, r, scalegen.NewError(scalegen.CodeInvalidMetadata, err.Error()), http.StatusBadRequest)
		return
	}

	res, err := codegen.Generate(r.Context(), &cfg)
	if err != nil {
		s.writeError(w, r, err, 0)
		return
	}

	f := res.Files[0]
	switch f.Format {
	case codegen.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+f.Path+`"`)
	w.Write(f.Content)
}

type errorResponse struct {
	Error *scalegen.Error `json:"error"`
}

// writeError writes err as a JSON envelope. A zero status is derived from the error code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	var e *scalegen.Error
	if !errors.As(err, &e) {
		e = scalegen.NewError(scalegen.CodeInternal, err.Error())
	} else if prefix := strings.TrimSuffix(err.Error(), e.Error()); prefix != "" {
		// Keep the wrapping context ("module X: call y: ") in the message.
		e = &scalegen.Error{Code: e.Code, Message: prefix + e.Message, Details: e.Details}
	}
	if status == 0 {
		status = e.Code.HTTPStatus()
	}
	s.logger.DebugContext(r.Context(), "generation failed", slog.String("code", string(e.Code)), slog.Any("error", err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: e})
}
