package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/oasmock/pkg/httputil"
	"github.com/getmockd/oasmock/pkg/openapi"
)

// OperationsPath lists the loaded operations as JSON.
const OperationsPath = "/__oasmock/operations"

// Preference is what a client asked for through the Prefer header, e.g.
// "Prefer: statusCode=404, example=notFound".
type Preference struct {
	Status  string
	Example string
}

// ParsePrefer reads statusCode and example from Prefer header values.
// Entries are separated by commas or semicolons; unknown entries are ignored.
func ParsePrefer(values []string) Preference {
	var p Preference
	for _, v := range values {
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
			key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
			if !ok {
				continue
			}
			val = strings.Trim(strings.TrimSpace(val), `"`)
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "statuscode", "code", "status":
				p.Status = val
			case "example":
				p.Example = val
			}
		}
	}
	return p
}

func (s *Server) handleMock(w http.ResponseWriter, r *http.Request) {
	route, err := s.doc.Find(r)
	switch {
	case errors.Is(err, openapi.ErrPathNotFound):
		httputil.WriteError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("no operation matches %s %s", r.Method, r.URL.Path))
		return
	case errors.Is(err, openapi.ErrMethodNotAllowed):
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			fmt.Sprintf("method %s is not declared for %s", r.Method, r.URL.Path))
		return
	case err != nil:
		s.log.Error("route lookup failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	op := route.Operation

	if s.validate {
		if err := s.doc.ValidateRequest(r, route); err != nil {
			s.log.Debug("request rejected", "operation", op.Method+" "+op.Path, "error", err)
			httputil.WriteErrorWithDetails(w, http.StatusBadRequest, "invalid_request",
				"request does not match the operation", strings.Split(err.Error(), " | "))
			return
		}
	}

	pref := ParsePrefer(r.Header.Values("Prefer"))
	resp := op.SelectResponse(pref.Status)
	if resp == nil {
		httputil.WriteError(w, http.StatusNotImplemented, "no_response",
			fmt.Sprintf("%s %s declares no responses", op.Method, op.Path))
		return
	}
	if resp.Err != nil {
		s.generationFailed(w, r, op, resp, resp.Err)
		return
	}
	status := resp.StatusCode()

	for _, h := range resp.Headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			continue
		}
		v, err := s.gen.Generate(r.Context(), h.Node, "")
		if err != nil {
			s.generationFailed(w, r, op, resp, fmt.Errorf("header %s: %w", h.Name, err))
			return
		}
		w.Header().Set(h.Name, httputil.HeaderValue(v))
	}

	mt := resp.SelectContent(r.Header.Get("Accept"))
	if mt == nil {
		httputil.WriteNoContent(w, status)
		return
	}
	body, err := s.gen.Generate(r.Context(), mt.Node, pref.Example)
	if err != nil {
		s.generationFailed(w, r, op, resp, err)
		return
	}
	encoded, err := httputil.EncodeBody(mt.Type, body)
	if err != nil {
		s.generationFailed(w, r, op, resp, err)
		return
	}
	w.Header().Set("Content-Type", mt.Type)
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

func (s *Server) generationFailed(w http.ResponseWriter, r *http.Request, op *openapi.Operation, resp *openapi.Response, err error) {
	s.log.Error("failed to generate response",
		"operation", op.Method+" "+op.Path,
		"status", resp.Status,
		"request_id", RequestID(r.Context()),
		"error", err,
	)
	for k := range w.Header() {
		if k != RequestIDHeader && !strings.HasPrefix(k, "Access-Control-") && k != "Vary" {
			w.Header().Del(k)
		}
	}
	httputil.WriteError(w, http.StatusInternalServerError, "generation_failed", err.Error())
}

// OperationInfo describes one operation in the OperationsPath listing.
type OperationInfo struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	ID       string   `json:"operationId,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Statuses []string `json:"statuses"`
}

func (s *Server) handleOperations(w http.ResponseWriter, _ *http.Request) {
	ops := make([]OperationInfo, 0, len(s.doc.Operations))
	for _, op := range s.doc.Operations {
		info := OperationInfo{
			Method:   op.Method,
			Path:     op.Path,
			ID:       op.ID,
			Summary:  op.Summary,
			Statuses: make([]string, 0, len(op.Responses)),
		}
		for _, r := range op.Responses {
			info.Statuses = append(info.Statuses, r.Status)
		}
		ops = append(ops, info)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"title":      s.doc.Title,
		"version":    s.doc.Version,
		"count":      len(ops),
		"operations": ops,
	})
}
