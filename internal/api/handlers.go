package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/domquery"
)

type queryRequest struct {
	Markup  string        `json:"markup"`
	Mode    string        `json:"mode"` // "html" (default), "xml", "markdown"
	XPath   string        `json:"xpath"`
	Options *queryOptions `json:"options"`
}

type queryOptions struct {
	// Recover defaults to true when omitted.
	Recover   *bool `json:"recover"`
	NoError   bool  `json:"no_error"`
	NoWarning bool  `json:"no_warning"`
	NoBlanks  bool  `json:"no_blanks"`
}

type nodeJSON struct {
	Kind  string            `json:"kind"`
	Tag   string            `json:"tag,omitempty"`
	Path  string            `json:"path"`
	Text  string            `json:"text"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Markup == "" {
		jsonError(w, "markup is required", http.StatusBadRequest)
		return
	}
	if req.XPath == "" {
		jsonError(w, "xpath is required", http.StatusBadRequest)
		return
	}

	// One document per request, released when the request ends; documents
	// are never shared across handlers.
	doc, err := parseRequest(req)
	if err != nil {
		var pe *domquery.ParseError
		if errors.As(err, &pe) {
			jsonErrorKind(w, err.Error(), pe.Kind.String(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer doc.Close()

	res, err := doc.Evaluate(req.XPath)
	if err != nil {
		var xe *domquery.XPathError
		if errors.As(err, &xe) {
			jsonErrorKind(w, err.Error(), xe.Kind.String(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(renderResult(res))
}

func parseRequest(req queryRequest) (*domquery.Document, error) {
	switch req.Mode {
	case "", "html":
		return domquery.ParseWithOptions(req.Markup, htmlOptions(req.Options))
	case "xml":
		opts := domquery.DefaultXMLOptions()
		if req.Options != nil {
			opts.NoBlanks = req.Options.NoBlanks
		}
		return domquery.ParseXMLWithOptions(req.Markup, opts)
	case "markdown":
		return domquery.ParseMarkdown(req.Markup)
	default:
		return nil, errors.New("unsupported mode: " + req.Mode)
	}
}

func htmlOptions(o *queryOptions) domquery.ParseOptions {
	opts := domquery.DefaultOptions()
	if o == nil {
		return opts
	}
	if o.Recover != nil {
		opts.Recover = *o.Recover
	}
	opts.NoError = o.NoError
	opts.NoWarning = o.NoWarning
	opts.NoBlanks = o.NoBlanks
	return opts
}

func renderResult(res domquery.XPathResult) map[string]any {
	out := map[string]any{"type": res.Kind().String()}
	switch res.Kind() {
	case domquery.ResultNodeSet:
		nodes, _ := res.NodeSet()
		rendered := make([]nodeJSON, 0, len(nodes))
		for _, n := range nodes {
			rendered = append(rendered, nodeJSON{
				Kind:  n.Kind().String(),
				Tag:   n.TagName(),
				Path:  n.Path(),
				Text:  strings.TrimSpace(n.Text()),
				Attrs: n.AttrMap(),
			})
		}
		out["nodes"] = rendered
	case domquery.ResultNumber:
		out["number"] = res.Number()
	case domquery.ResultBoolean:
		out["boolean"] = res.Boolean()
	case domquery.ResultString:
		out["string"] = res.String()
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func jsonErrorKind(w http.ResponseWriter, msg, kind string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "kind": kind})
}
