package openapi

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Response returns the response declared for status, matched exactly.
func (o *Operation) Response(status string) (*Response, bool) {
	for _, r := range o.Responses {
		if strings.EqualFold(r.Status, status) {
			return r, true
		}
	}
	return nil, false
}

// SelectResponse picks the response to mock: the preferred status if declared,
// else the first 2XX in declared order, else "default", else the first one.
// It returns nil for an operation without responses.
func (o *Operation) SelectResponse(preferred string) *Response {
	if preferred != "" {
		if r, ok := o.Response(preferred); ok {
			return r
		}
	}
	for _, r := range o.Responses {
		if code, err := strconv.Atoi(r.Status); err == nil && code >= 200 && code < 300 {
			return r
		}
		if strings.EqualFold(r.Status, "2XX") {
			return r
		}
	}
	if r, ok := o.Response("default"); ok {
		return r
	}
	if len(o.Responses) > 0 {
		return o.Responses[0]
	}
	return nil
}

// StatusCode converts the declared status into an HTTP status code. Ranges
// like "4XX" map to their first code; "default" maps to 200.
func (r *Response) StatusCode() int {
	if code, err := strconv.Atoi(r.Status); err == nil && code >= 100 && code <= 599 {
		return code
	}
	if len(r.Status) == 3 && strings.EqualFold(r.Status[1:], "XX") && r.Status[0] >= '1' && r.Status[0] <= '5' {
		return int(r.Status[0]-'0') * 100
	}
	return http.StatusOK
}

// SelectContent picks the media type to generate. A declared type named in
// accept wins; otherwise application/json, then any +json type, then the
// first declared. It returns nil when the response has no content.
func (r *Response) SelectContent(accept string) *MediaType {
	if len(r.Content) == 0 {
		return nil
	}
	for _, part := range strings.Split(accept, ",") {
		want, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || want == "*/*" {
			continue
		}
		for _, mt := range r.Content {
			if strings.EqualFold(baseType(mt.Type), want) {
				return mt
			}
		}
	}
	for _, mt := range r.Content {
		if strings.EqualFold(baseType(mt.Type), "application/json") {
			return mt
		}
	}
	for _, mt := range r.Content {
		if strings.HasSuffix(strings.ToLower(baseType(mt.Type)), "+json") {
			return mt
		}
	}
	return r.Content[0]
}

func baseType(t string) string {
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}
