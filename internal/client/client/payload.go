package client

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PayloadKind tags the shape of the "errors" member of an error body.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadFlat
	PayloadFieldMap
	PayloadSingle
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadFlat:
		return "flat"
	case PayloadFieldMap:
		return "field-map"
	case PayloadSingle:
		return "single"
	default:
		return "none"
	}
}

// ErrorPayload is an error response body parsed once at the HTTP boundary.
//
// Kind describes "errors": Flat fills List, FieldMap fills Fields and Single
// fills Single. Message and Title mirror the members of the same name. Raw is
// set when the body was not a JSON object (plain text or a bare JSON string).
type ErrorPayload struct {
	Kind    PayloadKind
	List    []string
	Fields  map[string][]string
	Single  string
	Message string
	Title   string
	Raw     string
}

// IsEmpty reports whether the payload carries nothing usable.
func (p ErrorPayload) IsEmpty() bool {
	return p.Kind == PayloadNone && p.Message == "" && p.Title == "" && p.Raw == ""
}

type rawErrorBody struct {
	Errors  json.RawMessage `json:"errors"`
	Message json.RawMessage `json:"message"`
	Title   json.RawMessage `json:"title"`
}

// ParsePayload decodes body into an ErrorPayload. It never fails: anything it
// cannot interpret ends up in Raw or is dropped.
func ParsePayload(body []byte) ErrorPayload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ErrorPayload{}
	}

	switch trimmed[0] {
	case '{':
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return ErrorPayload{Raw: strings.TrimSpace(s)}
		}
		return ErrorPayload{Raw: string(trimmed)}
	case '[':
		// some backends answer 400 with a bare list of messages
		if list := stringList(trimmed); len(list) > 0 {
			return ErrorPayload{Kind: PayloadFlat, List: list}
		}
		return ErrorPayload{}
	default:
		return ErrorPayload{Raw: string(trimmed)}
	}

	var rb rawErrorBody
	if err := json.Unmarshal(trimmed, &rb); err != nil {
		return ErrorPayload{Raw: string(trimmed)}
	}

	p := ErrorPayload{
		Message: stringValue(rb.Message),
		Title:   stringValue(rb.Title),
	}
	parseErrors(&p, rb.Errors)
	return p
}

func parseErrors(p *ErrorPayload, raw json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return
	}

	switch raw[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return
		}
		fields := make(map[string][]string, len(m))
		for k, v := range m {
			if msgs := stringList(v); len(msgs) > 0 {
				fields[k] = msgs
			}
		}
		if len(fields) > 0 {
			p.Kind = PayloadFieldMap
			p.Fields = fields
		}
	case '[':
		if list := stringList(raw); len(list) > 0 {
			p.Kind = PayloadFlat
			p.List = list
		}
	case '"':
		if s := stringValue(raw); s != "" {
			p.Kind = PayloadSingle
			p.Single = s
		}
	}
}

// stringList accepts either a JSON array of strings or a single string.
func stringList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '"' {
		if s := stringValue(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := stringValue(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
