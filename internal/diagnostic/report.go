package diagnostic

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/schema"
)

// Fix describes a suggested repair the solver could have applied (or did
// apply, under Config.AllowFixes) instead of failing a constraint outright.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured failure record produced by the
// checker. All error builders return *Report; wrap it with WrapReport to
// return it as a Go error.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error so it survives errors.As
// unwrapping up through the solver's call stack.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown checker error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given code, deriving its Kind from the
// registry. The code is not validated: an unregistered code gets an
// empty Kind.
func New(code, message string, span *ast.Span) *Report {
	info, _ := GetInfo(code)
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    code,
		Kind:    info.Kind,
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}
}

// WithFix attaches a suggested fix and returns the Report for chaining.
func (r *Report) WithFix(f *Fix) *Report {
	r.Fix = f
	return r
}

// WithData merges a key into the Report's structured data and returns it.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// ToJSON renders the Report as deterministic, schema-versioned JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	data, err := schema.MarshalDeterministic(r)
	if err != nil {
		return "", err
	}
	if compact || schema.CompactMode {
		return string(data), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return string(data), nil
	}
	return pretty.String(), nil
}
