// Package prompt describes the modal questions the core asks the user.
// The window shell and the CLI each provide an implementation.
package prompt

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one labelled input of a form.
type Field struct {
	Name    string
	Label   string
	Default string
}

// Schema is a titled form.
type Schema struct {
	Title  string
	Fields []Field
}

// Result maps field names to the text the user entered.
type Result map[string]string

// Int parses the named field as an integer.
func (r Result) Int(name string) (int, error) {
	s := strings.TrimSpace(r[name])
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, s)
	}
	return n, nil
}

// Float parses the named field as a float.
func (r Result) Float(name string) (float64, error) {
	s := strings.TrimSpace(r[name])
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return f, nil
}

// Prompter asks modal questions. ok is false when the user cancelled.
type Prompter interface {
	Confirm(title, message string) (ok bool)
	Ask(s Schema) (r Result, ok bool)
}

// Defaults returns a result holding every field's default.
func (s Schema) Defaults() Result {
	r := make(Result, len(s.Fields))
	for _, f := range s.Fields {
		r[f.Name] = f.Default
	}
	return r
}

// Fixed answers every question the same way. It backs non-interactive
// commands and tests.
type Fixed struct {
	Yes    bool
	Answer Result
	// Asked records the schemas passed to Ask.
	Asked []Schema
	// Confirmed records the messages passed to Confirm.
	Confirmed []string
}

// Confirm returns f.Yes.
func (f *Fixed) Confirm(title, message string) bool {
	f.Confirmed = append(f.Confirmed, message)
	return f.Yes
}

// Ask returns the schema defaults overlaid with f.Answer. A nil Answer
// cancels.
func (f *Fixed) Ask(s Schema) (Result, bool) {
	f.Asked = append(f.Asked, s)
	if f.Answer == nil {
		return nil, false
	}
	r := s.Defaults()
	for k, v := range f.Answer {
		r[k] = v
	}
	return r, true
}
