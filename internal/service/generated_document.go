package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// GeneratedTestDocument is the schema-validated form of the external service's
// output. It is consumed by the normalizer and then discarded; it is never
// persisted as-is.
type GeneratedTestDocument struct {
	Sections map[string]GeneratedSection `json:"sections"`
}

type GeneratedSection struct {
	Parts []GeneratedPart `json:"parts"`
}

type GeneratedPart struct {
	Part         FlexInt       `json:"part"`
	Instructions string        `json:"instructions,omitempty"`
	Passage      string        `json:"passage,omitempty"`
	GroupID      FlexInt       `json:"groupId,omitempty"`
	Questions    []RawQuestion `json:"questions"`
}

// RawQuestion is loosely typed: the model routinely omits fields or emits
// numbers where strings are expected, so the flexible wrappers absorb that
// instead of failing the whole document.
type RawQuestion struct {
	ID            FlexInt     `json:"id,omitempty"`
	Type          string      `json:"type,omitempty"`
	Text          string      `json:"text,omitempty"`
	Options       FlexStrings `json:"options,omitempty"`
	CorrectAnswer FlexString  `json:"correctAnswer,omitempty"`
	AudioScript   string      `json:"audioScript,omitempty"`
	Explanation   string      `json:"explanation,omitempty"`
}

// TotalQuestions counts questions across all sections and parts.
func (d *GeneratedTestDocument) TotalQuestions() int {
	total := 0
	for _, section := range d.Sections {
		for _, part := range section.Parts {
			total += len(part.Questions)
		}
	}
	return total
}

// FlexInt unmarshals from a JSON number or a numeric string; anything else
// decodes to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}

// FlexString unmarshals from a JSON string, number, or bool.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(data))
	return nil
}

// FlexStrings unmarshals from a JSON array of anything stringish; a bare
// string becomes a one-element slice, anything else decodes to nil.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var raw []FlexString
		if err := json.Unmarshal(data, &raw); err != nil {
			*f = nil
			return nil
		}
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			out = append(out, string(v))
		}
		*f = out
		return nil
	}
	var single FlexString
	if err := json.Unmarshal(data, &single); err != nil || single == "" {
		*f = nil
		return nil
	}
	*f = []string{string(single)}
	return nil
}
