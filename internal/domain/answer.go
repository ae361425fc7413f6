package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags which field of an Answer holds the value.
type AnswerKind string

const (
	AnswerText   AnswerKind = "text"
	AnswerNumber AnswerKind = "number"
	AnswerBool   AnswerKind = "boolean"
	AnswerList   AnswerKind = "list"
)

// Answer is a response value or a correct-answer reference. On the wire it is
// a bare JSON string, number, boolean or array of strings.
type Answer struct {
	Kind   AnswerKind
	Text   string
	Number float64
	Bool   bool
	List   []string
}

func TextAnswer(s string) Answer    { return Answer{Kind: AnswerText, Text: s} }
func NumberAnswer(n float64) Answer { return Answer{Kind: AnswerNumber, Number: n} }
func BoolAnswer(b bool) Answer      { return Answer{Kind: AnswerBool, Bool: b} }
func ListAnswer(l ...string) Answer { return Answer{Kind: AnswerList, List: append([]string(nil), l...)} }

// Equal reports strict equality: same kind and same value.
func (a Answer) Equal(other Answer) bool {
	if a.Kind != other.Kind {
		return false
	}
	switch a.Kind {
	case AnswerText:
		return a.Text == other.Text
	case AnswerNumber:
		return a.Number == other.Number
	case AnswerBool:
		return a.Bool == other.Bool
	case AnswerList:
		if len(a.List) != len(other.List) {
			return false
		}
		for i := range a.List {
			if a.List[i] != other.List[i] {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the answer for prompts and logs.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerText:
		return a.Text
	case AnswerNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case AnswerBool:
		return strconv.FormatBool(a.Bool)
	case AnswerList:
		return strings.Join(a.List, ", ")
	}
	return ""
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerNumber:
		return json.Marshal(a.Number)
	case AnswerBool:
		return json.Marshal(a.Bool)
	case AnswerList:
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	}
	return []byte("null"), nil
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
	case '[':
		var l []string
		if err := json.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("answer list must contain only strings: %w", err)
		}
		*a = Answer{Kind: AnswerList, List: l}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("answer must be a string, number, boolean or list of strings: %w", err)
		}
		*a = NumberAnswer(n)
	}
	return nil
}

// IsZero reports whether no value was supplied.
func (a Answer) IsZero() bool {
	return a.Kind == ""
}
