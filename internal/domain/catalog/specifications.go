package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SpecValue is a specification display value: either text or a number.
type SpecValue struct {
	text    string
	number  float64
	numeric bool
}

func Text(s string) SpecValue   { return SpecValue{text: s} }
func Number(f float64) SpecValue { return SpecValue{number: f, numeric: true} }

func (v SpecValue) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

type Spec struct {
	Name  string
	Value SpecValue
}

// Label turns a camelCase attribute name into a display label:
// "screenSize" -> "Screen Size".
func (s Spec) Label() string {
	var b strings.Builder
	for i, r := range s.Name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return out
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

// Specifications is an ordered attribute-name -> value mapping. It encodes as a
// JSON object and keeps the source key order on decode.
type Specifications []Spec

func (s Specifications) Get(name string) (SpecValue, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec.Value, true
		}
	}
	return SpecValue{}, false
}

func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, spec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(spec.Name)
		if err != nil {
			return nil, err
		}
		val, err := spec.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts only an object of string or number values.
func (s *Specifications) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: expected object")
	}
	out := Specifications{}
	seen := map[string]struct{}{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("specifications: duplicate attribute %q", key)
		}
		seen[key] = struct{}{}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case string:
			out = append(out, Spec{Name: key, Value: Text(v)})
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return fmt.Errorf("specifications: attribute %q: %w", key, err)
			}
			out = append(out, Spec{Name: key, Value: Number(f)})
		default:
			return fmt.Errorf("specifications: attribute %q must be a string or number", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
