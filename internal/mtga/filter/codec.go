package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// DecodeError reports where in a serialized tree decoding failed. Path uses
// a JSONPath-like notation such as "$.children[2]".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode filter at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// node is the serialized shape shared by every filter type. Pointer fields
// distinguish an absent field from its zero value.
type node struct {
	Type         string    `json:"type" yaml:"type"`
	Faces        *string   `json:"faces,omitempty" yaml:"faces,omitempty"`
	Contains     *string   `json:"contains,omitempty" yaml:"contains,omitempty"`
	Regex        *bool     `json:"regex,omitempty" yaml:"regex,omitempty"`
	Pattern      *string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Operation    *string   `json:"operation,omitempty" yaml:"operation,omitempty"`
	Operand      *float64  `json:"operand,omitempty" yaml:"operand,omitempty"`
	Varies       *bool     `json:"varies,omitempty" yaml:"varies,omitempty"`
	Colors       *[]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Multicolored *bool     `json:"multicolored,omitempty" yaml:"multicolored,omitempty"`
	Cost         *string   `json:"cost,omitempty" yaml:"cost,omitempty"`
	Selected     *[]string `json:"selected,omitempty" yaml:"selected,omitempty"`
	Restricted   *bool     `json:"restricted,omitempty" yaml:"restricted,omitempty"`
	Mode         *string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Comment      *string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Children     *[]node   `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *node) present() map[string]bool {
	return map[string]bool{
		"faces":        n.Faces != nil,
		"contains":     n.Contains != nil,
		"regex":        n.Regex != nil,
		"pattern":      n.Pattern != nil,
		"operation":    n.Operation != nil,
		"operand":      n.Operand != nil,
		"varies":       n.Varies != nil,
		"colors":       n.Colors != nil,
		"multicolored": n.Multicolored != nil,
		"cost":         n.Cost != nil,
		"selected":     n.Selected != nil,
		"restricted":   n.Restricted != nil,
		"mode":         n.Mode != nil,
		"comment":      n.Comment != nil,
		"children":     n.Children != nil,
	}
}

type kind int

const (
	kindText kind = iota
	kindNumber
	kindVariable
	kindColor
	kindManaCost
	kindTypeLine
	kindOptions
	kindLegality
	kindGroup
)

type fieldSet struct {
	required []string
	optional []string
}

var kindFields = map[kind]fieldSet{
	kindText:     {required: []string{"contains", "pattern"}, optional: []string{"faces", "regex"}},
	kindNumber:   {required: []string{"operation", "operand"}, optional: []string{"faces"}},
	kindVariable: {required: []string{"operation", "operand"}, optional: []string{"faces", "varies"}},
	kindColor:    {required: []string{"contains", "colors"}, optional: []string{"faces", "multicolored"}},
	kindManaCost: {required: []string{"contains", "cost"}, optional: []string{"faces"}},
	kindTypeLine: {required: []string{"contains", "pattern"}, optional: []string{"faces"}},
	kindOptions:  {required: []string{"contains", "selected"}, optional: []string{"faces"}},
	kindLegality: {required: []string{"contains", "selected"}, optional: []string{"faces", "restricted"}},
	kindGroup:    {required: []string{"mode"}, optional: []string{"comment", "children"}},
}

func kindOf(typ string) (kind, bool) {
	switch {
	case TextAttribute(typ).valid():
		return kindText, true
	case NumberAttribute(typ).valid():
		return kindNumber, true
	case VariableAttribute(typ).valid():
		return kindVariable, true
	case ColorAttribute(typ).valid():
		return kindColor, true
	case OptionsAttribute(typ).valid():
		return kindOptions, true
	}
	switch typ {
	case TypeManaCost:
		return kindManaCost, true
	case TypeTypeLine:
		return kindTypeLine, true
	case TypeLegality:
		return kindLegality, true
	case TypeGroup:
		return kindGroup, true
	}
	return 0, false
}

// checkFields rejects missing required fields and fields the type does not
// use. A variable leaf with varies set needs no comparison.
func checkFields(k kind, n *node) error {
	fields := kindFields[k]
	present := n.present()

	required := fields.required
	if k == kindVariable && n.Varies != nil && *n.Varies {
		required = nil
	}
	for _, name := range required {
		if !present[name] {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	allowed := make(map[string]bool, len(fields.required)+len(fields.optional))
	for _, name := range fields.required {
		allowed[name] = true
	}
	for _, name := range fields.optional {
		allowed[name] = true
	}
	for name, ok := range present {
		if ok && !allowed[name] {
			return fmt.Errorf("%w: %s", ErrUnexpectedField, name)
		}
	}
	return nil
}

// DecodeOptions controls decoding of serialized filters. The zero value
// defaults missing face selections to AnyFace and imposes no pattern limit.
type DecodeOptions struct {
	DefaultFaces     FaceSelection
	MaxPatternLength int
}

// Unmarshal decodes a JSON filter tree with the default options.
func Unmarshal(data []byte) (Filter, error) {
	return DecodeOptions{}.Unmarshal(data)
}

// UnmarshalYAML decodes a YAML filter tree with the default options.
func UnmarshalYAML(data []byte) (Filter, error) {
	return DecodeOptions{}.UnmarshalYAML(data)
}

// ReadFile decodes a filter file with the default options.
func ReadFile(path string) (Filter, error) {
	return DecodeOptions{}.ReadFile(path)
}

// Unmarshal decodes a JSON filter tree. Unknown fields are rejected.
func (o DecodeOptions) Unmarshal(data []byte) (Filter, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var n node
	if err := dec.Decode(&n); err != nil {
		return nil, &DecodeError{Path: "$", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Path: "$", Err: errors.New("trailing data after filter")}
	}
	return o.decode(&n, "$")
}

// UnmarshalYAML decodes a YAML filter tree. Unknown fields are rejected.
func (o DecodeOptions) UnmarshalYAML(data []byte) (Filter, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var n node
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, &DecodeError{Path: "$", Err: err}
	}
	return o.decode(&n, "$")
}

// ReadFile decodes a filter file, choosing YAML for .yaml and .yml files and
// JSON otherwise.
func (o DecodeOptions) ReadFile(path string) (Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter file: %w", err)
	}
	if IsYAMLPath(path) {
		return o.UnmarshalYAML(data)
	}
	return o.Unmarshal(data)
}

// IsYAMLPath reports whether path names a YAML file.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (o DecodeOptions) decode(n *node, path string) (Filter, error) {
	f, err := o.decodeNode(n, path)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return f, nil
}

func (o DecodeOptions) decodeNode(n *node, path string) (Filter, error) {
	if n.Type == "" {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}
	k, ok := kindOf(n.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, n.Type)
	}
	if err := checkFields(k, n); err != nil {
		return nil, err
	}

	if k == kindGroup {
		return o.decodeGroup(n, path)
	}

	faces := o.DefaultFaces
	if n.Faces != nil {
		var err error
		if faces, err = ParseFaceSelection(*n.Faces); err != nil {
			return nil, err
		}
	}

	var mode containment.Mode
	if n.Contains != nil {
		var err error
		if mode, err = containment.Parse(*n.Contains); err != nil {
			return nil, err
		}
	}

	switch k {
	case kindText:
		if err := o.checkPattern(*n.Pattern); err != nil {
			return nil, err
		}
		return NewTextFilter(TextAttribute(n.Type), mode, *n.Pattern, deref(n.Regex), faces)
	case kindNumber:
		op, err := ParseComparison(*n.Operation)
		if err != nil {
			return nil, err
		}
		return NewNumberFilter(NumberAttribute(n.Type), op, *n.Operand, faces)
	case kindVariable:
		op := Equal
		if n.Operation != nil {
			var err error
			if op, err = ParseComparison(*n.Operation); err != nil {
				return nil, err
			}
		}
		return NewVariableNumberFilter(VariableAttribute(n.Type), op, deref(n.Operand), deref(n.Varies), faces)
	case kindColor:
		colors := make([]mana.Color, 0, len(*n.Colors))
		for _, s := range *n.Colors {
			c, err := mana.ParseColor(s)
			if err != nil {
				return nil, err
			}
			colors = append(colors, c)
		}
		return NewColorFilter(ColorAttribute(n.Type), mode, colors, deref(n.Multicolored), faces)
	case kindManaCost:
		cost, err := mana.ParseCost(*n.Cost)
		if err != nil {
			return nil, err
		}
		return NewManaCostFilter(mode, cost, faces)
	case kindTypeLine:
		if err := o.checkPattern(*n.Pattern); err != nil {
			return nil, err
		}
		return NewTypeLineFilter(mode, *n.Pattern, faces)
	case kindOptions:
		return NewOptionsFilter(OptionsAttribute(n.Type), mode, *n.Selected, faces)
	case kindLegality:
		return NewLegalityFilter(mode, *n.Selected, deref(n.Restricted), faces)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, n.Type)
}

func (o DecodeOptions) decodeGroup(n *node, path string) (Filter, error) {
	mode, err := ParseGroupMode(*n.Mode)
	if err != nil {
		return nil, err
	}
	var children []Filter
	if n.Children != nil {
		children = make([]Filter, 0, len(*n.Children))
		for i := range *n.Children {
			child, err := o.decode(&(*n.Children)[i], fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}
	return NewGroup(mode, deref(n.Comment), children...), nil
}

func (o DecodeOptions) checkPattern(pattern string) error {
	if o.MaxPatternLength > 0 && utf8.RuneCountInString(pattern) > o.MaxPatternLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPattern, o.MaxPatternLength)
	}
	return nil
}

// Marshal encodes f as JSON.
func Marshal(f Filter) ([]byte, error) {
	n, err := encode(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// MarshalIndent encodes f as indented JSON.
func MarshalIndent(f Filter) ([]byte, error) {
	n, err := encode(f)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(n, "", "  ")
}

// MarshalYAML encodes f as YAML.
func MarshalYAML(f Filter) ([]byte, error) {
	n, err := encode(f)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// WriteFile encodes f into path, as YAML or JSON depending on the extension.
func WriteFile(path string, f Filter) error {
	var data []byte
	var err error
	if IsYAMLPath(path) {
		data, err = MarshalYAML(f)
	} else {
		data, err = MarshalIndent(f)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write filter file: %w", err)
	}
	return nil
}

func encode(f Filter) (node, error) {
	switch v := f.(type) {
	case *TextFilter:
		return node{
			Type:     v.Type(),
			Faces:    ptr(v.faces.String()),
			Contains: ptr(v.mode.Code()),
			Regex:    ptr(v.regex),
			Pattern:  ptr(v.pattern),
		}, nil
	case *NumberFilter:
		return node{
			Type:      v.Type(),
			Faces:     ptr(v.faces.String()),
			Operation: ptr(v.op.String()),
			Operand:   ptr(v.operand),
		}, nil
	case *VariableNumberFilter:
		return node{
			Type:      v.Type(),
			Faces:     ptr(v.faces.String()),
			Operation: ptr(v.op.String()),
			Operand:   ptr(v.operand),
			Varies:    ptr(v.varies),
		}, nil
	case *ColorFilter:
		colors := make([]string, len(v.colors))
		for i, c := range v.colors {
			colors[i] = c.Letter()
		}
		return node{
			Type:         v.Type(),
			Faces:        ptr(v.faces.String()),
			Contains:     ptr(v.mode.Code()),
			Colors:       &colors,
			Multicolored: ptr(v.multicolored),
		}, nil
	case *ManaCostFilter:
		return node{
			Type:     v.Type(),
			Faces:    ptr(v.faces.String()),
			Contains: ptr(v.mode.Code()),
			Cost:     ptr(v.cost.String()),
		}, nil
	case *TypeLineFilter:
		return node{
			Type:     v.Type(),
			Faces:    ptr(v.faces.String()),
			Contains: ptr(v.mode.Code()),
			Pattern:  ptr(v.pattern),
		}, nil
	case *OptionsFilter:
		return node{
			Type:     v.Type(),
			Faces:    ptr(v.faces.String()),
			Contains: ptr(v.mode.Code()),
			Selected: ptr(v.Selected()),
		}, nil
	case *LegalityFilter:
		return node{
			Type:       v.Type(),
			Faces:      ptr(v.faces.String()),
			Contains:   ptr(v.mode.Code()),
			Selected:   ptr(v.Formats()),
			Restricted: ptr(v.restricted),
		}, nil
	case *Group:
		children := make([]node, len(v.children))
		for i, child := range v.children {
			n, err := encode(child)
			if err != nil {
				return node{}, err
			}
			children[i] = n
		}
		n := node{Type: TypeGroup, Mode: ptr(v.mode.String()), Children: &children}
		if v.comment != "" {
			n.Comment = ptr(v.comment)
		}
		return n, nil
	default:
		return node{}, ErrNilFilter
	}
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
