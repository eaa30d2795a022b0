package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Data is the decoded content of a front-matter block.
type Data struct {
	// Fields holds every top-level key decoded to Go values.
	Fields map[string]any

	// Strings holds top-level string-like scalars exactly as written, so
	// dates can be parsed by isodate rather than a format decoder.
	Strings map[string]string
}

func newData() *Data {
	return &Data{
		Fields:  make(map[string]any),
		Strings: make(map[string]string),
	}
}

// Engine decodes the raw text between the front-matter fences.
type Engine interface {
	Name() string
	Parse(raw string) (*Data, error)
}

// ErrUnknownEngine is returned by Lookup for unregistered languages.
var ErrUnknownEngine = errors.New("unknown front matter language")

var engines = map[string]Engine{
	"yaml":       yamlEngine{},
	"json":       jsonEngine{},
	"javascript": javascriptEngine{},
}

// Lookup returns the engine registered for a fence language such as "yaml"
// or "json". The empty language selects YAML.
func Lookup(language string) (Engine, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	if e, ok := engines[language]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, language)
}

// Languages lists registered engine names in sorted order.
func Languages() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type yamlEngine struct{}

func (yamlEngine) Name() string { return "yaml" }

// Parse decodes into a yaml.Node first so scalar source text survives.
// Decoding straight into a map would turn 2021-02-29 into a time.Time (or
// an error) before the date layer gets to see it.
func (yamlEngine) Parse(raw string) (*Data, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}

	data := newData()

	// Empty documents (or comments only) decode to a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return data, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: top level must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var decoded any
		if err := value.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("failed to decode frontmatter field %q: %w", key.Value, err)
		}
		data.Fields[key.Value] = decoded

		if value.Kind == yaml.ScalarNode {
			switch value.ShortTag() {
			case "!!str", "!!timestamp":
				data.Strings[key.Value] = value.Value
			}
		}
	}

	return data, nil
}

type jsonEngine struct{}

func (jsonEngine) Name() string { return "json" }

func (jsonEngine) Parse(raw string) (*Data, error) {
	data := newData()
	if strings.TrimSpace(raw) == "" {
		return data, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&data.Fields); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as JSON: %w", err)
	}
	if data.Fields == nil {
		data.Fields = make(map[string]any)
	}

	for key, value := range data.Fields {
		if s, ok := value.(string); ok {
			data.Strings[key] = s
		}
	}
	return data, nil
}

type javascriptEngine struct{}

func (javascriptEngine) Name() string { return "javascript" }

func (javascriptEngine) Parse(string) (*Data, error) {
	return nil, errors.New("javascript front matter is not supported")
}
