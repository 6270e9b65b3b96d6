package config

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/calameo/calameo"
)

// XMLRoot is the root element of XML settings documents
const XMLRoot = "calameoConfig"

// ErrInvalidSource is returned for a source whose kind or content cannot be
// turned into settings
var ErrInvalidSource = errors.New("invalid config source")

// SourceKind tells Resolve how to read a Source
type SourceKind int

// Source kinds
const (
	SourceFile SourceKind = iota + 1
	SourceJSON
	SourceXML
	SourceMap
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceJSON:
		return "json"
	case SourceXML:
		return "xml"
	case SourceMap:
		return "map"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is a settings origin. Exactly one of Path, Data or Values is used,
// as selected by Kind.
type Source struct {
	Kind   SourceKind
	Path   string
	Data   []byte
	Values map[string]any
}

// FromFile reads settings from a .json, .xml, .yaml or .yml file
func FromFile(path string) Source { return Source{Kind: SourceFile, Path: path} }

// FromJSON reads settings from a JSON object
func FromJSON(data []byte) Source { return Source{Kind: SourceJSON, Data: data} }

// FromXML reads settings from an XML document whose root children are the keys
func FromXML(data []byte) Source { return Source{Kind: SourceXML, Data: data} }

// FromMap uses values as they are
func FromMap(values map[string]any) Source { return Source{Kind: SourceMap, Values: values} }

// Resolve reads the source into settings. Files are read from fs.
func (s Source) Resolve(fs afero.Fs) (Settings, error) {
	switch s.Kind {
	case SourceFile:
		return resolveFile(fs, s.Path)
	case SourceJSON:
		return parseJSON(s.Data)
	case SourceXML:
		return parseXML(s.Data)
	case SourceMap:
		if s.Values == nil {
			return nil, fmt.Errorf("%w: map source has no values", ErrInvalidSource)
		}
		return Settings(s.Values).Map(), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %s", ErrInvalidSource, s.Kind)
	}
}

func resolveFile(fs afero.Fs, path string) (Settings, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file source has no path", ErrInvalidSource)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(data)
	case ".xml":
		return parseXML(data)
	case ".yaml", ".yml":
		var settings Settings
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		if settings == nil {
			settings = Settings{}
		}
		return settings, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidSource, filepath.Ext(path))
	}
}

func parseJSON(data []byte) (Settings, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: JSON settings must be an object", ErrInvalidSource)
	}
	var settings Settings
	if err := json.Unmarshal(trimmed, &settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	return settings, nil
}

func parseXML(data []byte) (Settings, error) {
	converted, err := calameo.XMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(converted, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	for _, root := range doc {
		switch v := root.(type) {
		case map[string]any:
			return Settings(v), nil
		case string:
			// An empty root element
			return Settings{}, nil
		}
	}
	return nil, fmt.Errorf("%w: XML settings must hold one element per key", ErrInvalidSource)
}

// Settings is a flat map of configuration values, e.g. apikey, secret
type Settings map[string]any

// settingsAliases maps alternative key spellings onto their canonical form
var settingsAliases = map[string]string{
	"api_key": "apikey",
}

// Credentials decodes the apikey and secret members
func (s Settings) Credentials() (calameo.Credentials, error) {
	var creds calameo.Credentials
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &creds,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return creds, err
	}
	if err := decoder.Decode(s.canonical()); err != nil {
		return creds, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if err := creds.Validate(); err != nil {
		return creds, err
	}
	return creds, nil
}

// canonical returns a copy with aliased keys renamed. An explicit canonical
// key wins over its alias.
func (s Settings) canonical() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		if canon, ok := settingsAliases[k]; ok {
			if _, exists := s[canon]; exists {
				continue
			}
			k = canon
		}
		out[k] = v
	}
	return out
}

// section returns the settings keyed the way the calameo config section is
func (s Settings) section() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s.canonical() {
		if k == "apikey" {
			k = "api_key"
		}
		out[k] = v
	}
	return out
}

// Map returns a shallow copy of the settings
func (s Settings) Map() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// JSON renders the settings as an indented JSON object
func (s Settings) JSON() ([]byte, error) {
	return json.MarshalIndent(map[string]any(s), "", "  ")
}

// YAML renders the settings as a YAML mapping
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(map[string]any(s))
}

// XML renders the settings under a calameoConfig root, one element per key
// in key order
func (s Settings) XML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<" + XMLRoot + ">\n")
	if err := writeXMLMembers(&buf, s, 1); err != nil {
		return nil, err
	}
	buf.WriteString("</" + XMLRoot + ">\n")
	return buf.Bytes(), nil
}

func writeXMLMembers(buf *bytes.Buffer, values map[string]any, depth int) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat("  ", depth)
	for _, key := range keys {
		if !isXMLName(key) {
			return fmt.Errorf("%w: %q is not a valid element name", ErrInvalidSource, key)
		}
		if err := writeXMLValue(buf, key, values[key], indent, depth); err != nil {
			return err
		}
	}
	return nil
}

func writeXMLValue(buf *bytes.Buffer, key string, value any, indent string, depth int) error {
	switch v := value.(type) {
	case map[string]any:
		buf.WriteString(indent + "<" + key + ">\n")
		if err := writeXMLMembers(buf, v, depth+1); err != nil {
			return err
		}
		buf.WriteString(indent + "</" + key + ">\n")
	case Settings:
		return writeXMLValue(buf, key, map[string]any(v), indent, depth)
	case []any:
		buf.WriteString(indent + "<" + key + ">\n")
		for _, item := range v {
			if err := writeXMLValue(buf, "item", item, indent+"  ", depth+1); err != nil {
				return err
			}
		}
		buf.WriteString(indent + "</" + key + ">\n")
	default:
		buf.WriteString(indent + "<" + key + ">")
		if value != nil {
			if err := xml.EscapeText(buf, []byte(fmt.Sprint(value))); err != nil {
				return err
			}
		}
		buf.WriteString("</" + key + ">\n")
	}
	return nil
}

func isXMLName(name string) bool {
	if name == "" || strings.HasPrefix(strings.ToLower(name), "xml") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}
