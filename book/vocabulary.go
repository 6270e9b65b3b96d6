package book

import (
	"fmt"
	"strconv"
)

// Option is one code of a vocabulary.
type Option struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// Vocabulary is a named option table together with the request field it
// applies to.
type Vocabulary struct {
	Name    string   `json:"name" yaml:"name"`
	Field   string   `json:"field" yaml:"field"`
	Options []Option `json:"options" yaml:"options"`
}

// Has reports whether code belongs to the vocabulary.
func (v Vocabulary) Has(code string) bool {
	_, ok := v.Label(code)
	return ok
}

// Label returns the display name of code.
func (v Vocabulary) Label(code string) (string, bool) {
	for _, opt := range v.Options {
		if opt.Code == code {
			return opt.Label, true
		}
	}
	return "", false
}

// Validate returns an error naming the vocabulary when code is unknown.
func (v Vocabulary) Validate(code string) error {
	if v.Has(code) {
		return nil
	}
	return fmt.Errorf("invalid %s %q", v.Name, code)
}

func stringOptions[T ~string](t table[T]) []Option {
	opts := make([]Option, len(t))
	for i, e := range t {
		opts[i] = Option{Code: string(e.code), Label: e.label}
	}
	return opts
}

func intOptions[T ~int](t table[T]) []Option {
	opts := make([]Option, len(t))
	for i, e := range t {
		opts[i] = Option{Code: strconv.Itoa(int(e.code)), Label: e.label}
	}
	return opts
}

// Vocabularies lists every vocabulary in a stable order.
func Vocabularies() []Vocabulary {
	return []Vocabulary{
		{Name: "category", Field: "category", Options: stringOptions(categories)},
		{Name: "format", Field: "format", Options: stringOptions(formats)},
		{Name: "adult", Field: "adult", Options: intOptions(adultModes)},
		{Name: "comments", Field: "comment", Options: intOptions(commentsModes)},
		{Name: "download", Field: "download", Options: intOptions(downloadModes)},
		{Name: "print", Field: "print", Options: intOptions(printModes)},
		{Name: "music", Field: "music", Options: intOptions(musicModes)},
		{Name: "publishing", Field: "publishing_mode", Options: intOptions(publishingModes)},
		{Name: "direction", Field: "direction", Options: intOptions(readingDirections)},
		{Name: "private-url", Field: "private_url", Options: intOptions(toggles)},
		{Name: "published", Field: "is_published", Options: intOptions(toggles)},
		{Name: "sfx", Field: "sfx", Options: intOptions(toggles)},
		{Name: "share", Field: "share", Options: intOptions(toggles)},
		{Name: "subscribers", Field: "subscribe", Options: intOptions(toggles)},
		{Name: "view", Field: "view", Options: stringOptions(viewModes)},
	}
}

// Lookup returns the vocabulary named name.
func Lookup(name string) (Vocabulary, bool) {
	for _, v := range Vocabularies() {
		if v.Name == name {
			return v, true
		}
	}
	return Vocabulary{}, false
}
