package matching

import (
	_ "embed"
	"os"

	"redemption-ledger/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

type Vocabulary struct {
	Units      []string            `yaml:"units"`
	Categories map[string][]string `yaml:"categories"`
}

func DefaultVocabulary() (*Vocabulary, error) {
	return ParseVocabulary(defaultVocabulary)
}

func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errs.Wrap(err, "parse matcher vocabulary")
	}
	return &v, nil
}

// LoadVocabulary reads a vocabulary file. An empty path yields the built-in
// vocabulary; a file extends it rather than replacing it.
func LoadVocabulary(path string) (*Vocabulary, error) {
	base, err := DefaultVocabulary()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read matcher vocabulary")
	}
	extra, err := ParseVocabulary(data)
	if err != nil {
		return nil, err
	}

	base.Units = append(base.Units, extra.Units...)
	if base.Categories == nil {
		base.Categories = map[string][]string{}
	}
	for category, words := range extra.Categories {
		base.Categories[category] = append(base.Categories[category], words...)
	}
	return base, nil
}
