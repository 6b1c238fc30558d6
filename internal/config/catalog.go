package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/asaskevich/govalidator"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the fixed food vocabulary, the fallback images, and the
// ingredient tag rules used to enrich fetched recipes.
type Catalog struct {
	Vocabulary     []string  `yaml:"vocabulary"`
	FallbackImages []string  `yaml:"fallback_images"`
	TagRules       []TagRule `yaml:"tag_rules"`
}

// TagRule attaches Tag to a recipe when every condition that is set holds.
// Keywords are matched as substrings of the lower-cased ingredient string.
type TagRule struct {
	Tag            string   `yaml:"tag"`
	AllOf          []string `yaml:"all_of,omitempty"`
	AnyOf          []string `yaml:"any_of,omitempty"`
	NoneOf         []string `yaml:"none_of,omitempty"`
	MinIngredients int      `yaml:"min_ingredients,omitempty"`
	MaxIngredients int      `yaml:"max_ingredients,omitempty"`
}

// Matches reports whether the rule applies to the given lower-cased
// ingredient string with count pipe-delimited entries.
func (r TagRule) Matches(ingredients string, count int) bool {
	for _, kw := range r.AllOf {
		if !strings.Contains(ingredients, kw) {
			return false
		}
	}
	if len(r.AnyOf) > 0 && !containsAny(ingredients, r.AnyOf) {
		return false
	}
	if len(r.NoneOf) > 0 && containsAny(ingredients, r.NoneOf) {
		return false
	}
	if r.MinIngredients > 0 && count < r.MinIngredients {
		return false
	}
	if r.MaxIngredients > 0 && count > r.MaxIngredients {
		return false
	}
	return true
}

func (r TagRule) hasCondition() bool {
	return len(r.AllOf) > 0 || len(r.AnyOf) > 0 || len(r.NoneOf) > 0 ||
		r.MinIngredients > 0 || r.MaxIngredients > 0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// LoadCatalog reads the catalog from path, or the built-in catalog when path
// is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// DefaultCatalog returns the built-in catalog. It panics if the embedded
// YAML is invalid.
func DefaultCatalog() *Catalog {
	catalog, err := LoadCatalog("")
	if err != nil {
		panic("invalid embedded catalog: " + err.Error())
	}
	return catalog
}

// Validate checks that the catalog is usable.
func (c *Catalog) Validate() error {
	if len(c.Vocabulary) == 0 {
		return errors.New("catalog vocabulary must not be empty")
	}
	for i, term := range c.Vocabulary {
		c.Vocabulary[i] = strings.ToLower(strings.TrimSpace(term))
		if c.Vocabulary[i] == "" {
			return fmt.Errorf("catalog vocabulary entry %d is blank", i)
		}
	}

	if len(c.FallbackImages) == 0 {
		return errors.New("catalog fallback_images must not be empty")
	}
	for _, img := range c.FallbackImages {
		if !govalidator.IsURL(img) {
			return fmt.Errorf("catalog fallback image %q is not a URL", img)
		}
	}

	for i, rule := range c.TagRules {
		if strings.TrimSpace(rule.Tag) == "" {
			return fmt.Errorf("catalog tag rule %d has no tag", i)
		}
		if !rule.hasCondition() {
			return fmt.Errorf("catalog tag rule %q has no condition", rule.Tag)
		}
	}

	return nil
}
