package enrich

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

type keywordTable struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type ruleSet struct {
	FallbackCategory string         `yaml:"fallback_category"`
	Categories       []keywordTable `yaml:"categories"`
	LandTypes        []keywordTable `yaml:"land_types"`
	StopWords        []string       `yaml:"stop_words"`
	OwnerPatterns    []string       `yaml:"owner_patterns"`
	LocationPatterns []string       `yaml:"location_patterns"`
}

var (
	rules           ruleSet
	stopWords       map[string]struct{}
	ownerRegexps    []*regexp.Regexp
	locationRegexps []*regexp.Regexp
)

func init() {
	if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
		panic(fmt.Sprintf("enrich: invalid rules.yaml: %v", err))
	}
	if rules.FallbackCategory == "" || len(rules.Categories) == 0 {
		panic("enrich: rules.yaml missing categories")
	}
	stopWords = make(map[string]struct{}, len(rules.StopWords))
	for _, w := range rules.StopWords {
		stopWords[strings.ToLower(w)] = struct{}{}
	}
	ownerRegexps = compilePatterns(rules.OwnerPatterns)
	locationRegexps = compilePatterns(rules.LocationPatterns)
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}
