// Package hoststyle matches a page hostname against per-host presentation rules.
package hoststyle

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"panda-menu/internal/domain/theme"
)

// Rule adjusts how the menu is presented on hosts matching Pattern.
type Rule struct {
	Pattern          *regexp.Regexp
	HostCSS          string
	MenuCSS          string
	DefaultColorMode theme.ColorMode
	AttachTo         string
	AttachParent     int
}

// HostConfig is the merged result of every rule matching a hostname.
type HostConfig struct {
	HostCSS          string          `json:"hostCss"`
	MenuCSS          string          `json:"menuCss"`
	DefaultColorMode theme.ColorMode `json:"defaultColorMode"`
	AttachTo         string          `json:"attachTo,omitempty"`
	AttachParent     int             `json:"attachParent"`
}

// Rules is an ordered rule table.
type Rules []Rule

// Resolve merges all rules matching hostname in table order. CSS fragments are joined
// with newlines; for the scalar fields the first rule that sets a value wins.
func (r Rules) Resolve(hostname string) HostConfig {
	var (
		cfg     HostConfig
		hostCSS []string
		menuCSS []string
	)
	for _, rule := range r {
		if rule.Pattern == nil || !rule.Pattern.MatchString(hostname) {
			continue
		}
		if rule.HostCSS != "" {
			hostCSS = append(hostCSS, rule.HostCSS)
		}
		if rule.MenuCSS != "" {
			menuCSS = append(menuCSS, rule.MenuCSS)
		}
		if cfg.DefaultColorMode == theme.ColorModeNone {
			cfg.DefaultColorMode = rule.DefaultColorMode
		}
		if cfg.AttachTo == "" {
			cfg.AttachTo = rule.AttachTo
		}
		if cfg.AttachParent == 0 {
			cfg.AttachParent = rule.AttachParent
		}
	}
	cfg.HostCSS = strings.Join(hostCSS, "\n")
	cfg.MenuCSS = strings.Join(menuCSS, "\n")
	return cfg
}

type rulesFile struct {
	Rules []ruleRaw `yaml:"rules"`
}

type ruleRaw struct {
	Pattern          string `yaml:"pattern"`
	HostCSS          string `yaml:"hostCss"`
	MenuCSS          string `yaml:"menuCss"`
	DefaultColorMode string `yaml:"defaultColorMode"`
	AttachTo         string `yaml:"attachTo"`
	AttachParent     int    `yaml:"attachParent"`
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes a YAML rule table. Every pattern must compile.
func ParseRules(data []byte) (Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode host rules: %w", err)
	}

	rules := make(Rules, 0, len(file.Rules))
	for i, raw := range file.Rules {
		if raw.Pattern == "" {
			return nil, fmt.Errorf("host rule %d: pattern is required", i)
		}
		re, err := regexp.Compile(raw.Pattern)
		if err != nil {
			return nil, fmt.Errorf("host rule %d: %w", i, err)
		}
		if raw.AttachParent < 0 {
			return nil, fmt.Errorf("host rule %d: attachParent must be non-negative", i)
		}
		rules = append(rules, Rule{
			Pattern:          re,
			HostCSS:          raw.HostCSS,
			MenuCSS:          raw.MenuCSS,
			DefaultColorMode: theme.ParseColorMode(raw.DefaultColorMode),
			AttachTo:         raw.AttachTo,
			AttachParent:     raw.AttachParent,
		})
	}
	return rules, nil
}
