package config

import (
	"os"
	"slices"
	"strings"
)

// EnvPrefix is the prefix of every environment variable segscan reads.
const EnvPrefix = "SEGSCAN_"

// EnvLoader applies environment variables to a Config.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore (e.g., "SEGSCAN_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader that reads variables through
// lookup instead of the process environment.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// envSetters maps variable names, without prefix, to the setting they
// override. An empty value still overrides, except NO_COLOR which only
// counts when non-empty.
var envSetters = map[string]func(c *Config, v string){
	"LOG_LEVEL": func(c *Config, v string) { c.Log.Level = strings.ToLower(v) },
	"FORMAT":    func(c *Config, v string) { c.Output.Format = strings.ToLower(v) },
	"UNIT":      func(c *Config, v string) { c.Input.Unit = strings.ToLower(v) },
	"SCRIPT":    func(c *Config, v string) { c.Lexer.Script = v },
	"NO_COLOR": func(c *Config, v string) {
		if v != "" {
			c.Output.Color = boolPtr(false)
		}
	},
}

// Apply overrides cfg with every variable that is set and returns their
// names in sorted order.
func (l *EnvLoader) Apply(cfg *Config) []string {
	var applied []string
	for name, set := range envSetters {
		env := l.prefix + name
		if v, ok := l.lookup(env); ok {
			set(cfg, v)
			applied = append(applied, env)
		}
	}
	slices.Sort(applied)
	return applied
}
