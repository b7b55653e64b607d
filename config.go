package logsafe

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a policy file. It makes types eligible by name without code
// changes, for example third-party types that cannot implement Policied.
//
//	types:
//	  app.User:
//	    format: structured
//	    mode: exclude
//	    max_depth: 2
//	    fields:
//	      Password: {mask: "0"}
//	      Email: "mask=email,max=64"
type Config struct {
	Types map[string]TypeConfig `yaml:"types"`
}

// TypeConfig declares the policy of one type, named by reflect.Type.String().
type TypeConfig struct {
	Mode     Mode                   `yaml:"mode"`
	Format   Format                 `yaml:"format"`
	MaxDepth *int                   `yaml:"max_depth"`
	Fields   map[string]FieldConfig `yaml:"fields"`
}

// FieldConfig declares field directives, replacing the struct tags they name.
type FieldConfig struct {
	Name    *string `yaml:"name"`
	Mask    *string `yaml:"mask"`
	Size    *bool   `yaml:"size"`
	Null    *bool   `yaml:"null"`
	Max     *int    `yaml:"max"`
	Hash    *string `yaml:"hash"`
	Include *bool   `yaml:"include"`
	Exclude *bool   `yaml:"exclude"`

	short string // raw short form, parsed by tags
}

// UnmarshalYAML supports both the mapping form and the short string form.
// Short form:    Email: "mask=email,max=64"
// Extended form: Email: {mask: email, max: 64}
func (f *FieldConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.short = value.Value
		return nil
	}

	type rawFieldConfig FieldConfig
	var raw rawFieldConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*f = FieldConfig(raw)
	return nil
}

// tags converts the directives to tag key/value pairs.
func (f FieldConfig) tags() (map[string]string, error) {
	tags := make(map[string]string)
	if f.short != "" {
		for _, part := range strings.Split(f.short, ",") {
			key, val, _ := strings.Cut(strings.TrimSpace(part), "=")
			full := "log." + key
			if key == "" || !isFieldTag(full) {
				return nil, fmt.Errorf("%w: unknown directive %q", ErrInvalidConfig, key)
			}
			tags[full] = val
		}
		return tags, nil
	}

	str := func(key string, v *string) {
		if v != nil {
			tags[key] = *v
		}
	}
	flag := func(key string, v *bool) {
		if v != nil {
			tags[key] = strconv.FormatBool(*v)
		}
	}
	str(tagName, f.Name)
	str(tagMask, f.Mask)
	str(tagHash, f.Hash)
	flag(tagSize, f.Size)
	flag(tagNull, f.Null)
	flag(tagInclude, f.Include)
	flag(tagExclude, f.Exclude)
	if f.Max != nil {
		tags[tagMax] = strconv.Itoa(*f.Max)
	}
	return tags, nil
}

// isFieldTag reports whether key is a known field tag.
func isFieldTag(key string) bool {
	for _, tag := range fieldTags {
		if tag == key && tag != tagLog {
			return true
		}
	}
	return false
}

// policy returns the type policy with defaults applied.
func (t TypeConfig) policy() TypePolicy {
	p := TypePolicy{Mode: t.Mode, Format: t.Format, MaxDepth: Unlimited}
	if t.MaxDepth != nil {
		p.MaxDepth = *t.MaxDepth
	}
	return p.normalize()
}

// overrides returns tag overrides keyed by Go field name.
func (t TypeConfig) overrides() (map[string]map[string]string, error) {
	out := make(map[string]map[string]string, len(t.Fields))
	for name, fc := range t.Fields {
		tags, err := fc.tags()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = tags
	}
	return out, nil
}

// has reports whether the config declares typeName.
func (c *Config) has(typeName string) bool {
	_, ok := c.Types[typeName]
	return ok
}

// ParseConfig decodes and validates a YAML policy file.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for name, tc := range cfg.Types {
		if err := tc.policy().Validate(); err != nil {
			return nil, &ConfigError{Err: err, Type: name}
		}
		if _, err := tc.overrides(); err != nil {
			return nil, &ConfigError{Err: err, Type: name}
		}
	}
	return &cfg, nil
}

// LoadPolicies parses data as a policy file and installs it.
func LoadPolicies(data []byte) error {
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}
	setPolicies(cfg)
	return nil
}

// LoadPolicyFile reads and installs the policy file at path.
func LoadPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}
	return LoadPolicies(data)
}
