// Package variants holds report variant definitions: which fields a report
// carries, the section names each field is looked up under, the parse
// strategies tried and any fixed cardinality. Definitions are YAML data so a
// new report variant does not need new code.
package variants

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reportmd/internal/dispatch"
	"github.com/goliatone/go-reportmd/internal/logging"
	schemavalidation "github.com/goliatone/go-reportmd/internal/validation"
	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

var (
	ErrUnknownVariant     = errors.New("variants: unknown variant")
	ErrInvalidDefinition  = errors.New("variants: invalid definition")
	ErrInheritanceCycle   = errors.New("variants: inheritance cycle")
	ErrDuplicateFieldName = errors.New("variants: duplicate field name")
)

// Names of the built-in variants.
const (
	Standard = "standard"
	Strict   = "strict"
	Barriers = "barriers"
)

//go:embed builtin.yaml
var builtinDefinitions []byte

//go:embed definition.schema.json
var definitionSchema []byte

var (
	schemaOnce sync.Once
	schema     *schemavalidation.Schema
)

func definitionValidator() *schemavalidation.Schema {
	schemaOnce.Do(func() {
		schema = schemavalidation.MustCompile("variant-definitions.json", definitionSchema)
	})
	return schema
}

// FieldDefinition is one field entry as written in a definition file. Empty
// values inherit from the parent variant.
type FieldDefinition struct {
	Name        string   `yaml:"name" json:"name"`
	Kind        string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Synonyms    []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Strategies  []string `yaml:"strategies,omitempty" json:"strategies,omitempty"`
	Cardinality *int     `yaml:"cardinality,omitempty" json:"cardinality,omitempty"`
}

// Definition is a variant as written in a definition file.
type Definition struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Extends     string            `yaml:"extends,omitempty" json:"extends,omitempty"`
	Fields      []FieldDefinition `yaml:"fields,omitempty" json:"fields,omitempty"`
}

type definitionFile struct {
	Variants []Definition `yaml:"variants" json:"variants"`
}

// Field is a fully resolved field of a variant.
type Field struct {
	Name        string
	Kind        string
	Synonyms    []string
	Strategies  []string
	Cardinality *int
}

// Expected returns the exact count the field must resolve to, if one is
// declared.
func (f Field) Expected() (int, bool) {
	if f.Cardinality == nil {
		return 0, false
	}
	return *f.Cardinality, true
}

// Validate checks a resolved field.
func (f Field) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Kind, validation.Required, validation.In(stringsToAny(dispatch.Kinds())...)),
		validation.Field(&f.Synonyms, validation.Required),
		validation.Field(&f.Strategies, validation.Required, validation.By(knownStrategies(f.Kind))),
		validation.Field(&f.Cardinality, validation.Min(0)),
	)
}

// Variant is a fully resolved report variant. Fields keep definition order;
// inherited fields come first.
type Variant struct {
	Name        string
	Description string
	Fields      []Field
}

// Validate checks a resolved variant.
func (v Variant) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Name, validation.Required),
		validation.Field(&v.Fields, validation.Required),
	)
}

// Field looks up a field by name.
func (v Variant) Field(name string) (Field, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// SectionNames returns every synonym of every field, in field order. It is the
// closed set of names used by the known-heading section convention.
func (v Variant) SectionNames() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, field := range v.Fields {
		for _, name := range field.Synonyms {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Registry holds resolved variants by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	defs     map[string]Definition
	order    []string
	variants map[string]Variant
	logger   interfaces.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:     map[string]Definition{},
		variants: map[string]Variant{},
		logger:   logging.NoOp(),
	}
}

// SetLogger sets the logger used to report registrations.
func (r *Registry) SetLogger(logger interfaces.Logger) {
	if logger == nil {
		return
	}
	r.mu.Lock()
	r.logger = logger
	r.mu.Unlock()
}

// Builtin returns a registry loaded with the standard, strict and barriers
// variants.
func Builtin() (*Registry, error) {
	registry := NewRegistry()
	if err := registry.Load(builtinDefinitions); err != nil {
		return nil, fmt.Errorf("load builtin variants: %w", err)
	}
	return registry, nil
}

// BuiltinDefinitions returns the raw YAML of the built-in variants.
func BuiltinDefinitions() []byte {
	return bytes.Clone(builtinDefinitions)
}

// Load decodes YAML definitions, checks them against the definition schema and
// registers them. A definition whose name is already registered replaces it;
// variants extending it pick up the change. A load that fails leaves the
// registry unchanged.
func (r *Registry) Load(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := definitionValidator().Validate(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return r.Register(file.Variants...)
}

// Register adds already decoded definitions.
func (r *Registry) Register(defs ...Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[string]Definition, len(r.defs)+len(defs))
	for name, def := range r.defs {
		staged[name] = def
	}
	order := append([]string(nil), r.order...)
	for _, def := range defs {
		if _, exists := staged[def.Name]; !exists {
			order = append(order, def.Name)
		}
		staged[def.Name] = def
	}

	resolved := make(map[string]Variant, len(staged))
	for _, name := range order {
		variant, err := resolve(name, staged, nil)
		if err != nil {
			return err
		}
		for _, field := range variant.Fields {
			if err := field.Validate(); err != nil {
				return fmt.Errorf("%w: variant %q field %q: %w", ErrInvalidDefinition, name, field.Name, err)
			}
		}
		if err := variant.Validate(); err != nil {
			return fmt.Errorf("%w: variant %q: %w", ErrInvalidDefinition, name, err)
		}
		resolved[name] = variant
	}

	r.defs = staged
	r.order = order
	r.variants = resolved
	for _, def := range defs {
		r.logger.Debug("report.variant.registered", "variant", def.Name, "extends", def.Extends)
	}
	return nil
}

// Get returns the named variant.
func (r *Registry) Get(name string) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	variant, ok := r.variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return variant, nil
}

// Names lists registered variants sorted by name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

func resolve(name string, defs map[string]Definition, visiting []string) (Variant, error) {
	for _, seen := range visiting {
		if seen == name {
			return Variant{}, fmt.Errorf("%w: %v -> %s", ErrInheritanceCycle, visiting, name)
		}
	}
	def, ok := defs[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}

	var base Variant
	if def.Extends != "" {
		parent, err := resolve(def.Extends, defs, append(visiting, name))
		if err != nil {
			return Variant{}, fmt.Errorf("%w: variant %q extends %q: %w", ErrInvalidDefinition, name, def.Extends, err)
		}
		base = parent
	}

	variant := Variant{Name: def.Name, Description: def.Description}
	if variant.Description == "" {
		variant.Description = base.Description
	}
	variant.Fields = append(variant.Fields, base.Fields...)

	seen := map[string]struct{}{}
	for _, fd := range def.Fields {
		if _, dup := seen[fd.Name]; dup {
			return Variant{}, fmt.Errorf("%w: variant %q field %q", ErrDuplicateFieldName, name, fd.Name)
		}
		seen[fd.Name] = struct{}{}

		index := -1
		for i, existing := range variant.Fields {
			if existing.Name == fd.Name {
				index = i
				break
			}
		}
		if index >= 0 {
			variant.Fields[index] = merge(variant.Fields[index], fd)
			continue
		}
		variant.Fields = append(variant.Fields, merge(Field{Name: fd.Name}, fd))
	}

	for i := range variant.Fields {
		if len(variant.Fields[i].Strategies) == 0 && variant.Fields[i].Kind != "" {
			if defaults, err := dispatch.DefaultStrategies(variant.Fields[i].Kind); err == nil {
				variant.Fields[i].Strategies = defaults
			}
		}
	}
	return variant, nil
}

func merge(base Field, fd FieldDefinition) Field {
	out := Field{
		Name:        base.Name,
		Kind:        base.Kind,
		Synonyms:    append([]string(nil), base.Synonyms...),
		Strategies:  append([]string(nil), base.Strategies...),
		Cardinality: base.Cardinality,
	}
	if fd.Kind != "" && fd.Kind != base.Kind {
		out.Kind = fd.Kind
		out.Strategies = nil
	}
	if len(fd.Synonyms) > 0 {
		out.Synonyms = append([]string(nil), fd.Synonyms...)
	}
	if len(fd.Strategies) > 0 {
		out.Strategies = append([]string(nil), fd.Strategies...)
	}
	if fd.Cardinality != nil {
		value := *fd.Cardinality
		out.Cardinality = &value
	}
	return out
}

func knownStrategies(kind string) validation.RuleFunc {
	return func(value any) error {
		names, _ := value.([]string)
		available, err := dispatch.StrategyNames(kind)
		if err != nil {
			return nil
		}
		for _, name := range names {
			if !contains(available, name) {
				return validation.NewError("variants.strategy_unknown", fmt.Sprintf("unknown strategy %q for %s fields", name, kind))
			}
		}
		return nil
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
