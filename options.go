package romdict

import (
	"fmt"
	"log/slog"

	"github.com/jacoelho/romdict/metadata"
	"github.com/jacoelho/romdict/validator"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// LoadOptions configures definition loading.
type LoadOptions struct {
	logger       *slog.Logger
	validators   *validator.Registry
	maxDepth     intOption
	maxAttrs     intOption
	maxTokenSize intOption
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// Validate validates load options values.
func (o LoadOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithLogger sets the logger receiving build diagnostics (nil discards them).
func (o LoadOptions) WithLogger(logger *slog.Logger) LoadOptions {
	o.logger = logger
	return o
}

// WithValidators sets the registry resolving validator class identifiers
// (nil uses validator.Default).
func (o LoadOptions) WithValidators(r *validator.Registry) LoadOptions {
	o.validators = r
	return o
}

// WithMaxDepth sets the definition markup max depth limit (0 uses default).
func (o LoadOptions) WithMaxDepth(value int) LoadOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxAttrs sets the definition markup max attributes limit (0 uses default).
func (o LoadOptions) WithMaxAttrs(value int) LoadOptions {
	o.maxAttrs = intOption{value: value, set: true}
	return o
}

// WithMaxTokenSize sets the definition markup max token size limit (0 uses default).
func (o LoadOptions) WithMaxTokenSize(value int) LoadOptions {
	o.maxTokenSize = intOption{value: value, set: true}
	return o
}

func (o LoadOptions) withDefaults() (metadata.Config, error) {
	limits := metadata.Limits{
		MaxDepth:     o.maxDepth.resolved(),
		MaxAttrs:     o.maxAttrs.resolved(),
		MaxTokenSize: o.maxTokenSize.resolved(),
	}
	if err := limits.Validate(); err != nil {
		return metadata.Config{}, fmt.Errorf("load options: %w", err)
	}
	return metadata.Config{
		Validators: o.validators,
		Logger:     o.logger,
		Limits:     limits,
	}, nil
}
