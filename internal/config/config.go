package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/grid"
)

//go:embed schema.cue
var schemaSource string

// Config is the resolved run configuration.
type Config struct {
	Bound  grid.Bound
	Policy engine.Policy

	// DB is the run ledger path; empty disables recording.
	DB string

	// Source is the file the config was loaded from, if any.
	Source string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bound:  grid.Auto(),
		Policy: engine.PolicyLenient,
	}
}

// Engine returns the engine settings.
func (c Config) Engine() engine.Config {
	return engine.Config{Bound: c.Bound, Policy: c.Policy}
}

// Error is a configuration error with an optional source position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = path
	return cfg, nil
}

// Parse validates CUE source against the schema and resolves defaults.
// filename is used for error positions only.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	iter, err := file.Fields()
	if err != nil {
		return Config{}, formatCUEError(err)
	}
	for iter.Next() {
		if !def.Allows(iter.Selector()) {
			return Config{}, &Error{
				Field:   iter.Selector().String(),
				Message: "unknown field",
				Pos:     iter.Value().Pos(),
			}
		}
	}

	v := def.Unify(file)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	cfg := Default()

	cfg.Bound, err = decodeBound(v.LookupPath(cue.ParsePath("bound")))
	if err != nil {
		return Config{}, err
	}

	policyVal, _ := v.LookupPath(cue.ParsePath("policy")).Default()
	policy, err := policyVal.String()
	if err != nil {
		return Config{}, formatCUEError(err)
	}
	cfg.Policy, err = engine.ParsePolicy(policy)
	if err != nil {
		return Config{}, &Error{Field: "policy", Message: err.Error(), Pos: policyVal.Pos()}
	}

	if dbVal := v.LookupPath(cue.ParsePath("db")); dbVal.Exists() {
		cfg.DB, err = dbVal.String()
		if err != nil {
			return Config{}, formatCUEError(err)
		}
	}

	return cfg, nil
}

// decodeBound accepts either the "auto" string or a positive integer.
func decodeBound(v cue.Value) (grid.Bound, error) {
	v, _ = v.Default()
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return grid.Bound{}, formatCUEError(err)
		}
		return grid.Fixed(int(n)), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return grid.Bound{}, formatCUEError(err)
		}
		b, err := grid.ParseBound(s)
		if err != nil {
			return grid.Bound{}, &Error{Field: "bound", Message: err.Error(), Pos: v.Pos()}
		}
		return b, nil
	default:
		return grid.Bound{}, &Error{
			Field:   "bound",
			Message: fmt.Sprintf("must be \"auto\" or an integer, got %s", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// Overrides holds values given on the command line.
// Zero values leave the file setting untouched.
type Overrides struct {
	Bound  string
	Policy string
	Strict bool
	DB     string
}

// Apply returns c with the non-zero overrides applied.
// Strict wins over Policy.
func (c Config) Apply(o Overrides) (Config, error) {
	if strings.TrimSpace(o.Bound) != "" {
		b, err := grid.ParseBound(o.Bound)
		if err != nil {
			return Config{}, err
		}
		c.Bound = b
	}
	if o.Policy != "" {
		p, err := engine.ParsePolicy(o.Policy)
		if err != nil {
			return Config{}, err
		}
		c.Policy = p
	}
	if o.Strict {
		c.Policy = engine.PolicyStrict
	}
	if o.DB != "" {
		c.DB = o.DB
	}
	return c, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	var pos token.Pos
	if positions := errors.Positions(first); len(positions) > 0 {
		pos = positions[0]
	}
	field := "config"
	if path := first.Path(); len(path) > 0 {
		field = strings.Join(path, ".")
	}
	format, args := first.Msg()
	return &Error{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
