package dbintro

import (
	"context"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Snapshot is a frozen copy of every metadata category. It implements
// [Source], so a report can be rendered again without a live engine.
type Snapshot struct {
	Version        string      `json:"version" yaml:"version"`
	Identifiers    Identifiers `json:"identifiers" yaml:"identifiers"`
	Modules        []string    `json:"modules" yaml:"modules"`
	Settings       []string    `json:"settings" yaml:"settings"`
	CompileOptions []string    `json:"compile_options" yaml:"compile_options"`
	Functions      []Function  `json:"functions" yaml:"functions"`
}

var _ Source = (*Snapshot)(nil)

// TakeSnapshot reads every category from src. Any failure aborts.
func TakeSnapshot(ctx context.Context, src Source) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Version, err = src.GetVersion(ctx); err != nil {
		return nil, sourceError(SectionVersion, err)
	}
	if s.Identifiers, err = src.GetIdentifiers(ctx); err != nil {
		return nil, sourceError(SectionIdentifiers, err)
	}
	if s.Modules, err = src.ListModules(ctx); err != nil {
		return nil, sourceError(SectionModules, err)
	}
	if s.Settings, err = src.ListSettings(ctx); err != nil {
		return nil, sourceError(SectionSettings, err)
	}
	if s.CompileOptions, err = src.ListCompileOptions(ctx); err != nil {
		return nil, sourceError(SectionCompileOptions, err)
	}
	if s.Functions, err = src.ListFunctions(ctx); err != nil {
		return nil, sourceError(SectionFunctions, err)
	}
	return &s, nil
}

// LoadSnapshot decodes a YAML snapshot.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// WriteYAML encodes the snapshot as YAML.
func (s *Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Snapshot) GetVersion(context.Context) (string, error) { return s.Version, nil }

func (s *Snapshot) GetIdentifiers(context.Context) (Identifiers, error) { return s.Identifiers, nil }

func (s *Snapshot) ListModules(context.Context) ([]string, error) {
	return slices.Clone(s.Modules), nil
}

func (s *Snapshot) ListSettings(context.Context) ([]string, error) {
	return slices.Clone(s.Settings), nil
}

func (s *Snapshot) ListCompileOptions(context.Context) ([]string, error) {
	return slices.Clone(s.CompileOptions), nil
}

func (s *Snapshot) ListFunctions(context.Context) ([]Function, error) {
	return slices.Clone(s.Functions), nil
}
