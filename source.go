package dbintro

import "context"

// Source is the read-only metadata capability of a database engine. Each
// method answers one report section. Implementations should wrap failures in
// [ErrSourceUnavailable]; [Build] wraps any other error it receives.
type Source interface {
	GetVersion(ctx context.Context) (string, error)
	GetIdentifiers(ctx context.Context) (Identifiers, error)
	ListModules(ctx context.Context) ([]string, error)
	ListSettings(ctx context.Context) ([]string, error)
	ListCompileOptions(ctx context.Context) ([]string, error)
	ListFunctions(ctx context.Context) ([]Function, error)
}

// Identifiers are the numeric identifiers of a database file.
type Identifiers struct {
	ApplicationID int64 `json:"application_id" yaml:"application_id"`
	UserVersion   int64 `json:"user_version" yaml:"user_version"`
	SchemaVersion int64 `json:"schema_version" yaml:"schema_version"`
}

// Function describes one registered SQL function. Flags is the engine's bit
// pattern read as a signed integer.
type Function struct {
	Name     string `json:"name" yaml:"name"`
	Builtin  int64  `json:"builtin" yaml:"builtin"`
	Kind     string `json:"kind" yaml:"kind"`
	Encoding string `json:"encoding" yaml:"encoding"`
	ArgCount int64  `json:"arg_count" yaml:"arg_count"`
	Flags    int64  `json:"flags" yaml:"flags"`
}

// DecodeIdentifiers converts a raw application_id, user_version,
// schema_version row. Shape violations return a [*MalformedRowError].
func DecodeIdentifiers(row []any) (Identifiers, error) {
	r, err := decodeRow(SectionIdentifiers, defFor(SectionIdentifiers).columns, row)
	if err != nil {
		return Identifiers{}, err
	}
	return Identifiers{
		ApplicationID: r[0].(int64),
		UserVersion:   r[1].(int64),
		SchemaVersion: r[2].(int64),
	}, nil
}

// DecodeFunction converts a raw name, builtin, type, enc, narg, flags row.
// Shape violations return a [*MalformedRowError].
func DecodeFunction(row []any) (Function, error) {
	r, err := decodeRow(SectionFunctions, defFor(SectionFunctions).columns, row)
	if err != nil {
		return Function{}, err
	}
	return Function{
		Name:     r[0].(string),
		Builtin:  r[1].(int64),
		Kind:     r[2].(string),
		Encoding: r[3].(string),
		ArgCount: r[4].(int64),
		Flags:    r[5].(int64),
	}, nil
}

// DecodeText converts a raw single-column text row of the named section.
func DecodeText(section string, row []any) (string, error) {
	columns := []Column{{Kind: Text}}
	r, err := decodeRow(section, columns, row)
	if err != nil {
		return "", err
	}
	return r[0].(string), nil
}
