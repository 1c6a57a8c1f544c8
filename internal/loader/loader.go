// Package loader reads record sequences from JSON, YAML and CUE sources.
//
// A source reference is a path with an optional selector after '#':
//
//	describes.json
//	config.yaml#objects
//	org.cue#sobjects.standard
//
// The selector is a dotted field path into the decoded document (for CUE,
// a CUE path). The value it names must be an array of records or a single
// record, which loads as a one-element sequence. A directory loads as a
// CUE package.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"

	"github.com/roach88/reckit/internal/value"
)

// Format identifies a source encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// Ref is a parsed source reference.
type Ref struct {
	Path     string
	Selector string
}

// ParseRef splits "path#selector".
func ParseRef(ref string) Ref {
	path, sel, _ := strings.Cut(ref, "#")
	return Ref{Path: path, Selector: sel}
}

func (r Ref) String() string {
	if r.Selector == "" {
		return r.Path
	}
	return r.Path + "#" + r.Selector
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &LoadError{
			Code:    ErrCodeUnsupported,
			Path:    path,
			Message: fmt.Sprintf("unsupported extension %q: want .json, .yaml, .yml or .cue", filepath.Ext(path)),
		}
	}
}

// Load reads the records named by ref. Relative paths resolve against
// the working directory.
func Load(ref string) ([]value.Value, error) {
	return LoadRef(ParseRef(ref))
}

// LoadRef is Load for an already parsed reference.
func LoadRef(ref Ref) ([]value.Value, error) {
	info, err := os.Stat(ref.Path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: ref.Path, Message: "source not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: ref.Path, Message: err.Error()}
	}

	if info.IsDir() {
		v, err := loadCUEDir(ref.Path, ref.Selector)
		if err != nil {
			return nil, err
		}
		return toSequence(ref, v)
	}

	format, err := FormatOf(ref.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: ref.Path, Message: err.Error()}
	}

	v, err := Decode(format, ref.Path, data, ref.Selector)
	if err != nil {
		return nil, err
	}
	return toSequence(ref, v)
}

// Decode parses data in the given format and resolves selector against
// it. name is used for error messages and CUE positions.
func Decode(format Format, name string, data []byte, selector string) (value.Value, error) {
	switch format {
	case FormatJSON:
		v, err := value.Decode(data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: name, Message: err.Error()}
		}
		return selectPath(name, v, selector)
	case FormatYAML:
		raw, err := decodeYAML(data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: name, Message: err.Error()}
		}
		v, err := value.FromAny(raw)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: name, Message: err.Error()}
		}
		return selectPath(name, v, selector)
	case FormatCUE:
		ctx := cuecontext.New()
		cv := ctx.CompileBytes(data, cue.Filename(name))
		if err := cv.Err(); err != nil {
			return nil, fromCUE(ErrCodeBuildFailed, name, err)
		}
		return exportCUE(name, cv, selector)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Path: name, Message: fmt.Sprintf("unsupported format %q", format)}
	}
}

// decodeYAML decodes a single-document YAML stream. An empty stream is
// null; a second document is an error.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var raw any
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	var extra any
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return raw, nil
	case err != nil:
		return nil, err
	default:
		return nil, errors.New("multiple YAML documents; a record source holds exactly one")
	}
}

func loadCUEDir(dir, selector string) (value.Value, error) {
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: dir, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fromCUE(ErrCodeLoadFailed, dir, inst.Err)
	}

	ctx := cuecontext.New()
	cv := ctx.BuildInstance(inst)
	if err := cv.Err(); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, dir, err)
	}
	return exportCUE(dir, cv, selector)
}

// exportCUE resolves selector and exports the concrete value through JSON,
// so CUE numbers land in the same Int/Float split as the JSON loader.
func exportCUE(name string, cv cue.Value, selector string) (value.Value, error) {
	if selector != "" {
		cv = cv.LookupPath(cue.ParsePath(selector))
		if !cv.Exists() {
			return nil, &LoadError{Code: ErrCodeSelector, Path: name, Message: fmt.Sprintf("selector %q not found", selector)}
		}
	}
	if err := cv.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, name, err)
	}
	data, err := cv.MarshalJSON()
	if err != nil {
		return nil, fromCUE(ErrCodeBuildFailed, name, err)
	}
	v, err := value.Decode(data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Path: name, Message: err.Error()}
	}
	return v, nil
}

func selectPath(name string, v value.Value, selector string) (value.Value, error) {
	if selector == "" {
		return v, nil
	}
	cur := v
	for _, part := range strings.Split(selector, ".") {
		next, ok := value.Get(cur, part)
		if !ok {
			return nil, &LoadError{Code: ErrCodeSelector, Path: name, Message: fmt.Sprintf("selector %q not found", selector)}
		}
		cur = next
	}
	return cur, nil
}

func toSequence(ref Ref, v value.Value) ([]value.Value, error) {
	switch val := v.(type) {
	case value.Array:
		return []value.Value(val), nil
	case value.Object, *value.Struct:
		return []value.Value{val}, nil
	default:
		return nil, &LoadError{
			Code:    ErrCodeShape,
			Path:    ref.String(),
			Message: fmt.Sprintf("expected an array of records or a record, got %s", value.KindOf(v)),
		}
	}
}
