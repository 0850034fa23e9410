package scene

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
	"gopkg.in/yaml.v3"
)

// LoadFile reads a scene by extension: .yaml and .yml decode directly, .cue
// is evaluated first. The result is validated.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading scene: %v", err), Err: err}
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = Decode(data)
	case ".cue":
		f, err = DecodeCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported scene extension %q (want .yaml, .yml or .cue)", ext)}
	}
	if err != nil {
		return nil, err
	}
	f.Dir = filepath.Dir(path)

	if errs := Validate(f); len(errs) > 0 {
		return f, errors.Join(errs...)
	}
	return f, nil
}

// Decode parses YAML scene data. Unknown fields are rejected. The result is
// not validated.
func Decode(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeParse, Message: "empty scene", Err: err}
		}
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing scene: %v", err), Err: err}
	}
	return &f, nil
}

// DecodeCUE evaluates CUE scene source and decodes the concrete result.
// Field order of the CUE source is kept.
func DecodeCUE(data []byte, filename string) (*File, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: fmt.Sprintf("compiling CUE: %v", err), Err: err}
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: fmt.Sprintf("scene is not concrete: %v", err), Err: err}
	}

	// JSON is a subset of YAML, so the exported value goes through the
	// same decoder as .yaml files.
	js, err := v.MarshalJSON()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: fmt.Sprintf("exporting CUE: %v", err), Err: err}
	}
	return Decode(js)
}
