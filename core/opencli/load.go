package opencli

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/openclispec/opencli-go/core/errors"
)

// LoadFile reads the file at path and decodes it as an OpenCLI document.
// Any read failure is returned as an *errors.IOError; the content is then
// handed to LoadBytes.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes a raw byte buffer as an OpenCLI document. The buffer
// must be valid UTF-8 text; anything else fails with an *errors.OtherError
// before any parse attempt. No alternate encoding is guessed and no lossy
// decoding is performed.
func LoadBytes(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, errors.NewOther("input bytes are not valid UTF-8 text")
	}
	return LoadText(string(data))
}

// LoadText decodes text as an OpenCLI document. YAML is attempted first;
// if it succeeds the result is final. If it fails for any reason the
// failure is discarded and the same text is decoded as JSON. A JSON
// failure is surfaced as an *errors.ParseError carrying the JSON decoder
// diagnostic.
//
// Only the JSON failure is ever reported. A YAML document with a genuine
// YAML syntax mistake is therefore diagnosed in JSON terms, which can be
// confusing; this ordering is a deliberate, fixed contract.
func LoadText(text string) (*Document, error) {
	if doc, err := decodeYAML(text); err == nil {
		return doc, nil
	}
	doc, err := decodeJSON(text)
	if err != nil {
		return nil, &errors.ParseError{Format: "JSON", Message: err.Error(), Err: err}
	}
	return doc, nil
}

func decodeYAML(text string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if err := checkDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeJSON(text string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if err := checkDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkDocument enforces required fields after a decode and collapses empty
// sequences to nil, so that an absent sequence field and a present-but-empty
// one are indistinguishable in the loaded tree. It performs no semantic
// validation beyond field presence.
func checkDocument(d *Document) error {
	if d.Opencli == "" {
		return requiredErr("opencli")
	}
	if d.Info.Title == "" {
		return requiredErr("info.title")
	}
	if d.Info.Version == "" {
		return requiredErr("info.version")
	}
	var err error
	if d.Arguments, err = checkArguments("arguments", d.Arguments); err != nil {
		return err
	}
	if d.Options, err = checkOptions("options", d.Options); err != nil {
		return err
	}
	if d.Commands, err = checkCommands("commands", d.Commands); err != nil {
		return err
	}
	if d.Metadata, err = checkMetadata("metadata", d.Metadata); err != nil {
		return err
	}
	d.ExitCodes = collapse(d.ExitCodes)
	d.Examples = collapse(d.Examples)
	return nil
}

func checkCommands(path string, cmds []Command) ([]Command, error) {
	for i := range cmds {
		p := fmt.Sprintf("%s[%d]", path, i)
		c := &cmds[i]
		if c.Name == "" {
			return nil, requiredErr(p + ".name")
		}
		var err error
		if c.Options, err = checkOptions(p+".options", c.Options); err != nil {
			return nil, err
		}
		if c.Arguments, err = checkArguments(p+".arguments", c.Arguments); err != nil {
			return nil, err
		}
		if c.Commands, err = checkCommands(p+".commands", c.Commands); err != nil {
			return nil, err
		}
		if c.Metadata, err = checkMetadata(p+".metadata", c.Metadata); err != nil {
			return nil, err
		}
		c.Aliases = collapse(c.Aliases)
		c.ExitCodes = collapse(c.ExitCodes)
		c.Examples = collapse(c.Examples)
	}
	return collapse(cmds), nil
}

func checkOptions(path string, opts []Option) ([]Option, error) {
	for i := range opts {
		p := fmt.Sprintf("%s[%d]", path, i)
		o := &opts[i]
		if o.Name == "" {
			return nil, requiredErr(p + ".name")
		}
		var err error
		if o.Arguments, err = checkArguments(p+".arguments", o.Arguments); err != nil {
			return nil, err
		}
		if o.Metadata, err = checkMetadata(p+".metadata", o.Metadata); err != nil {
			return nil, err
		}
		o.Aliases = collapse(o.Aliases)
	}
	return collapse(opts), nil
}

func checkArguments(path string, args []Argument) ([]Argument, error) {
	for i := range args {
		p := fmt.Sprintf("%s[%d]", path, i)
		a := &args[i]
		if a.Name == "" {
			return nil, requiredErr(p + ".name")
		}
		var err error
		if a.Metadata, err = checkMetadata(p+".metadata", a.Metadata); err != nil {
			return nil, err
		}
		a.AcceptedValues = collapse(a.AcceptedValues)
	}
	return collapse(args), nil
}

func checkMetadata(path string, meta []Metadata) ([]Metadata, error) {
	for i := range meta {
		if meta[i].Name == "" {
			return nil, requiredErr(fmt.Sprintf("%s[%d].name", path, i))
		}
	}
	return collapse(meta), nil
}

func requiredErr(path string) error {
	return fmt.Errorf("%s: required field is missing or empty", path)
}

// collapse maps an empty slice to nil so that decode never distinguishes
// "absent" from "present and empty".
func collapse[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
