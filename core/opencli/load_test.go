package opencli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openclispec/opencli-go/core/errors"
)

func TestLoadTextMinimalJSON(t *testing.T) {
	input := `{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"commands":[{"name":"build"}]}`

	doc, err := LoadText(input)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if doc.Opencli != "0.1" {
		t.Errorf("Opencli = %q, want %q", doc.Opencli, "0.1")
	}
	if doc.Info.Title != "demo" {
		t.Errorf("Info.Title = %q, want %q", doc.Info.Title, "demo")
	}
	if doc.Info.Version != "1.0" {
		t.Errorf("Info.Version = %q, want %q", doc.Info.Version, "1.0")
	}
	if len(doc.Commands) != 1 {
		t.Fatalf("len(Commands) = %d, want 1", len(doc.Commands))
	}

	cmd := doc.Commands[0]
	if cmd.Name != "build" {
		t.Errorf("Commands[0].Name = %q, want %q", cmd.Name, "build")
	}
	if cmd.Aliases != nil || cmd.Options != nil || cmd.Arguments != nil ||
		cmd.Commands != nil || cmd.ExitCodes != nil || cmd.Examples != nil {
		t.Errorf("expected all sequence fields empty, got %+v", cmd)
	}
	if cmd.Description != nil || cmd.Hidden != nil || cmd.Interactive != nil {
		t.Errorf("expected optional scalars absent, got %+v", cmd)
	}
}

func TestLoadTextYAML(t *testing.T) {
	input := strings.Join([]string{
		"opencli: \"0.1\"",
		"info:",
		"  title: demo",
		"  summary: a demo CLI",
		"  version: \"1.0\"",
		"conventions:",
		"  groupOptions: true",
		"  optionArgumentSeparator: \"=\"",
		"commands:",
		"  - name: build",
		"    aliases: [b]",
		"    options:",
		"      - name: output",
		"        aliases: [o]",
		"        arguments:",
		"          - name: path",
		"            required: true",
		"exitCodes:",
		"  - code: 0",
		"    description: success",
		"  - code: 1",
	}, "\n")

	doc, err := LoadText(input)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if doc.Info.Summary == nil || *doc.Info.Summary != "a demo CLI" {
		t.Errorf("Info.Summary = %v, want %q", doc.Info.Summary, "a demo CLI")
	}
	if doc.Conventions == nil {
		t.Fatal("Conventions = nil, want value")
	}
	if doc.Conventions.GroupOptions == nil || !*doc.Conventions.GroupOptions {
		t.Errorf("Conventions.GroupOptions = %v, want true", doc.Conventions.GroupOptions)
	}
	if doc.Conventions.OptionArgumentSeparator == nil || *doc.Conventions.OptionArgumentSeparator != "=" {
		t.Errorf("Conventions.OptionArgumentSeparator = %v, want \"=\"", doc.Conventions.OptionArgumentSeparator)
	}
	if len(doc.Commands) != 1 || len(doc.Commands[0].Options) != 1 {
		t.Fatalf("unexpected command tree: %+v", doc.Commands)
	}
	opt := doc.Commands[0].Options[0]
	if opt.Name != "output" || len(opt.Arguments) != 1 {
		t.Fatalf("unexpected option: %+v", opt)
	}
	if opt.Arguments[0].Required == nil || !*opt.Arguments[0].Required {
		t.Errorf("Arguments[0].Required = %v, want true", opt.Arguments[0].Required)
	}
	if len(doc.ExitCodes) != 2 {
		t.Fatalf("len(ExitCodes) = %d, want 2", len(doc.ExitCodes))
	}
	if doc.ExitCodes[0].Code != 0 || doc.ExitCodes[1].Code != 1 {
		t.Errorf("exit codes = %d, %d, want 0, 1", doc.ExitCodes[0].Code, doc.ExitCodes[1].Code)
	}
	if doc.ExitCodes[1].Description != nil {
		t.Errorf("ExitCodes[1].Description = %v, want absent", doc.ExitCodes[1].Description)
	}
}

func TestLoadTextFallbackToJSON(t *testing.T) {
	// Duplicate keys are a YAML error but legal JSON (last value wins), so
	// this input exercises the YAML-then-JSON fallback and must produce
	// exactly what JSON alone would produce.
	input := `{"opencli":"0.1","opencli":"0.2","info":{"title":"demo","version":"1.0"}}`

	doc, err := LoadText(input)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if doc.Opencli != "0.2" {
		t.Errorf("Opencli = %q, want JSON last-wins %q", doc.Opencli, "0.2")
	}
}

func TestLoadTextYAMLPrecedence(t *testing.T) {
	// Single-quoted scalars and comments are YAML-only grammar. Success
	// proves the YAML attempt ran and its result was final; JSON alone
	// would reject this text.
	input := "{'opencli': '0.1', 'info': {'title': demo, 'version': '1.0'}} # opencli spec"

	doc, err := LoadText(input)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if doc.Info.Title != "demo" {
		t.Errorf("Info.Title = %q, want %q", doc.Info.Title, "demo")
	}
}

func TestLoadTextInvalidBothSurfacesJSONError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage", "{{{{"},
		{"dangling value", `{"opencli": }`},
		{"scalar document", "just a sentence, not a document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadText(tt.input)
			if err == nil {
				t.Fatal("LoadText() error = nil, want parse error")
			}
			if !errors.Is(err, errors.ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false, err = %v", err)
			}
			var perr *errors.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Format != "JSON" {
				t.Errorf("ParseError.Format = %q, want %q (the YAML failure is never surfaced)", perr.Format, "JSON")
			}
		})
	}
}

func TestLoadTextRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // substring of the parse diagnostic
	}{
		{
			"missing opencli (JSON)",
			`{"info":{"title":"demo","version":"1.0"}}`,
			"opencli",
		},
		{
			"missing opencli (YAML)",
			"info:\n  title: demo\n  version: \"1.0\"\n",
			"", // the YAML diagnostic is discarded; only the JSON failure surfaces
		},
		{
			"missing info.title",
			`{"opencli":"0.1","info":{"version":"1.0"}}`,
			"info.title",
		},
		{
			"missing info.version",
			`{"opencli":"0.1","info":{"title":"demo"}}`,
			"info.version",
		},
		{
			"missing command name",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"commands":[{"aliases":["x"]}]}`,
			"commands[0].name",
		},
		{
			"missing nested command name",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"commands":[{"name":"a","commands":[{}]}]}`,
			"commands[0].commands[0].name",
		},
		{
			"missing option name",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"options":[{"required":true}]}`,
			"options[0].name",
		},
		{
			"missing argument name",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"arguments":[{}]}`,
			"arguments[0].name",
		},
		{
			"missing metadata name",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"metadata":[{"value":1}]}`,
			"metadata[0].name",
		},
		{
			"missing exit code",
			`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"exitCodes":[{"description":"boom"}]}`,
			"code",
		},
		{
			"wrong type for opencli",
			`{"opencli":42,"info":{"title":"demo","version":"1.0"}}`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadText(tt.input)
			if err == nil {
				t.Fatal("LoadText() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false, err = %v", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadTextSequenceDefaulting(t *testing.T) {
	const base = `{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"commands":[{"name":"run"%s}]}`
	variants := []struct {
		name  string
		extra string
	}{
		{"absent", ""},
		{"empty", `,"options":[]`},
		{"null", `,"options":null`},
	}

	var docs []*Document
	for _, tt := range variants {
		name := tt.name
		doc, err := LoadText(fmt.Sprintf(base, tt.extra))
		if err != nil {
			t.Fatalf("LoadText(%s) error = %v", name, err)
		}
		if doc.Commands[0].Options != nil {
			t.Errorf("%s: Options = %v, want nil", name, doc.Commands[0].Options)
		}
		docs = append(docs, doc)
	}
	for i := 1; i < len(docs); i++ {
		if !docs[0].Equal(docs[i]) {
			t.Errorf("variant %d decodes differently from variant 0", i)
		}
	}
}

func TestLoadTextOptionalScalarsDistinct(t *testing.T) {
	present, err := LoadText(`{"opencli":"0.1","info":{"title":"demo","version":"1.0"},"interactive":false}`)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	absent, err := LoadText(`{"opencli":"0.1","info":{"title":"demo","version":"1.0"}}`)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if present.Interactive == nil || *present.Interactive {
		t.Errorf("present.Interactive = %v, want explicit false", present.Interactive)
	}
	if absent.Interactive != nil {
		t.Errorf("absent.Interactive = %v, want nil", absent.Interactive)
	}
	if present.Equal(absent) {
		t.Error("present-false and absent must not compare equal")
	}
}

func TestLoadTextArityNotCorrected(t *testing.T) {
	input := `{"opencli":"0.1","info":{"title":"demo","version":"1.0"},` +
		`"arguments":[{"name":"files","arity":{"minimum":5,"maximum":2}}]}`

	doc, err := LoadText(input)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	arity := doc.Arguments[0].Arity
	if arity == nil || arity.Minimum == nil || arity.Maximum == nil {
		t.Fatalf("Arity = %+v, want both bounds present", arity)
	}
	if *arity.Minimum != 5 || *arity.Maximum != 2 {
		t.Errorf("Arity = {%d, %d}, want inverted bounds preserved {5, 2}", *arity.Minimum, *arity.Maximum)
	}
}

func TestLoadBytesInvalidUTF8(t *testing.T) {
	_, err := LoadBytes([]byte{0xff, 0xfe, '{', '}'})
	if err == nil {
		t.Fatal("LoadBytes() error = nil, want error")
	}
	var oerr *errors.OtherError
	if !errors.As(err, &oerr) {
		t.Fatalf("error %v is not a *OtherError", err)
	}
	if errors.Is(err, errors.ErrParse) {
		t.Error("invalid UTF-8 must not be classified as a parse error")
	}
	if !errors.Is(err, errors.ErrNotText) {
		t.Errorf("errors.Is(err, ErrNotText) = false, err = %v", err)
	}
}

func TestLoadBytesMalformed(t *testing.T) {
	_, err := LoadBytes([]byte(`{"opencli": }`))
	if err == nil {
		t.Fatal("LoadBytes() error = nil, want parse error")
	}
	if !errors.Is(err, errors.ErrParse) {
		t.Errorf("errors.Is(err, ErrParse) = false, err = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid document", func(t *testing.T) {
		path := filepath.Join(dir, "spec.yaml")
		content := "opencli: \"0.1\"\ninfo:\n  title: demo\n  version: \"1.0\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		doc, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if doc.Info.Title != "demo" {
			t.Errorf("Info.Title = %q, want %q", doc.Info.Title, "demo")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		if err == nil {
			t.Fatal("LoadFile() error = nil, want io error")
		}
		var ioerr *errors.IOError
		if !errors.As(err, &ioerr) {
			t.Fatalf("error %v is not a *IOError", err)
		}
		if !errors.Is(err, errors.ErrIO) {
			t.Errorf("errors.Is(err, ErrIO) = false, err = %v", err)
		}
	})
}
