package opencli

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Document is the root object of an OpenCLI description.
type Document struct {
	// Opencli is the OpenCLI version number.
	Opencli string `json:"opencli" yaml:"opencli"`

	// Info holds identifying information about the CLI.
	Info Info `json:"info" yaml:"info"`

	// Conventions holds the parsing conventions used by the CLI.
	Conventions *Conventions `json:"conventions,omitempty" yaml:"conventions,omitempty"`

	// Arguments are the root command arguments.
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`

	// Options are the root command options.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Commands are the root command's sub-commands.
	Commands []Command `json:"commands,omitempty" yaml:"commands,omitempty"`

	// ExitCodes are the root command's exit codes.
	ExitCodes []ExitCode `json:"exitCodes,omitempty" yaml:"exitCodes,omitempty"`

	// Examples show how to use the CLI.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Interactive indicates whether the command requires interactive input.
	Interactive *bool `json:"interactive,omitempty" yaml:"interactive,omitempty"`

	// Metadata holds custom extension entries.
	Metadata []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Equal reports whether two documents are structurally equal.
func (d *Document) Equal(other *Document) bool {
	return reflect.DeepEqual(d, other)
}

// Info holds identity, version, contact, and license information for a CLI.
type Info struct {
	// Title is the application title.
	Title string `json:"title" yaml:"title"`

	// Summary is a short summary of the application.
	Summary *string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a description of the application.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`

	// Contact holds the contact information.
	Contact *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`

	// License holds the application license.
	License *License `json:"license,omitempty" yaml:"license,omitempty"`

	// Version is the application version.
	Version string `json:"version" yaml:"version"`
}

// Conventions describes the global parsing conventions used by a CLI.
// Absent fields mean format-default behavior, not false/empty.
type Conventions struct {
	// GroupOptions indicates whether grouping of short options is allowed.
	GroupOptions *bool `json:"groupOptions,omitempty" yaml:"groupOptions,omitempty"`

	// OptionArgumentSeparator is the separator between an option and its argument.
	OptionArgumentSeparator *string `json:"optionArgumentSeparator,omitempty" yaml:"optionArgumentSeparator,omitempty"`
}

// Contact holds contact information for a person or organization.
type Contact struct {
	// Name is the identifying name of the contact person/organization.
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	// URL is the URI for the contact information.
	URL *string `json:"url,omitempty" yaml:"url,omitempty"`

	// Email is the email address of the contact person/organization.
	Email *string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License holds licensing information for a CLI.
type License struct {
	// Name is the license name.
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	// Identifier is the SPDX license identifier.
	Identifier *string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
}

// Command is one CLI command or sub-command. Commands nest recursively with
// no depth limit; each command strictly owns its children.
type Command struct {
	// Name is the command name.
	Name string `json:"name" yaml:"name"`

	// Aliases are alternative names for the command. The model does not
	// enforce uniqueness.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Options are the command's options.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Arguments are the command's positional arguments.
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`

	// Commands are the command's sub-commands.
	Commands []Command `json:"commands,omitempty" yaml:"commands,omitempty"`

	// ExitCodes are the command's exit codes.
	ExitCodes []ExitCode `json:"exitCodes,omitempty" yaml:"exitCodes,omitempty"`

	// Description is the command description.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`

	// Hidden indicates whether the command is hidden.
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Examples show how to use the command.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Interactive indicates whether the command requires interactive input.
	Interactive *bool `json:"interactive,omitempty" yaml:"interactive,omitempty"`

	// Metadata holds custom extension entries.
	Metadata []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Argument is a positional value accepted by a command or option.
type Argument struct {
	// Name is the argument name.
	Name string `json:"name" yaml:"name"`

	// Required indicates whether the argument is required.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Arity defines the minimum and maximum number of argument values.
	Arity *Arity `json:"arity,omitempty" yaml:"arity,omitempty"`

	// AcceptedValues is a list of accepted values.
	AcceptedValues []string `json:"acceptedValues,omitempty" yaml:"acceptedValues,omitempty"`

	// Group is the argument group.
	Group *string `json:"group,omitempty" yaml:"group,omitempty"`

	// Description is the argument description.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`

	// Hidden indicates whether the argument is hidden.
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Metadata holds custom extension entries.
	Metadata []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option is a named flag or option of a command. An option may itself take
// argument values.
type Option struct {
	// Name is the option name.
	Name string `json:"name" yaml:"name"`

	// Required indicates whether the option is required.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Aliases are alternative names for the option.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Arguments are the option's argument values.
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`

	// Group is the option group.
	Group *string `json:"group,omitempty" yaml:"group,omitempty"`

	// Description is the option description.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`

	// Recursive indicates whether the option is accessible from the
	// immediate parent command and, recursively, from its sub-commands.
	Recursive *bool `json:"recursive,omitempty" yaml:"recursive,omitempty"`

	// Hidden indicates whether the option is hidden.
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Metadata holds custom extension entries.
	Metadata []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Arity declares the minimum and maximum number of values an argument
// accepts. The model performs no cross-field check: input where minimum
// exceeds maximum is loaded as-is, never corrected.
type Arity struct {
	// Minimum is the minimum number of values allowed.
	Minimum *int `json:"minimum,omitempty" yaml:"minimum,omitempty"`

	// Maximum is the maximum number of values allowed.
	Maximum *int `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// ExitCode is one documented exit status of a command.
type ExitCode struct {
	// Code is the exit code.
	Code int `json:"code" yaml:"code"`

	// Description is the exit code description.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// exitCodeWire mirrors ExitCode with a pointer code so that a missing
// "code" field is distinguishable from code 0.
type exitCodeWire struct {
	Code        *int    `json:"code" yaml:"code"`
	Description *string `json:"description" yaml:"description"`
}

func (e *ExitCode) fromWire(w exitCodeWire) error {
	if w.Code == nil {
		return fmt.Errorf("exit code entry is missing required field %q", "code")
	}
	e.Code = *w.Code
	e.Description = w.Description
	return nil
}

// UnmarshalJSON decodes an exit code, requiring the code field to be present.
func (e *ExitCode) UnmarshalJSON(data []byte) error {
	var w exitCodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return e.fromWire(w)
}

// UnmarshalYAML decodes an exit code, requiring the code field to be present.
func (e *ExitCode) UnmarshalYAML(node *yaml.Node) error {
	var w exitCodeWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	return e.fromWire(w)
}

// Metadata is one custom extension entry attached to a document, command,
// argument, or option.
type Metadata struct {
	// Name is the metadata name.
	Name string `json:"name" yaml:"name"`

	// Value is the metadata value, an open-ended structured value.
	Value *Value `json:"value,omitempty" yaml:"value,omitempty"`
}
