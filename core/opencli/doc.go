// Package opencli provides the data model and loader for OpenCLI
// specification documents.
//
// An OpenCLI document describes a command-line interface: its identity,
// commands, arguments, options, exit codes, and extension metadata, arranged
// in a recursive command tree.
//
// # Core Types
//
// The model mirrors the specification's nesting:
//
//   - Document: Root of one CLI specification
//   - Info: Title, version, contact, and license of the CLI
//   - Command: One node in the recursive command tree
//   - Argument, Option: Inputs accepted by a command
//   - ExitCode, Metadata: Documented exit statuses and extension entries
//
// All types are plain value records. Optional scalar and object fields are
// pointers so that an absent field is distinguishable from a present zero
// value; sequence fields are plain slices whose absence collapses to an
// empty slice at decode time.
//
// # Loading
//
// Documents are loaded with LoadFile, LoadBytes, or LoadText. The loader
// accepts either YAML or JSON: YAML is attempted first and JSON second, and
// when both fail only the JSON failure is reported. See LoadText for the
// consequences of that ordering.
package opencli
