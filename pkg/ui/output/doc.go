// Package output holds the presentation layer shared by hyprlayer commands.
//
// The styles subpackage defines semantic lipgloss styles loaded from an
// embedded YAML file. Commands refer to styles by name (Header, Success,
// Path, ...) and never to raw colors. Every color has a light and a dark
// variant.
package output
