// Package dialect describes which grammar extensions a parse accepts and
// collects evidence about which extensions a file appears to use.
//
// Evidence never changes parsing. It only feeds advice notes ("enable
// TypeSyntax to accept this") and the dialect suggestion printed by the CLI.
package dialect
