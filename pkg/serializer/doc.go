// Package serializer formats command results for the terminal or a file.
//
// Four formats are supported: table (compact columns, the default), wide
// (every column), json and yaml. Resource collections opt into the table
// formats by implementing the Tabular interface.
package serializer
