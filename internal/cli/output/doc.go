// Package output renders remote trees and command results for
// foldershare-cli.
//
// Four formats are supported: tree (the default, an indented drawing of
// the shared folders), table (one row per node), json and yaml. The json
// and yaml forms carry the same fields as the wire model.
//
// Spinner animates a status line on stderr while a call is in flight.
package output
