// Package scanner is the programmatic client for the WebScan service.
//
// It covers the two API calls the service exposes (submitting a scan and
// persisting a shareable report), the result types those calls return, and
// the exit-code policy CI pipelines apply to a result. Rendering lives in
// the CLI; nothing in this package writes to the terminal, so embedders get
// scan results with no output side effects.
package scanner
