// Command boundary is the execution boundary for authority separation.
// Evaluates proposed actions from untrusted model reasoning; the
// evaluation suite, scenario checks and MCP server all hang off the
// same CLI.
package main

import "github.com/ppiankov/boundary/internal/cli"

func main() {
	cli.Execute()
}
