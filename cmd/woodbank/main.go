// filepath: cmd/woodbank/main.go
package main

import "woodbank/internal/cli"

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
