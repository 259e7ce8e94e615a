// Command catalogctl inspects and searches catalog spreadsheets offline,
// using the same loader and search rules as the server.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
