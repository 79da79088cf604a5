// anubis scans Solana launchpads for token launches, profiles the creating
// wallets and scores them.
//
// Usage:
//
//	anubis scan [--days=7] [--platforms=pump_fun] [--use-memory] [--csv=<path>]
//	anubis migrate
//	anubis export --out=<path> [--limit=N]
//	anubis status
//	anubis wallet <address>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
