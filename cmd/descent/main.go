// Command descent runs the built-in benchmark objectives through the
// Descent optimization framework.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
