// Command gifcodec decodes, encodes, and reports on GIF89a/GIF87a
// streams using the gogifcodec library.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "gifcodec",
		Short: "Decode, encode, and inspect GIF89a/GIF87a streams",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log non-fatal decode diagnostics")

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logLevel() logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}
