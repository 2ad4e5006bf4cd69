package main

import (
	"github.com/sensiblebit/keyprobe/internal"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	passwordList []string
	passwordFile string
)

var rootCmd = &cobra.Command{
	Use:   "keyprobe",
	Short: "Key and certificate identification tool",
	Long:  "Classify opaque key material: detect whether a blob is a private key, public key, or X.509 certificate, in which format and algorithm, and extract its properties.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetupLogger(logLevel, nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringSliceVarP(&passwordList, "passwords", "p", nil, "Comma-separated passwords for encrypted keys")
	rootCmd.PersistentFlags().StringVar(&passwordFile, "password-file", "", "File containing passwords, one per line")

	registerCompletion(rootCmd, completionInput{
		flagName:     "log-level",
		completeFunc: fixedCompletion("debug", "info", "warn", "error"),
	})

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(scanCmd)
}
