package main

import (
	"fmt"

	"github.com/sensiblebit/keyprobe/internal"
	"github.com/spf13/cobra"
)

var classifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify <file>...",
	Short: "Classify key or certificate files",
	Long:  "Determine what kind of cryptographic material each file contains and print its properties. Use - to read from stdin.",
	Example: `  keyprobe classify key.pem
  keyprobe classify cert.pem --format json
  cat id_ed25519.pub | keyprobe classify -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFormat, "format", internal.DefaultOutputFormat(), "Output format: text or json")
	registerCompletion(classifyCmd, completionInput{
		flagName:     "format",
		completeFunc: fixedCompletion("text", "json"),
	})
}

func runClassify(cmd *cobra.Command, args []string) error {
	passwords, err := internal.ProcessPasswords(passwordList, passwordFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	var results []*internal.Result
	for _, path := range args {
		result, err := internal.ClassifyFile(path, passwords)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	output, err := internal.FormatResults(results, classifyFormat)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}
