package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sensiblebit/keyprobe/internal"
	"github.com/spf13/cobra"
)

var (
	scanDBPath      string
	scanProfilePath string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Scan and catalog key material",
	Long:  "Scan files or directories, classify everything found, and record the results in a SQLite store. Prints a summary. A YAML profile can supply paths and passwords for recurring scans.",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanDBPath, "db", "d", "", "SQLite store path (default: in-memory)")
	scanCmd.Flags().StringVarP(&scanProfilePath, "profile", "c", "", "Path to scan profile YAML")
	registerCompletion(scanCmd, completionInput{
		flagName:     "profile",
		completeFunc: fileCompletion,
	})
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := args
	extraPasswords := passwordList
	pwFile := passwordFile
	dbPath := scanDBPath

	if scanProfilePath != "" {
		profile, err := internal.LoadScanProfile(scanProfilePath)
		if err != nil {
			return err
		}
		paths = append(paths, profile.Paths...)
		extraPasswords = append(extraPasswords, profile.Passwords...)
		if pwFile == "" {
			pwFile = profile.PasswordFile
		}
		if dbPath == "" {
			dbPath = profile.DBPath
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no paths to scan (give arguments or a --profile)")
	}

	db, err := internal.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer db.Close()

	passwords, err := internal.ProcessPasswords(extraPasswords, pwFile)
	if err != nil {
		return fmt.Errorf("loading passwords: %w", err)
	}

	total := internal.ScanSummary{}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			slog.Warn("skipping path", "path", path, "error", err)
			continue
		}
		summary, err := internal.ScanPath(db, path, passwords)
		if err != nil {
			return err
		}
		total.Files += summary.Files
		total.Unrecognized += summary.Unrecognized
		total.StoreSummary = summary.StoreSummary
	}

	fmt.Printf("\nScanned %d file(s): %d private key(s), %d public key(s), %d certificate(s)\n",
		total.Files, total.PrivateKeys, total.PublicKeys, total.Certificates)
	if total.Certificates > 0 {
		fmt.Printf("  Publicly trusted: %d\n", total.Trusted)
	}
	if total.Unrecognized > 0 {
		fmt.Printf("  Unrecognized:     %d\n", total.Unrecognized)
	}

	return nil
}
