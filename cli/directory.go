package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/directory"
)

var errNoDatabaseURL = errors.New("DATABASE_URL is not set")

func init() {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Manage the employee directory",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Load employees from a CSV export",
		Args:  cobra.ExactArgs(1),
		Run:   runDirectoryImport,
	}
	importCmd.Flags().Bool("primary", false, "Import into the Postgres primary instead of SQLite")

	lookup := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Find an employee by name through the failover chain",
		Args:  cobra.ExactArgs(1),
		Run:   runDirectoryLookup,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees in the SQLite directory",
		Run:   runDirectoryList,
	}

	cmd.AddCommand(importCmd, lookup, list)
	RootCmd.AddCommand(cmd)
}

func runDirectoryImport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	primary, _ := cmd.Flags().GetBool("primary")

	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open csv", err)
	}
	defer f.Close()

	var store *directory.Store
	if primary {
		if cfg.DatabaseURL == "" {
			exitErr("import", errNoDatabaseURL)
		}
		store, err = directory.OpenPostgres(cmd.Context(), cfg.DatabaseURL)
	} else {
		store, err = directory.OpenSQLite(cmd.Context(), cfg.SQLitePath)
	}
	if err != nil {
		exitErr("open directory", err)
	}
	defer store.Close()

	n, err := directory.ImportCSV(cmd.Context(), f, store)
	if err != nil {
		exitErr("import", err)
	}
	printJSON(map[string]interface{}{"ok": true, "imported": n, "backend": store.Name()})
}

func runDirectoryLookup(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	var cl closers
	defer cl.Close()

	dir, _, err := openDirectory(cmd.Context(), cfg, &cl)
	if err != nil {
		exitErr("directory", err)
	}
	rec, err := dir.Lookup(cmd.Context(), args[0])
	if err != nil {
		exitErr("lookup", err)
	}
	printJSON(map[string]interface{}{"found": rec != nil, "employee": rec})
}

func runDirectoryList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	var cl closers
	defer cl.Close()

	_, secondary, err := openDirectory(cmd.Context(), cfg, &cl)
	if err != nil {
		exitErr("directory", err)
	}
	records, err := secondary.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	printJSON(records)
}
