// Package cli implements the frontdesk commands.
package cli

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/config"
)

var envFile string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "Voice receptionist for the office lobby",
	Long:  "A receptionist that greets callers, answers questions within access policy and notifies staff.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Extra .env file to load before the environment")
}

// Execute runs the command tree.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			exitErr("load "+envFile, err)
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		exitErr("config", err)
	}
	return cfg
}

func printJSON(v interface{}) {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
