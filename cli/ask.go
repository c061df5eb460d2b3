package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/gemini"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the knowledge backend one question",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	})
}

func runAsk(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cfg.GeminiAPIKey == "" {
		exitErr("ask", errors.New("GEMINI_API_KEY is not set"))
	}
	catalog := loadSite(cfg)

	k, err := gemini.NewKnowledge(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel, gemini.SystemPrompt(catalog.Company), cfg.KnowledgeTimeout)
	if err != nil {
		exitErr("gemini", err)
	}
	answer, err := k.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("ask", err)
	}
	fmt.Println(answer)
}
