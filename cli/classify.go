package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/intent"
	"github.com/room4-2/frontdesk/policy"
)

type classification struct {
	domain.ClassifiedQuery
	Decision domain.AccessDecision `json:"decision"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "classify <utterance>",
		Short: "Show how an utterance is split, classified and authorised",
		Args:  cobra.MinimumNArgs(1),
		Run:   runClassify,
	}
	cmd.Flags().StringP("role", "r", "visitor", "Caller role: employee or visitor")
	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	role, _ := cmd.Flags().GetString("role")
	r := domain.RoleVisitor
	if strings.EqualFold(role, string(domain.RoleEmployee)) {
		r = domain.RoleEmployee
	}

	u := domain.Utterance{Text: strings.Join(args, " "), CapturedAt: time.Now()}
	queries := intent.Default().Classify(u)
	out := make([]classification, 0, len(queries))
	for _, q := range queries {
		out = append(out, classification{ClassifiedQuery: q, Decision: policy.Decide(q.Intent.Tag, r)})
	}
	printJSON(out)
}
