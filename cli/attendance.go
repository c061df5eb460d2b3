package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/domain"
)

func init() {
	cmd := &cobra.Command{
		Use:   "attendance [date]",
		Short: "List employees seen on a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAttendance,
	}

	mark := &cobra.Command{
		Use:   "mark <employee-id>",
		Short: "Record an employee as present now",
		Args:  cobra.ExactArgs(1),
		Run:   runMark,
	}
	cmd.AddCommand(mark)
	RootCmd.AddCommand(cmd)
}

func openAttendanceOnly() (domain.AttendanceStore, closers) {
	cfg := loadConfig()
	var cl closers
	client := newRedisClient(cfg)
	if client != nil {
		cl.add(client)
	}
	store, err := openAttendance(cfg, client, &cl)
	if err != nil {
		cl.Close()
		exitErr("attendance", err)
	}
	return store, cl
}

func runAttendance(cmd *cobra.Command, args []string) {
	date := domain.DateKey(time.Now())
	if len(args) == 1 {
		if _, err := time.Parse("2006-01-02", args[0]); err != nil {
			exitErr("date", err)
		}
		date = args[0]
	}

	store, cl := openAttendanceOnly()
	defer cl.Close()

	records, err := store.ListPresent(cmd.Context(), date)
	if err != nil {
		exitErr("list", err)
	}
	if records == nil {
		records = []domain.AttendanceRecord{}
	}
	printJSON(records)
}

func runMark(cmd *cobra.Command, args []string) {
	store, cl := openAttendanceOnly()
	defer cl.Close()

	if err := store.Record(cmd.Context(), args[0], time.Now()); err != nil {
		exitErr("record", err)
	}
	printJSON(map[string]interface{}{"ok": true, "employee_id": args[0]})
}
