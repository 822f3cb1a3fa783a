package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Create or update today's entry",
	Long: `Log today's entry. When an entry for today already exists the given
flags overwrite it, so running log twice in a day never creates a duplicate.

Examples:
  headachectl log --headache --start 09:30 --end 11:00 --notes "behind left eye"
  headachectl log --outside --water`,
	RunE: runLog,
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List past entries",
	RunE:  runRecords,
}

func init() {
	logCmd.Flags().Bool("headache", false, "had a headache today")
	logCmd.Flags().String("start", "", "headache start time (HH:MM)")
	logCmd.Flags().String("end", "", "headache end time (HH:MM)")
	logCmd.Flags().Bool("outside", false, "went outside yesterday")
	logCmd.Flags().Bool("water", false, "drank enough water yesterday")
	logCmd.Flags().String("notes", "", "free-form notes")

	recordsCmd.Flags().Int("page", 1, "page number")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	// Load first so an existing entry for today becomes an update.
	if err := loadDashboard(e); err != nil {
		return err
	}

	form := &e.dash.RecordForm
	if cmd.Flags().Changed("headache") {
		form.HadHeadache, _ = cmd.Flags().GetBool("headache")
	}
	if cmd.Flags().Changed("start") {
		form.HeadacheStartTime, _ = cmd.Flags().GetString("start")
	}
	if cmd.Flags().Changed("end") {
		form.HeadacheEndTime, _ = cmd.Flags().GetString("end")
	}
	if cmd.Flags().Changed("outside") {
		form.WentOutsideYesterday, _ = cmd.Flags().GetBool("outside")
	}
	if cmd.Flags().Changed("water") {
		form.DrankWaterYesterday, _ = cmd.Flags().GetBool("water")
	}
	if cmd.Flags().Changed("notes") {
		form.Notes, _ = cmd.Flags().GetString("notes")
	}

	if err := e.dash.SaveRecord(context.Background()); err != nil {
		printError(fmt.Errorf("%s", e.dash.RecordStatus))
		return err
	}

	if jsonOut {
		return printJSON(e.dash.TodayRecord)
	}
	fmt.Printf("%s %s\n", colorGreen("✓"), e.dash.RecordStatus)
	return nil
}

func runRecords(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if err := loadDashboard(e); err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	if page > 1 {
		e.dash.GoToPage(context.Background(), page)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"data":       e.dash.Records,
			"total":      e.dash.Total,
			"page":       e.dash.CurrentPage,
			"totalPages": e.dash.TotalPages,
		})
	}
	return printRecords(e.dash)
}
