package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

var (
	scheduleDate string
	scheduleType string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <client-name>",
	Short: "Schedule a job",
	Long: fmt.Sprintf(`Schedule a client job. The schedule stays sorted ascending by date.

The job type must be one of: %s.

Examples:
  instock schedule "Tech Corp Office" --date 2024-04-10 --type Office
  instock schedule "Restaurant" --date 2024-04-12 --type "Deep Clean"`, strings.Join(models.JobTypes, ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleDate, "date", "d", "", "job date (YYYY-MM-DD)")
	scheduleCmd.Flags().StringVarP(&scheduleType, "type", "t", "Standard Clean", "job type")
	_ = scheduleCmd.MarkFlagRequired("date")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	job, err := planner.Schedule(store.JobInput{
		ClientName: args[0],
		Date:       scheduleDate,
		Type:       scheduleType,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled %s (%s) on %s\n", job.ClientName, job.Type, job.Date)
	return nil
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the job schedule",
	RunE:  runJobs,
}

func runJobs(cmd *cobra.Command, args []string) error {
	jobs := planner.List()
	if len(jobs) == 0 {
		fmt.Println("No jobs scheduled.")
		return nil
	}

	fmt.Printf("Jobs (%d):\n\n", len(jobs))
	for _, job := range jobs {
		fmt.Printf("- %s  %s [%s]\n", job.Date, job.ClientName, job.Type)
		if verbose {
			fmt.Printf("  id: %s\n", job.ID)
		}
	}
	return nil
}
