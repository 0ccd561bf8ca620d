package root

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daybook/internal/analytics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/persist"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newStatsCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and scores for every habit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := model.Today(time.Now())
			if on != "" {
				d, err := model.ParseDate(on)
				if err != nil {
					return err
				}
				today = d
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			kv, closeKV, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeKV()

			state, _ := persist.Load(cmd.Context(), kv, newLogger(os.Stderr, cfg.Log.Level))
			if len(state.Habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no habits yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), habitTable(state.Habits, today))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "evaluate as of this day (YYYY-MM-DD)")
	return cmd
}

func habitTable(habits []model.Habit, today model.Date) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Habit", "Score", "Streak", "Longest", "Done", "Skipped", "Failed", "Days").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, h := range habits {
		s := analytics.ComputeStats(h, today)
		t.Row(
			h.Title,
			strconv.Itoa(s.HabitScore)+"%",
			strconv.Itoa(s.CurrentStreak),
			strconv.Itoa(s.LongestStreak),
			strconv.Itoa(s.DaysCompleted),
			strconv.Itoa(s.DaysSkipped),
			strconv.Itoa(s.DaysFailed),
			strconv.Itoa(s.TotalDays),
		)
	}
	return t.Render()
}
