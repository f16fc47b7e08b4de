package cli

import (
	"fmt"

	"github.com/ppiankov/legalguard/internal/calendar"
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dlSigned      string
	dlTerm        string
	dlClaimed     string
	dlCountry     string
	dlSubdivision string

	bdFrom    string
	bdTo      string
	bdClaimed int

	holYear int
)

// deadlineCmd represents the deadline command
var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Verify a claimed contractual deadline",
	Long: `Compute the deadline implied by a signing date and a term, and compare it
with the claimed date.

Business-day terms skip weekends and the holidays of the selected calendar.
When no country is given the configured default calendar is used.

Example:
  legalguard deadline --signed 2026-01-15 --term "30 business days" --claimed 2026-02-14
  legalguard deadline --signed 2026-01-15 --term "2 weeks" --claimed 2026-01-29 --country GB --subdivision England`,
	Args: cobra.NoArgs,
	RunE: runDeadline,
}

// businessDaysCmd represents the business-days command
var businessDaysCmd = &cobra.Command{
	Use:   "business-days",
	Short: "Count business days between two dates",
	Long: `Count business days after --from up to and including --to under a holiday
calendar. With --claimed the count is checked against the claimed number.

Example:
  legalguard business-days --from 2026-01-15 --to 2026-03-02 --country US
  legalguard business-days --from 2026-12-21 --to 2027-01-04 --country GB --claimed 6`,
	Args: cobra.NoArgs,
	RunE: runBusinessDays,
}

// holidaysCmd represents the holidays command
var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the holidays of a calendar for one year",
	Long: `List the holidays, including observed substitutes, that business-day
arithmetic skips for a country or subdivision.

Example:
  legalguard holidays --country US --year 2026
  legalguard holidays --country GB --subdivision Scotland --year 2026 --format json`,
	Args: cobra.NoArgs,
	RunE: runHolidays,
}

func init() {
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(businessDaysCmd)
	rootCmd.AddCommand(holidaysCmd)

	deadlineCmd.Flags().StringVar(&dlSigned, "signed", "", "signing date (YYYY-MM-DD)")
	deadlineCmd.Flags().StringVar(&dlTerm, "term", "", `contract term, e.g. "30 business days", "3 months"`)
	deadlineCmd.Flags().StringVar(&dlClaimed, "claimed", "", "claimed deadline (YYYY-MM-DD)")
	_ = deadlineCmd.MarkFlagRequired("signed")
	_ = deadlineCmd.MarkFlagRequired("term")
	_ = deadlineCmd.MarkFlagRequired("claimed")

	businessDaysCmd.Flags().StringVar(&bdFrom, "from", "", "start date, exclusive (YYYY-MM-DD)")
	businessDaysCmd.Flags().StringVar(&bdTo, "to", "", "end date, inclusive (YYYY-MM-DD)")
	businessDaysCmd.Flags().IntVar(&bdClaimed, "claimed", 0, "claimed number of business days")
	_ = businessDaysCmd.MarkFlagRequired("from")
	_ = businessDaysCmd.MarkFlagRequired("to")

	holidaysCmd.Flags().IntVar(&holYear, "year", 0, "calendar year")
	_ = holidaysCmd.MarkFlagRequired("year")

	// Calendar selection is shared by all three
	for _, c := range []*cobra.Command{deadlineCmd, businessDaysCmd, holidaysCmd} {
		c.Flags().StringVar(&dlCountry, "country", "", "ISO country code or name (default from config)")
		c.Flags().StringVar(&dlSubdivision, "subdivision", "", "state, province or region")
	}
}

func runDeadline(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGuard()
	if err != nil {
		return err
	}

	res := g.VerifyDeadline(model.DeadlineInput{
		SigningDate:     dlSigned,
		Term:            dlTerm,
		ClaimedDeadline: dlClaimed,
		Country:         dlCountry,
		Subdivision:     dlSubdivision,
	})
	return emitResult(cmd, cfg, res)
}

func runBusinessDays(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGuard()
	if err != nil {
		return err
	}

	in := model.BusinessDaysInput{
		From:        bdFrom,
		To:          bdTo,
		Country:     dlCountry,
		Subdivision: dlSubdivision,
	}
	if cmd.Flags().Changed("claimed") {
		claimed := bdClaimed
		in.Claimed = &claimed
	}
	return emitResult(cmd, cfg, g.BusinessDaysBetween(in))
}

type holidayLine struct {
	Date     string `json:"date" yaml:"date"`
	Name     string `json:"name" yaml:"name"`
	Observed bool   `json:"observed,omitempty" yaml:"observed,omitempty"`
}

type holidayList struct {
	Calendar string        `json:"calendar" yaml:"calendar"`
	Year     int           `json:"year" yaml:"year"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Holidays []holidayLine `json:"holidays" yaml:"holidays"`
}

func runHolidays(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	country, sub := dlCountry, dlSubdivision
	if country == "" {
		country, sub = cfg.Calendar.DefaultCountry, cfg.Calendar.DefaultSubdivision
	}

	cal, warnings := calendar.Default().Calendar(country, sub)
	list := holidayList{Calendar: calendarName(cal), Year: holYear, Warnings: warnings, Holidays: []holidayLine{}}
	for _, e := range cal.Holidays(holYear) {
		list.Holidays = append(list.Holidays, holidayLine{
			Date:     calendar.FormatDate(e.Date),
			Name:     e.Name,
			Observed: e.Observed,
		})
	}

	logger.Debug("holidays listed",
		zap.String("calendar", list.Calendar),
		zap.Int("year", holYear),
		zap.Int("count", len(list.Holidays)))

	return printData(cmd.OutOrStdout(), cfg.Output.Format, list, func() []string {
		lines := make([]string, 0, len(list.Holidays)+len(warnings)+2)
		for _, w := range warnings {
			lines = append(lines, "⚠️  "+w)
		}
		lines = append(lines, fmt.Sprintf("%s holidays in %d:", list.Calendar, holYear))
		for _, h := range list.Holidays {
			lines = append(lines, fmt.Sprintf("  %s  %s", h.Date, h.Name))
		}
		if len(list.Holidays) == 0 {
			lines = append(lines, "  none (weekends only)")
		}
		return lines
	})
}

func calendarName(c *calendar.Calendar) string {
	if c == nil || c.Name == "" {
		return "Weekends-only"
	}
	return c.Name
}
