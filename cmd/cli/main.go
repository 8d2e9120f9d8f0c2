// Command cli is the text-mode reservation client, mirroring
// original_source/client/*_front.py's reserve/cancel/report menu but
// operating directly against an in-process engine.Engine instead of
// round-tripping through HTTP.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/config"
	"mpcs-reservation/internal/domain"
	"mpcs-reservation/internal/engine"
	"mpcs-reservation/internal/reporter"
	"mpcs-reservation/internal/store"
)

var (
	staffID string
	eng     *engine.Engine

	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpcs-cli",
		Short: "Text-mode client for the MPCS Inc. reservation engine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return openEngine()
		},
	}
	root.PersistentFlags().StringVar(&staffID, "staff-id", "", "staff identifier recorded on every transaction (required)")
	root.MarkPersistentFlagRequired("staff-id")

	root.AddCommand(reserveCmd(), cancelCmd(), reservationsCmd(), financialCmd())
	return root
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red.Println(err.Error())
		os.Exit(1)
	}
}

func openEngine() error {
	cfg := config.Load()
	fs := store.New(cfg.LedgerPath)
	if err := fs.Load(); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	eng = engine.New(fs, func() int64 { return time.Now().Unix() })
	return nil
}

// domainResource maps the CLI's --resource flag onto a known domain.Resource,
// returning "" when the flag names anything else.
func domainResource(flag string) domain.Resource {
	r := domain.Resource(flag)
	if !r.Known() {
		return ""
	}
	return r
}

func reserveCmd() *cobra.Command {
	var customerID, resource, startDate, endDate, startTime, endTime, dateOfReservation string
	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Admit a new reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := domainResource(resource)
			if res == "" {
				return fmt.Errorf("unknown resource %q", resource)
			}
			sd, err := calendar.ParseDate(startDate)
			if err != nil {
				return err
			}
			ed, err := calendar.ParseDate(endDate)
			if err != nil {
				return err
			}
			dor, err := calendar.ParseDate(dateOfReservation)
			if err != nil {
				return err
			}
			st, err := calendar.ParseHalfHour(startTime)
			if err != nil {
				return err
			}
			et, err := calendar.ParseHalfHour(endTime)
			if err != nil {
				return err
			}

			result, err := eng.Admit(engine.AdmitRequest{
				CustomerID:        customerID,
				Resource:          res,
				StartDate:         sd,
				EndDate:           ed,
				StartTime:         st,
				EndTime:           et,
				DateOfReservation: dor,
				StaffID:           staffID,
			})
			if err != nil {
				var reject *engine.RejectError
				if errors.As(err, &reject) {
					color.Red.Printf("reservation failed: %s\n", reject.Message)
					return nil
				}
				return err
			}

			color.Green.Println("reservation admitted")
			fmt.Printf("Reservation ID  : %d\n", result.ReservationID)
			fmt.Printf("Discount Percent: %d\n", result.Discount)
			fmt.Printf("Total Cost      : %s\n", reporter.FormatCurrency(result.TotalCost))
			fmt.Printf("Down Payment    : %s\n", reporter.FormatCurrency(result.DownPayment))
			return nil
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	cmd.Flags().StringVar(&resource, "resource", "", "workshop|microvac|irradiator|extruder|hvc|harvester (required)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "MM-DD-YYYY (required)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "MM-DD-YYYY (required)")
	cmd.Flags().StringVar(&startTime, "start-time", "", "HH:MM (required)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "HH:MM (required)")
	cmd.Flags().StringVar(&dateOfReservation, "date-of-reservation", "", "MM-DD-YYYY (required)")
	for _, f := range []string{"customer", "resource", "start-date", "end-date", "start-time", "end-time", "date-of-reservation"} {
		cmd.MarkFlagRequired(f)
	}
	return cmd
}

func cancelCmd() *cobra.Command {
	var reservationID int
	var cancelDate string
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an existing reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cd, err := calendar.ParseDate(cancelDate)
			if err != nil {
				return err
			}
			result, err := eng.Cancel(reservationID, cd, staffID)
			if err != nil {
				var notFound *engine.NotFoundError
				if errors.As(err, &notFound) {
					color.Red.Printf("cancellation failed: %s\n", notFound.Error())
					return nil
				}
				return err
			}
			color.Green.Println("reservation cancelled")
			fmt.Printf("Refund Percent: %d\n", result.PercentReturned)
			fmt.Printf("Refund Amount : %s\n", reporter.FormatCurrency(result.Refund))
			return nil
		},
	}
	cmd.Flags().IntVar(&reservationID, "id", 0, "reservation id (required)")
	cmd.Flags().StringVar(&cancelDate, "date", "", "MM-DD-YYYY cancellation date (required)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("date")
	return cmd
}

func reservationsCmd() *cobra.Command {
	var startDate, endDate, customerID string
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List reservations in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := calendar.ParseDate(startDate)
			if err != nil {
				return err
			}
			ed, err := calendar.ParseDate(endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Reservations for %s, %s to %s\n", reporter.CustomerLabel(customerID), sd, ed)
			reporter.RenderReservations(os.Stdout, eng.ListReservations(sd, ed, customerID))
			return nil
		},
	}
	cmd.Flags().StringVar(&startDate, "start-date", "01-01-2000", "MM-DD-YYYY")
	cmd.Flags().StringVar(&endDate, "end-date", "12-31-2099", "MM-DD-YYYY")
	cmd.Flags().StringVar(&customerID, "customer", "", "filter to one customer")
	return cmd
}

func financialCmd() *cobra.Command {
	var startDate, endDate string
	cmd := &cobra.Command{
		Use:   "financial",
		Short: "Render a financial summary over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := calendar.ParseDate(startDate)
			if err != nil {
				return err
			}
			ed, err := calendar.ParseDate(endDate)
			if err != nil {
				return err
			}
			transactions := eng.ListTransactions(sd, ed)
			reporter.RenderTransactions(os.Stdout, transactions)
			reporter.RenderFinancialSummary(os.Stdout, reporter.Summarize(transactions))
			return nil
		},
	}
	cmd.Flags().StringVar(&startDate, "start-date", "01-01-2000", "MM-DD-YYYY")
	cmd.Flags().StringVar(&endDate, "end-date", "12-31-2099", "MM-DD-YYYY")
	return cmd
}

