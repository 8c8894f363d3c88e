// README: Offline quote CLI; prices a party from the built-in table or a YAML price file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hibachi/internal/ai"
	"hibachi/internal/infra"
	"hibachi/internal/modules/pricing"
	"hibachi/internal/modules/quote"
	"hibachi/internal/types"
)

var (
	// Global flags
	verbose    bool
	pricesFile string

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quote",
		Short:         "Price hibachi parties offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			var err error
			logger, err = infra.NewLogger("dev", level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&pricesFile, "prices", "", "YAML price file layered over the built-in table")

	root.AddCommand(newCalcCmd(), newPricesCmd())
	return root
}

func newPricingService() (*pricing.Service, error) {
	var base pricing.PriceTable
	if pricesFile != "" {
		var err error
		if base, err = pricing.LoadFile(pricesFile); err != nil {
			return nil, err
		}
	}
	return pricing.NewService(nil, nil, logger, pricing.Options{Base: base}), nil
}

func newCalcCmd() *cobra.Command {
	var (
		adults, children, toddlers int
		miles                      float64
		upgrades                   map[string]int
		asJSON, draft              bool
		customer                   string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a quote",
		Example: `  quote calc --adults 14 --children 2 --upgrade filet_mignon=10 --miles 45
  quote calc --adults 9 --miles 60 --draft --customer Malia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pricingSvc, err := newPricingService()
			if err != nil {
				return err
			}
			svc := quote.NewService(pricingSvc, nil, nil, logger)
			q, err := svc.Quote(cmd.Context(), quote.QuoteCommand{
				CustomerName: customer,
				Adults:       adults,
				Children:     children,
				Toddlers:     toddlers,
				Upgrades:     upgrades,
				TravelMiles:  &miles,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(q.Result)
			case draft:
				msg, err := ai.NewTemplateDrafter().DraftQuoteMessage(context.Background(), ai.FromQuote(q, ""))
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, msg)
				return err
			default:
				return printBreakdown(out, q.Result)
			}
		},
	}
	f := cmd.Flags()
	f.IntVar(&adults, "adults", 0, "number of adults")
	f.IntVar(&children, "children", 0, "number of children")
	f.IntVar(&toddlers, "toddlers", 0, "number of toddlers (free)")
	f.Float64Var(&miles, "miles", 0, "one-way travel distance in miles")
	f.StringToIntVar(&upgrades, "upgrade", nil, "upgrade=quantity, repeatable")
	f.BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	f.BoolVar(&draft, "draft", false, "print a customer message instead of the breakdown")
	f.StringVar(&customer, "customer", "", "customer name for --draft")
	return cmd
}

func newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Print the effective price table",
		RunE: func(cmd *cobra.Command, args []string) error {
			pricingSvc, err := newPricingService()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, e := range pricingSvc.List(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s\n", e.Key, formatEntry(e))
			}
			return w.Flush()
		},
	}
}

func formatEntry(e pricing.Entry) string {
	if e.Key == pricing.KeyFreeMiles {
		return fmt.Sprintf("%d mi", e.Cents)
	}
	return types.USD(e.Cents).String()
}

func printBreakdown(out io.Writer, r quote.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	sub := types.USD(r.Subtotal).String()
	if r.AppliedMinimum {
		sub += " (minimum)"
	}
	fmt.Fprintf(w, "Subtotal\t%s\t\n", sub)
	for _, l := range r.Upgrades {
		fmt.Fprintf(w, "  %s x%d\t%s\t\n", l.Key, l.Quantity, types.USD(l.Total))
	}
	fmt.Fprintf(w, "Upgrades\t%s\t\n", types.USD(r.UpgradesTotal))
	fmt.Fprintf(w, "Travel fee\t%s\t\n", types.USD(r.TravelFee))
	fmt.Fprintf(w, "Total\t%s\t\n", types.USD(r.GrandTotal))
	fmt.Fprintf(w, "Deposit\t%s\t\n", types.USD(r.Deposit))
	fmt.Fprintf(w, "Balance due\t%s\t\n", types.USD(r.BalanceDue))
	return w.Flush()
}
