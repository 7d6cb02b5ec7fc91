package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/pricing"
)

type priceOptions struct {
	parts      *partFlags
	jsonOutput bool
}

func newPriceCmd() *cobra.Command {
	opts := &priceOptions{parts: newPartFlags()}

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote the price of a configuration",
		Long: `Quote the price of a configuration built from the default design.

Example:
  orbit price --face venom --grips`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd, opts)
		},
	}

	opts.parts.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runPrice(cmd *cobra.Command, opts *priceOptions) error {
	state, err := opts.parts.apply(cmd, customization.Default())
	if err != nil {
		return newCommandError("price", "building configuration", err, "Run 'orbit catalog' to see the available colors and skins.")
	}

	quote := pricing.QuoteFor(state)
	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(quote)
	}
	return renderQuote(cmd, quote)
}

func renderQuote(cmd *cobra.Command, q pricing.Quote) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintf(writer, "Base controller\t%s\t\n", q.Base.Display())
	for _, item := range q.AddOns.Items {
		fmt.Fprintf(writer, "%s\t+%s\t\n", item.Label, item.Amount.Display())
	}
	fmt.Fprintf(writer, "Total\t%s\t\n", q.Total.Display())

	return writer.Flush()
}
