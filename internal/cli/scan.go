package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/models"
	"github.com/karibuclean/instock/internal/store"
)

var (
	scanCommit bool
	scanQty    float64
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Identify a photographed product",
	Long: `Send a product photo to the external classifier and print the candidate
name, category and quantity estimate.

Nothing is committed unless you pass --add; the printed quantity estimate is
advisory and --qty overrides it. If the guess is wrong, retake the photo and
run scan again.

Examples:
  instock scan shelf.jpg
  instock scan omo.jpg --add --qty 3`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanCommit, "add", false, "commit the identified item to the inventory")
	scanCmd.Flags().Float64VarP(&scanQty, "qty", "q", 0, "confirmed quantity (defaults to the estimate)")
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	ins, err := getInsights()
	if err != nil {
		return err
	}

	var ident models.Identification
	var identifyErr error
	if err := withSpinner("Identifying product...", func() {
		ident, identifyErr = ins.Identify(context.Background(), data)
	}); err != nil {
		return err
	}

	if identifyErr != nil {
		switch {
		case errors.Is(identifyErr, llm.ErrNoCredentials):
			return fmt.Errorf("no API key configured; set the provider credential and retry")
		case errors.Is(identifyErr, llm.ErrBadResponse):
			return fmt.Errorf("the classifier gave an unusable answer; retake the photo and try again")
		default:
			return fmt.Errorf("identification failed: %w", identifyErr)
		}
	}

	fmt.Printf("Identified: %s\n", ident.Name)
	fmt.Printf("  Category:  %s\n", ident.Category)
	fmt.Printf("  Estimate:  %g\n", ident.QuantityEstimate)
	fmt.Printf("  Confidence: %s\n", ident.Confidence)

	if !scanCommit {
		fmt.Println(hintStyle().Render("\nRun again with --add --qty <n> to commit."))
		return nil
	}

	qty := scanQty
	if qty <= 0 {
		qty = ident.QuantityEstimate
	}

	res, err := inventory.Add(store.ItemInput{
		Name:     ident.Name,
		Category: ident.Category,
		Quantity: qty,
		Unit:     "Pcs",
	})
	if err != nil {
		return err
	}

	if res.Merged {
		fmt.Printf("\nStock updated: added %g to %s. New total: %g\n", qty, res.Item.Name, res.Item.Quantity)
	} else {
		fmt.Printf("\nNew item added: %s (%g)\n", res.Item.Name, res.Item.Quantity)
	}
	return nil
}
