package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/models"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Ask the AI predictor for days-until-stockout per item",
	Long: `Send the current inventory and job schedule to the external predictor and
print per-item stockout estimates.

The predictions are not stored; each run replaces the previous one. If the
service is unreachable there is no local fallback heuristic.`,
	Args: cobra.NoArgs,
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	ins, err := getInsights()
	if err != nil {
		return err
	}

	var preds []models.Prediction
	var forecastErr error
	if err := withSpinner("Forecasting supply needs...", func() {
		preds, forecastErr = ins.Forecast(context.Background())
	}); err != nil {
		return err
	}

	if forecastErr != nil {
		if errors.Is(forecastErr, llm.ErrNoCredentials) {
			return fmt.Errorf("no API key configured; set the provider credential and retry")
		}
		return fmt.Errorf("forecast unavailable: %w", forecastErr)
	}

	if len(preds) == 0 {
		fmt.Println("No predictions (inventory is empty).")
		return nil
	}

	fmt.Printf("Predictions (%d):\n\n", len(preds))
	for _, p := range preds {
		status := statusStyle(p.Status).Render(fmt.Sprintf("[%s]", p.Status))
		fmt.Printf("- %s %s  %.0f days left, runs out %s\n", status, p.ItemName, p.DaysRemaining, p.RunOutDate)
		if p.Recommendation != "" {
			fmt.Printf("  %s\n", hintStyle().Render(p.Recommendation))
		}
	}
	return nil
}
