package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/service"
	"github.com/karibuclean/instock/internal/store"
)

var (
	addCategory  string
	addQuantity  float64
	addUnit      string
	addCost      float64
	addThreshold float64
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Record a stock delivery, merging by name",
	Long: `Record a stock delivery. If an item with the same name already exists
(compared case-insensitively), the quantities are summed and the existing
item's category, unit and cost stay authoritative.

Examples:
  instock add "Industrial Bleach/Jik" --category Chemicals --qty 4 --unit "20L Jerrycan" --cost 3500 --min 2
  instock add "bleach" --qty 2`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "General", "item category")
	addCmd.Flags().Float64VarP(&addQuantity, "qty", "q", 1, "quantity delivered")
	addCmd.Flags().StringVarP(&addUnit, "unit", "u", "Pcs", "unit label")
	addCmd.Flags().Float64Var(&addCost, "cost", 0, "cost per unit")
	addCmd.Flags().Float64Var(&addThreshold, "min", 0, "low-stock threshold")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addQuantity < 0 || addCost < 0 || addThreshold < 0 {
		return fmt.Errorf("qty, cost and min must be non-negative")
	}

	res, err := inventory.Add(store.ItemInput{
		Name:         args[0],
		Category:     addCategory,
		Quantity:     addQuantity,
		Unit:         addUnit,
		UnitCost:     addCost,
		MinThreshold: addThreshold,
	})
	if err != nil {
		return err
	}

	if res.Merged {
		fmt.Printf("Stock updated: added %g to %s. New total: %g %s\n",
			addQuantity, res.Item.Name, res.Item.Quantity, res.Item.Unit)
	} else {
		fmt.Printf("New item added: %s (%g %s)\n", res.Item.Name, res.Item.Quantity, res.Item.Unit)
	}
	return nil
}

var (
	itemsSearch   string
	itemsCategory string
	itemsLowOnly  bool
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List inventory items",
	Long: `List inventory items with optional filtering.

Examples:
  instock items
  instock items --search bleach
  instock items --category Chemicals
  instock items --low`,
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().StringVarP(&itemsSearch, "search", "s", "", "filter by name or category")
	itemsCmd.Flags().StringVarP(&itemsCategory, "category", "c", "", "filter by exact category")
	itemsCmd.Flags().BoolVar(&itemsLowOnly, "low", false, "only items at or below their threshold")
}

func runItems(cmd *cobra.Command, args []string) error {
	items := inventory.Search(service.SearchOptions{
		Query:    itemsSearch,
		Category: itemsCategory,
		LowOnly:  itemsLowOnly,
	})

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	fmt.Printf("Items (%d):\n\n", len(items))
	for _, item := range items {
		line := fmt.Sprintf("- %s [%s] %g %s", item.Name, item.Category, item.Quantity, item.Unit)
		if item.LowStock() {
			line += "  " + lowStockStyle().Render("LOW STOCK")
		}
		fmt.Println(line)
		if verbose {
			fmt.Printf("  id: %s  cost/unit: %.2f  min: %g  updated: %s\n",
				item.ID, item.UnitCost, item.MinThreshold, item.LastUpdated)
		}
	}

	rep := inventory.Report()
	fmt.Printf("\nTotal valuation: %.2f  Low stock: %d/%d\n", rep.TotalValue, rep.LowStockCount, rep.ItemCount)
	return nil
}

var (
	adjustQty     float64
	adjustCost    float64
	adjustHasQty  bool
	adjustHasCost bool
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <item-id>",
	Short: "Adjust an item's quantity or unit cost",
	Long: `Adjust an item in place. --qty applies a signed delta to the quantity,
clamped at zero; --cost overwrites the unit cost. Unknown ids are ignored.

Examples:
  instock adjust 1f3a... --qty -2
  instock adjust 1f3a... --cost 3600`,
	Args: cobra.ExactArgs(1),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().Float64VarP(&adjustQty, "qty", "q", 0, "signed quantity delta")
	adjustCmd.Flags().Float64Var(&adjustCost, "cost", 0, "new cost per unit")
}

func runAdjust(cmd *cobra.Command, args []string) error {
	adjustHasQty = cmd.Flags().Changed("qty")
	adjustHasCost = cmd.Flags().Changed("cost")
	if !adjustHasQty && !adjustHasCost {
		return fmt.Errorf("nothing to do: pass --qty and/or --cost")
	}
	if adjustHasCost && adjustCost < 0 {
		return fmt.Errorf("cost must be non-negative")
	}

	id := strings.TrimSpace(args[0])
	if adjustHasQty {
		if err := inventory.AdjustQuantity(id, adjustQty); err != nil {
			return err
		}
	}
	if adjustHasCost {
		if err := inventory.SetUnitCost(id, adjustCost); err != nil {
			return err
		}
	}

	if item, ok := inventory.Get(id); ok {
		fmt.Printf("%s: %g %s at %.2f/unit\n", item.Name, item.Quantity, item.Unit, item.UnitCost)
	} else {
		fmt.Println("No such item; nothing changed.")
	}
	return nil
}
