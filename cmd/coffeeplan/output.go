package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// printResult renders a PlanResult to stdout, grounded on the teacher's
// cmd/mrp generateOutput dispatch-by-format shape, trimmed to the two
// formats the CLI actually needs.
func printResult(result *entities.PlanResult, outputFormat string) error {
	switch outputFormat {
	case "", "text":
		return printTextResult(result)
	case "json":
		return printJSONResult(result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func printTextResult(result *entities.PlanResult) error {
	fmt.Printf("plan %s (request %s)\n", result.ID, result.RequestID)
	fmt.Printf("status: %s   objective: %s PLN   solve time: %dms\n",
		result.Status, result.Objective.StringFixed(2), result.SolveMs)
	if result.GapExceeded {
		fmt.Println("warning: solver hit its time limit; reported plan may not be optimal")
	}
	if result.FailureReason != "" {
		fmt.Printf("failure reason: %s\n", result.FailureReason)
	}

	if len(result.Orders) > 0 {
		orders := make([]entities.OrderIntent, len(result.Orders))
		copy(orders, result.Orders)
		sort.Slice(orders, func(i, j int) bool {
			if orders[i].PlacementDay != orders[j].PlacementDay {
				return orders[i].PlacementDay < orders[j].PlacementDay
			}
			return orders[i].Office < orders[j].Office
		})

		fmt.Println("\norders:")
		for _, o := range orders {
			fmt.Printf("  day %2d  %-8s -> %-8s  %8.2f kg  tier %d  @ %s PLN/kg  +%s PLN transport  = %s PLN  (arrives day %d)\n",
				o.PlacementDay, o.Distributor, o.Office, o.QtyKg, o.Tier,
				o.UnitPrice.StringFixed(2), o.TransportCost.StringFixed(2), o.Total.StringFixed(2), o.DeliveryDay)
		}
	}

	if len(result.Inventory) > 0 {
		fmt.Println("\ninventory:")
		inv := make([]entities.InventorySnapshot, len(result.Inventory))
		copy(inv, result.Inventory)
		sort.Slice(inv, func(i, j int) bool {
			if inv[i].Office != inv[j].Office {
				return inv[i].Office < inv[j].Office
			}
			return inv[i].Day < inv[j].Day
		})
		for _, s := range inv {
			projected := ""
			if s.IsProjected {
				projected = " (projected)"
			}
			fmt.Printf("  %-8s day %2d  level %8.2f kg  fulfilled %8.2f  loss %6.2f  delivered %8.2f%s\n",
				s.Office, s.Day, s.Level, s.DemandFulfilled, s.Loss, s.DeliveriesReceived, projected)
		}
	}

	return nil
}

func printJSONResult(result *entities.PlanResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
