package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Eutropios/WarMAC/config"
	"github.com/Eutropios/WarMAC/market"
	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/services"
	"github.com/Eutropios/WarMAC/storage"
	"github.com/Eutropios/WarMAC/utils"
)

var (
	flagStatistic string
	flagPlatform  string
	flagTimeRange int
	flagMaxRank   bool
	flagRadiant   bool
	flagBuyers    bool
	flagVerbose   int
)

var averageCMD = &cobra.Command{
	Use:   "average [options] ITEM...",
	Short: "Calculate the average platinum price of one or more items",
	Long: `Calculate the average platinum price of an item. Able to find the
median, mean, mode, geometric mean, and harmonic mean of the specified
item. Multiple items are fetched concurrently through a rate-limited
worker pool; duplicate item names are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAverage,
}

func init() {
	averageCMD.Flags().StringVarP(&flagStatistic, "stats", "s", config.DefaultStatistic,
		"statistic to return; one of [median, mean, mode, harmonic, geometric]")
	averageCMD.Flags().StringVarP(&flagPlatform, "platform", "p", config.DefaultPlatform,
		"platform to fetch orders for; one of [pc, ps4, xbox, switch]")
	averageCMD.Flags().IntVarP(&flagTimeRange, "timerange", "t", config.DefaultTimeRange,
		fmt.Sprintf("how old in days the orders can be; must be in range [%d, %d]",
			config.MinTimeRange, config.MaxTimeRange))
	averageCMD.Flags().BoolVarP(&flagMaxRank, "maxrank", "m", false,
		"price the mod/arcane at max rank instead of unranked")
	averageCMD.Flags().BoolVarP(&flagRadiant, "radiant", "r", false,
		"price the relic at radiant refinement instead of intact")
	averageCMD.Flags().BoolVarP(&flagBuyers, "buyers", "b", false,
		"average buyer orders instead of seller orders")
	averageCMD.Flags().CountVarP(&flagVerbose, "verbose", "v",
		"print the full report and debug information")
	averageCMD.MarkFlagsMutuallyExclusive("maxrank", "radiant")

	rootCMD.AddCommand(averageCMD)
}

// itemOutcome pairs an item with its pipeline result for ordered printing.
type itemOutcome struct {
	item   string
	result models.StatisticResult
	orders []models.RawOrder
	err    error
}

func runAverage(cmd *cobra.Command, args []string) error {
	statistic, err := models.ParseStatisticKind(flagStatistic)
	if err != nil {
		return err
	}
	platform, err := models.ParsePlatform(flagPlatform)
	if err != nil {
		return err
	}
	if err := services.ValidateTimeRange(flagTimeRange); err != nil {
		return err
	}

	logger := utils.NewLogger(flagVerbose > 1)
	cfg := config.Load()

	req := services.AverageRequest{
		Statistic: statistic,
		Platform:  platform,
		TimeRange: flagTimeRange,
		MaxRank:   flagMaxRank,
		Radiant:   flagRadiant,
		Buyers:    flagBuyers,
	}

	client := market.NewClient(cfg, platform, logger)
	pipeline := services.NewPipeline(client, logger)

	// Deduplicate by slug so "Bite bite" does not hit the API twice.
	seen := utils.NewStringSet()
	var items []string
	for _, arg := range args {
		if seen.Add(market.Slug(arg)) {
			items = append(items, arg)
		} else {
			logger.Warn("[average] Duplicate item %q skipped", arg)
		}
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	outcomes := make([]itemOutcome, len(items))

	var mu sync.Mutex
	for i, item := range items {
		i, item := i, item
		pool.Submit(func() {
			result, orders, err := pipeline.Run(context.Background(), item, req)

			mu.Lock()
			outcomes[i] = itemOutcome{item: item, result: result, orders: orders, err: err}
			mu.Unlock()
		})
	}
	pool.Wait()

	return reportOutcomes(cfg, logger, outcomes)
}

// reportOutcomes prints results in the order the items were given and
// feeds the optional snapshot and history sinks.
func reportOutcomes(cfg *config.Config, logger *utils.Logger, outcomes []itemOutcome) error {
	var snapshot storage.SnapshotWriter
	if cfg.SnapshotEnabled {
		w, err := storage.NewCSVWriter(cfg.SnapshotPath)
		if err != nil {
			logger.Error("Failed to create order snapshot: %v", err)
		} else {
			snapshot = w
			defer w.Close()
		}
	}

	var history storage.HistoryWriter
	if cfg.HistoryEnabled {
		w, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			history = w
			defer w.Close()
		}
	}

	var failed bool
	for _, o := range outcomes {
		if o.err != nil {
			failed = true
			logger.Error("%s: %v", o.item, o.err)
			continue
		}

		if flagVerbose > 0 {
			services.PrintResult(os.Stdout, o.result)
			fmt.Println()
		} else if len(outcomes) > 1 {
			fmt.Printf("%s: %s\n", o.result.Item, services.FormatValue(o.result.Value, o.result.Kind))
		} else {
			services.PrintValue(os.Stdout, o.result)
		}

		if snapshot != nil {
			if err := snapshot.WriteOrders(o.result.Item, o.orders); err != nil {
				logger.Error("Order snapshot failed for %s: %v", o.item, err)
			}
		}
		if history != nil {
			if err := history.WriteResult(o.result); err != nil {
				logger.Error("History write failed for %s: %v", o.item, err)
			}
		}
	}

	if failed {
		return errors.New("one or more items could not be priced")
	}
	return nil
}
