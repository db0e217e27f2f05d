package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"github.com/pantrylens/kitchen/internal/infrastructure/cache"
	"github.com/pantrylens/kitchen/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settleInterval is how often the search command checks whether the last query answered
const settleInterval = 10 * time.Millisecond

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	results := make(chan usecase.SearchResult, 16)
	var printed atomic.Uint64

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			if err := printSearchResult(cmd, r); err != nil {
				logger.Error("printing search result", zap.Error(err))
			}
			printed.Store(r.Seq)
		}
	}()

	resultCache := cache.NewMemoryCache(cfg.Cache.TTL)
	defer resultCache.Close()

	searcher := usecase.NewIngredientSearcher(client, resultCache, usecase.SearchConfig{
		Debounce:       cfg.Search.Debounce,
		MinQueryLength: cfg.Search.MinQueryLength,
		Limit:          cfg.Search.Limit,
		CacheTTL:       cfg.Cache.TTL,
	}, nil, logger, func(r usecase.SearchResult) { results <- r })

	var last uint64
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		last = searcher.Submit(ctx, scanner.Text())
	}
	scanErr := scanner.Err()

	// Let the final query answer before shutting the searcher down
	ticker := time.NewTicker(settleInterval)
	defer ticker.Stop()
	for last != 0 && printed.Load() < last {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "search timed out")
			last = 0
		case <-ticker.C:
		}
	}

	searcher.Close()
	close(results)
	<-done

	if scanErr != nil {
		return fmt.Errorf("reading queries: %w", scanErr)
	}
	return nil
}

func printSearchResult(cmd *cobra.Command, r usecase.SearchResult) error {
	out := cmd.OutOrStdout()
	if r.Err != nil {
		_, err := fmt.Fprintf(out, "search %q failed: %v\n", r.Query, r.Err)
		return err
	}
	return render(out, outputFormat, r, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "> %s\n", strings.TrimSpace(r.Query))
		if len(r.Results) == 0 {
			fmt.Fprintln(tw, "  (no results)")
			return
		}
		for _, ing := range r.Results {
			fmt.Fprintf(tw, "  %d\t%s\t%s\n", ing.IngredientID, ing.Name, ing.Category)
		}
	})
}
