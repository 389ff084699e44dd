// Command demo exercises a TableCache end to end: a miss that triggers a
// load, a concurrent reader that coalesces onto the same load, a release,
// and a clean shutdown.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dbmeta/metacache/entities"
	"github.com/dbmeta/metacache/multimap"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cache := entities.NewTableCache(
		multimap.WithCapacity(128),
		multimap.WithLogger(logger),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		needsLoad, w := cache.GetByID(1)
		if needsLoad {
			logger.Warn("reader lost the coalescing race and must load itself")
			return
		}
		defer cache.Release(w)
		logger.Info("reader observed the loader's table", "engine", w.Object().Engine)
	}()

	needsLoad, w := cache.GetByID(1)
	if !needsLoad {
		panic("expected a cold cache")
	}

	logger.Info("cache miss, loading from the catalog")
	time.Sleep(50 * time.Millisecond) // the catalog read; the reader blocks on the miss meanwhile
	table := &entities.Table{ID: 1, Schema: "world", Name: "city", Engine: "InnoDB"}
	w = cache.PutByID(1, table)

	wg.Wait()
	cache.Release(w)

	cache.Shutdown()
	fmt.Println("demo complete")
}
