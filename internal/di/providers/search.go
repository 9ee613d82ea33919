package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/logger"
	"github.com/animexapp/animex-server/internal/search"
	"github.com/animexapp/animex-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index and wires it to the
// store so catalog writes keep it in sync.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index from the catalog.
// Runs in the background; startup never blocks on it.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	animeService := do.MustInvoke[*service.AnimeService](i)

	docCount, err := indexHandle.DocumentCount()
	if err != nil || docCount > 0 {
		return
	}

	go func() {
		indexed, err := animeService.ReindexAll(context.Background())
		if err != nil {
			log.Warn("Background search reindex failed", "error", err)
			return
		}
		if indexed > 0 {
			log.Info("Background search reindex complete", "indexed", indexed)
		}
	}()
}
