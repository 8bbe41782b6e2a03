package jobs

import (
	"context"

	"sainath-backend/internal/logger"
)

// CleanupOrphanedFiles removes blobs whose metadata record has been
// deleted, and metadata rows whose blob disappeared. Either side can go
// missing when an upload or delete fails halfway.
func (jr *JobRunner) CleanupOrphanedFiles() {
	jr.runWithRecovery("CleanupOrphanedFiles", func() {
		ctx := context.Background()

		files, err := jr.store.Files.List(ctx)
		if err != nil {
			logger.Error("Failed to list stored files", "error", err)
			return
		}

		removed := 0
		for _, f := range files {
			exists, _, err := jr.blobs.Exists(ctx, f.FilePath)
			if err != nil {
				logger.Error("Failed to stat blob", "key", f.FilePath, "error", err)
				continue
			}
			if exists {
				continue
			}
			if err := jr.store.Files.Delete(ctx, f.ID); err != nil {
				logger.Error("Failed to delete dangling file record", "file_id", f.ID, "error", err)
				continue
			}
			removed++
		}
		if removed > 0 {
			logger.Info("Removed dangling file records", "count", removed)
		}
	})
}
