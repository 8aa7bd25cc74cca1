package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bank-ledger/internal/domain/bank"
	"bank-ledger/internal/storage"
)

// SnapshotJob periodically persists the full registry state to a
// timestamped JSON file so a restart can pick up where it left off.
type SnapshotJob struct {
	service bank.Service
	dir     string
	logger  *slog.Logger
}

func NewSnapshotJob(service bank.Service, dir string, logger *slog.Logger) *SnapshotJob {
	if service == nil || logger == nil {
		panic("SnapshotJob dependencies cannot be nil")
	}
	if dir == "" {
		dir = "data"
	}
	return &SnapshotJob{
		service: service,
		dir:     dir,
		logger:  logger.With("job", "Snapshot"),
	}
}

func (j *SnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting periodic ledger snapshot job.")

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		j.logger.ErrorContext(ctx, "Failed to create snapshot directory, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to create snapshot directory: %w", err)
	}

	snap := j.service.Snapshot(ctx)
	path := filepath.Join(j.dir, storage.FileName(startTime))

	if err := storage.Save(path, snap); err != nil {
		j.logger.ErrorContext(ctx, "Failed to write snapshot file.", slog.Any("error", err))
		return fmt.Errorf("cannot write snapshot: %w", err)
	}

	j.logger.InfoContext(ctx, "Ledger snapshot job finished.",
		slog.String("file", filepath.Base(path)),
		slog.Int("customers", len(snap.Customers)),
		slog.Int("lastAccountNumber", snap.LastAccountNumber),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
