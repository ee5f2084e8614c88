package job

import (
	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/util/common"
)

// CheckpointDBJob flushes the SQLite write-ahead log back into the main
// database file so it cannot grow without bound.
type CheckpointDBJob struct{}

func NewCheckpointDBJob() *CheckpointDBJob {
	return new(CheckpointDBJob)
}

func (j *CheckpointDBJob) Run() {
	defer common.Recover("wal checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
