// Package job contains the scheduled maintenance jobs run by the web server.
package job

import (
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/util/common"
	"github.com/ecocart/ecocart/web/session"
)

// ClearSessionsJob sweeps expired session rows from the database. Expiry is
// already enforced lazily on resolve; this only reclaims storage.
type ClearSessionsJob struct{}

func NewClearSessionsJob() *ClearSessionsJob {
	return new(ClearSessionsJob)
}

func (j *ClearSessionsJob) Run() {
	defer common.Recover("clear sessions job")

	count, err := session.ClearExpired()
	if err != nil {
		logger.Warning("clear expired sessions failed:", err)
		return
	}
	if count > 0 {
		logger.Debugf("cleared %d expired sessions", count)
	}
}
