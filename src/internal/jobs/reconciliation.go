package jobs

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/jasonlvhit/gocron"
)

const reconcileTimeout = 5 * time.Minute

// ReconciliationJob runs the ledger reconciliation once a day at a fixed
// wall-clock time.
type ReconciliationJob struct {
	service service_interfaces.ReconciliationService
	at      string
	stop    chan bool
}

func NewReconciliationJob(service service_interfaces.ReconciliationService, at string) *ReconciliationJob {
	return &ReconciliationJob{service: service, at: at}
}

func (j *ReconciliationJob) Start() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At(j.at).Do(j.Run)
	j.stop = s.Start()

	logger.Info("reconciliation job scheduled", logger.Fields{
		"at": j.at,
	})
}

func (j *ReconciliationJob) Stop() {
	if j.stop == nil {
		return
	}
	j.stop <- true
	j.stop = nil
}

// Run performs one reconciliation pass.
func (j *ReconciliationJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	drifts, err := j.service.Reconcile(ctx)
	if err != nil {
		logger.Error("reconciliation job failed", err, nil)
		return
	}
	logger.Info("reconciliation job finished", logger.Fields{
		"drifted": len(drifts),
	})
}
