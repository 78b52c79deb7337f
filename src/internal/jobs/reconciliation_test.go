package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubReconciler struct {
	calls int
	err   error
}

func (s *stubReconciler) Reconcile(context.Context) ([]domain.AccountDrift, error) {
	s.calls++
	return nil, s.err
}

func TestReconciliationJobRunCallsService(t *testing.T) {
	stub := &stubReconciler{}
	job := NewReconciliationJob(stub, "02:00")

	job.Run()
	stub.err = errors.New("database unavailable")
	job.Run()

	assert.Equal(t, 2, stub.calls)
}

func TestReconciliationJobStopWithoutStart(t *testing.T) {
	job := NewReconciliationJob(&stubReconciler{}, "02:00")
	assert.NotPanics(t, job.Stop)
}
