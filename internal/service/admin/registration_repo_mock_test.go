package admin

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ registrationRepo = &registrationRepoMock{}

type registrationRepoMock struct {
	DecideFunc           func(ctx context.Context, id uuid.UUID, status domain.InvestorStatus, decidedAt time.Time) (*domain.Registration, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	ListByStatusFunc     func(ctx context.Context, status domain.InvestorStatus) ([]domain.Registration, error)

	calls struct {
		Decide []struct {
			Ctx       context.Context
			Id        uuid.UUID
			Status    domain.InvestorStatus
			DecidedAt time.Time
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListByStatus []struct {
			Ctx    context.Context
			Status domain.InvestorStatus
		}
	}
	lockDecide           sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockListByStatus     sync.RWMutex
}

func (mock *registrationRepoMock) Decide(ctx context.Context, id uuid.UUID, status domain.InvestorStatus, decidedAt time.Time) (*domain.Registration, error) {
	if mock.DecideFunc == nil {
		panic("registrationRepoMock.DecideFunc: method is nil but registrationRepo.Decide was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Id        uuid.UUID
		Status    domain.InvestorStatus
		DecidedAt time.Time
	}{Ctx: ctx, Id: id, Status: status, DecidedAt: decidedAt}
	mock.lockDecide.Lock()
	mock.calls.Decide = append(mock.calls.Decide, callInfo)
	mock.lockDecide.Unlock()
	return mock.DecideFunc(ctx, id, status, decidedAt)
}

func (mock *registrationRepoMock) DecideCalls() []struct {
	Ctx       context.Context
	Id        uuid.UUID
	Status    domain.InvestorStatus
	DecidedAt time.Time
} {
	mock.lockDecide.RLock()
	calls := mock.calls.Decide
	mock.lockDecide.RUnlock()
	return calls
}

func (mock *registrationRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("registrationRepoMock.GetByIDForUpdateFunc: method is nil but registrationRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *registrationRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *registrationRepoMock) ListByStatus(ctx context.Context, status domain.InvestorStatus) ([]domain.Registration, error) {
	if mock.ListByStatusFunc == nil {
		panic("registrationRepoMock.ListByStatusFunc: method is nil but registrationRepo.ListByStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Status domain.InvestorStatus
	}{Ctx: ctx, Status: status}
	mock.lockListByStatus.Lock()
	mock.calls.ListByStatus = append(mock.calls.ListByStatus, callInfo)
	mock.lockListByStatus.Unlock()
	return mock.ListByStatusFunc(ctx, status)
}

func (mock *registrationRepoMock) ListByStatusCalls() []struct {
	Ctx    context.Context
	Status domain.InvestorStatus
} {
	mock.lockListByStatus.RLock()
	calls := mock.calls.ListByStatus
	mock.lockListByStatus.RUnlock()
	return calls
}
