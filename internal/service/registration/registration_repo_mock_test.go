package registration

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ registrationRepo = &registrationRepoMock{}

type registrationRepoMock struct {
	CreateFunc func(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Reg *domain.Registration
		}
	}
	lockCreate sync.RWMutex
}

func (mock *registrationRepoMock) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	if mock.CreateFunc == nil {
		panic("registrationRepoMock.CreateFunc: method is nil but registrationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Reg *domain.Registration
	}{Ctx: ctx, Reg: reg}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, reg)
}

func (mock *registrationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Reg *domain.Registration
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
