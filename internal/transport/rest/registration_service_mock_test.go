package rest

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/service/registration"
	"sync"
)

var _ registrationService = &registrationServiceMock{}

type registrationServiceMock struct {
	RegisterFunc func(ctx context.Context, input registration.Input) (*registration.Result, error)

	calls struct {
		Register []struct {
			Ctx   context.Context
			Input registration.Input
		}
	}
	lockRegister sync.RWMutex
}

func (mock *registrationServiceMock) Register(ctx context.Context, input registration.Input) (*registration.Result, error) {
	if mock.RegisterFunc == nil {
		panic("registrationServiceMock.RegisterFunc: method is nil but registrationService.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input registration.Input
	}{Ctx: ctx, Input: input}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *registrationServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input registration.Input
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}
