package session

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ registrationLookup = &registrationLookupMock{}

type registrationLookupMock struct {
	LatestByEmailFunc func(ctx context.Context, email string) (*domain.Registration, error)

	calls struct {
		LatestByEmail []struct {
			Ctx   context.Context
			Email string
		}
	}
	lockLatestByEmail sync.RWMutex
}

func (mock *registrationLookupMock) LatestByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	if mock.LatestByEmailFunc == nil {
		panic("registrationLookupMock.LatestByEmailFunc: method is nil but registrationLookup.LatestByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockLatestByEmail.Lock()
	mock.calls.LatestByEmail = append(mock.calls.LatestByEmail, callInfo)
	mock.lockLatestByEmail.Unlock()
	return mock.LatestByEmailFunc(ctx, email)
}

func (mock *registrationLookupMock) LatestByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockLatestByEmail.RLock()
	calls := mock.calls.LatestByEmail
	mock.lockLatestByEmail.RUnlock()
	return calls
}
