package status

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ registrationLookup = &registrationLookupMock{}

type registrationLookupMock struct {
	LatestForUserFunc func(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error)

	calls struct {
		LatestForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Email  string
		}
	}
	lockLatestForUser sync.RWMutex
}

func (mock *registrationLookupMock) LatestForUser(ctx context.Context, userID uuid.UUID, email string) (*domain.Registration, error) {
	if mock.LatestForUserFunc == nil {
		panic("registrationLookupMock.LatestForUserFunc: method is nil but registrationLookup.LatestForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Email  string
	}{Ctx: ctx, UserID: userID, Email: email}
	mock.lockLatestForUser.Lock()
	mock.calls.LatestForUser = append(mock.calls.LatestForUser, callInfo)
	mock.lockLatestForUser.Unlock()
	return mock.LatestForUserFunc(ctx, userID, email)
}

func (mock *registrationLookupMock) LatestForUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Email  string
} {
	mock.lockLatestForUser.RLock()
	calls := mock.calls.LatestForUser
	mock.lockLatestForUser.RUnlock()
	return calls
}
