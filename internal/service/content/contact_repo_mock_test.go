package content

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ contactRepo = &contactRepoMock{}

type contactRepoMock struct {
	CreateFunc func(ctx context.Context, name string, email string, message string) (*domain.ContactSubmission, error)

	calls struct {
		Create []struct {
			Ctx     context.Context
			Name    string
			Email   string
			Message string
		}
	}
	lockCreate sync.RWMutex
}

func (mock *contactRepoMock) Create(ctx context.Context, name string, email string, message string) (*domain.ContactSubmission, error) {
	if mock.CreateFunc == nil {
		panic("contactRepoMock.CreateFunc: method is nil but contactRepo.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Name    string
		Email   string
		Message string
	}{Ctx: ctx, Name: name, Email: email, Message: message}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, name, email, message)
}

func (mock *contactRepoMock) CreateCalls() []struct {
	Ctx     context.Context
	Name    string
	Email   string
	Message string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
