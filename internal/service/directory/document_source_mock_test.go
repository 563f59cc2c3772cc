package directory

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ documentSource = &documentSourceMock{}

type documentSourceMock struct {
	ListAllFunc func(ctx context.Context) ([]domain.Document, error)

	calls struct {
		ListAll []struct {
			Ctx context.Context
		}
	}
	lockListAll sync.RWMutex
}

func (mock *documentSourceMock) ListAll(ctx context.Context) ([]domain.Document, error) {
	if mock.ListAllFunc == nil {
		panic("documentSourceMock.ListAllFunc: method is nil but documentSource.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *documentSourceMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}
