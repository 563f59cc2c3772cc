package status

import (
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ identitySink = &identitySinkMock{}

type identitySinkMock struct {
	ApplyIdentityFunc func(identity *domain.Identity) bool

	calls struct {
		ApplyIdentity []struct {
			Identity *domain.Identity
		}
	}
	lockApplyIdentity sync.RWMutex
}

func (mock *identitySinkMock) ApplyIdentity(identity *domain.Identity) bool {
	if mock.ApplyIdentityFunc == nil {
		panic("identitySinkMock.ApplyIdentityFunc: method is nil but identitySink.ApplyIdentity was just called")
	}
	callInfo := struct {
		Identity *domain.Identity
	}{Identity: identity}
	mock.lockApplyIdentity.Lock()
	mock.calls.ApplyIdentity = append(mock.calls.ApplyIdentity, callInfo)
	mock.lockApplyIdentity.Unlock()
	return mock.ApplyIdentityFunc(identity)
}

func (mock *identitySinkMock) ApplyIdentityCalls() []struct {
	Identity *domain.Identity
} {
	mock.lockApplyIdentity.RLock()
	calls := mock.calls.ApplyIdentity
	mock.lockApplyIdentity.RUnlock()
	return calls
}
