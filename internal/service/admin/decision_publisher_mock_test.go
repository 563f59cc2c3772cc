package admin

import (
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ decisionPublisher = &decisionPublisherMock{}

type decisionPublisherMock struct {
	PublishFunc func(e domain.RegistrationDecision)

	calls struct {
		Publish []struct {
			E domain.RegistrationDecision
		}
	}
	lockPublish sync.RWMutex
}

func (mock *decisionPublisherMock) Publish(e domain.RegistrationDecision) {
	if mock.PublishFunc == nil {
		panic("decisionPublisherMock.PublishFunc: method is nil but decisionPublisher.Publish was just called")
	}
	callInfo := struct {
		E domain.RegistrationDecision
	}{E: e}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(e)
}

func (mock *decisionPublisherMock) PublishCalls() []struct {
	E domain.RegistrationDecision
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
