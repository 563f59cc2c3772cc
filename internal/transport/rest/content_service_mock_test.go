package rest

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/content"
	"sync"
)

var _ contentService = &contentServiceMock{}

type contentServiceMock struct {
	LatestNewsFunc            func(ctx context.Context, limit int) ([]domain.NewsUpdate, error)
	ProductsFunc              func(ctx context.Context) ([]domain.Product, error)
	PublicationCategoriesFunc func(ctx context.Context) ([]string, error)
	PublicationsFunc          func(ctx context.Context, category string) ([]domain.Publication, error)
	SubmitContactFunc         func(ctx context.Context, input content.ContactInput) (*domain.ContactSubmission, error)
	TeamMembersFunc           func(ctx context.Context) ([]domain.TeamMember, error)

	calls struct {
		LatestNews []struct {
			Ctx   context.Context
			Limit int
		}
		Products []struct {
			Ctx context.Context
		}
		PublicationCategories []struct {
			Ctx context.Context
		}
		Publications []struct {
			Ctx      context.Context
			Category string
		}
		SubmitContact []struct {
			Ctx   context.Context
			Input content.ContactInput
		}
		TeamMembers []struct {
			Ctx context.Context
		}
	}
	lockLatestNews            sync.RWMutex
	lockProducts              sync.RWMutex
	lockPublicationCategories sync.RWMutex
	lockPublications          sync.RWMutex
	lockSubmitContact         sync.RWMutex
	lockTeamMembers           sync.RWMutex
}

func (mock *contentServiceMock) LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error) {
	if mock.LatestNewsFunc == nil {
		panic("contentServiceMock.LatestNewsFunc: method is nil but contentService.LatestNews was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockLatestNews.Lock()
	mock.calls.LatestNews = append(mock.calls.LatestNews, callInfo)
	mock.lockLatestNews.Unlock()
	return mock.LatestNewsFunc(ctx, limit)
}

func (mock *contentServiceMock) LatestNewsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockLatestNews.RLock()
	calls := mock.calls.LatestNews
	mock.lockLatestNews.RUnlock()
	return calls
}

func (mock *contentServiceMock) Products(ctx context.Context) ([]domain.Product, error) {
	if mock.ProductsFunc == nil {
		panic("contentServiceMock.ProductsFunc: method is nil but contentService.Products was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockProducts.Lock()
	mock.calls.Products = append(mock.calls.Products, callInfo)
	mock.lockProducts.Unlock()
	return mock.ProductsFunc(ctx)
}

func (mock *contentServiceMock) ProductsCalls() []struct {
	Ctx context.Context
} {
	mock.lockProducts.RLock()
	calls := mock.calls.Products
	mock.lockProducts.RUnlock()
	return calls
}

func (mock *contentServiceMock) PublicationCategories(ctx context.Context) ([]string, error) {
	if mock.PublicationCategoriesFunc == nil {
		panic("contentServiceMock.PublicationCategoriesFunc: method is nil but contentService.PublicationCategories was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockPublicationCategories.Lock()
	mock.calls.PublicationCategories = append(mock.calls.PublicationCategories, callInfo)
	mock.lockPublicationCategories.Unlock()
	return mock.PublicationCategoriesFunc(ctx)
}

func (mock *contentServiceMock) PublicationCategoriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockPublicationCategories.RLock()
	calls := mock.calls.PublicationCategories
	mock.lockPublicationCategories.RUnlock()
	return calls
}

func (mock *contentServiceMock) Publications(ctx context.Context, category string) ([]domain.Publication, error) {
	if mock.PublicationsFunc == nil {
		panic("contentServiceMock.PublicationsFunc: method is nil but contentService.Publications was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Category string
	}{Ctx: ctx, Category: category}
	mock.lockPublications.Lock()
	mock.calls.Publications = append(mock.calls.Publications, callInfo)
	mock.lockPublications.Unlock()
	return mock.PublicationsFunc(ctx, category)
}

func (mock *contentServiceMock) PublicationsCalls() []struct {
	Ctx      context.Context
	Category string
} {
	mock.lockPublications.RLock()
	calls := mock.calls.Publications
	mock.lockPublications.RUnlock()
	return calls
}

func (mock *contentServiceMock) SubmitContact(ctx context.Context, input content.ContactInput) (*domain.ContactSubmission, error) {
	if mock.SubmitContactFunc == nil {
		panic("contentServiceMock.SubmitContactFunc: method is nil but contentService.SubmitContact was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input content.ContactInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitContact.Lock()
	mock.calls.SubmitContact = append(mock.calls.SubmitContact, callInfo)
	mock.lockSubmitContact.Unlock()
	return mock.SubmitContactFunc(ctx, input)
}

func (mock *contentServiceMock) SubmitContactCalls() []struct {
	Ctx   context.Context
	Input content.ContactInput
} {
	mock.lockSubmitContact.RLock()
	calls := mock.calls.SubmitContact
	mock.lockSubmitContact.RUnlock()
	return calls
}

func (mock *contentServiceMock) TeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	if mock.TeamMembersFunc == nil {
		panic("contentServiceMock.TeamMembersFunc: method is nil but contentService.TeamMembers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockTeamMembers.Lock()
	mock.calls.TeamMembers = append(mock.calls.TeamMembers, callInfo)
	mock.lockTeamMembers.Unlock()
	return mock.TeamMembersFunc(ctx)
}

func (mock *contentServiceMock) TeamMembersCalls() []struct {
	Ctx context.Context
} {
	mock.lockTeamMembers.RLock()
	calls := mock.calls.TeamMembers
	mock.lockTeamMembers.RUnlock()
	return calls
}
