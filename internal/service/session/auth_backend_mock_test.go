package session

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/auth"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ authBackend = &authBackendMock{}

type authBackendMock struct {
	GetUserFunc            func(ctx context.Context, accessToken string) (*domain.Identity, error)
	RefreshSessionFunc     func(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignInWithPasswordFunc func(ctx context.Context, email string, password string) (*domain.Session, error)
	SignOutFunc            func(ctx context.Context, accessToken string) error
	VerifyAccessTokenFunc  func(token string) (*auth.AccessClaims, error)

	calls struct {
		GetUser []struct {
			Ctx         context.Context
			AccessToken string
		}
		RefreshSession []struct {
			Ctx          context.Context
			RefreshToken string
		}
		SignInWithPassword []struct {
			Ctx      context.Context
			Email    string
			Password string
		}
		SignOut []struct {
			Ctx         context.Context
			AccessToken string
		}
		VerifyAccessToken []struct {
			Token string
		}
	}
	lockGetUser            sync.RWMutex
	lockRefreshSession     sync.RWMutex
	lockSignInWithPassword sync.RWMutex
	lockSignOut            sync.RWMutex
	lockVerifyAccessToken  sync.RWMutex
}

func (mock *authBackendMock) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if mock.GetUserFunc == nil {
		panic("authBackendMock.GetUserFunc: method is nil but authBackend.GetUser was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		AccessToken string
	}{Ctx: ctx, AccessToken: accessToken}
	mock.lockGetUser.Lock()
	mock.calls.GetUser = append(mock.calls.GetUser, callInfo)
	mock.lockGetUser.Unlock()
	return mock.GetUserFunc(ctx, accessToken)
}

func (mock *authBackendMock) GetUserCalls() []struct {
	Ctx         context.Context
	AccessToken string
} {
	mock.lockGetUser.RLock()
	calls := mock.calls.GetUser
	mock.lockGetUser.RUnlock()
	return calls
}

func (mock *authBackendMock) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if mock.RefreshSessionFunc == nil {
		panic("authBackendMock.RefreshSessionFunc: method is nil but authBackend.RefreshSession was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RefreshToken string
	}{Ctx: ctx, RefreshToken: refreshToken}
	mock.lockRefreshSession.Lock()
	mock.calls.RefreshSession = append(mock.calls.RefreshSession, callInfo)
	mock.lockRefreshSession.Unlock()
	return mock.RefreshSessionFunc(ctx, refreshToken)
}

func (mock *authBackendMock) RefreshSessionCalls() []struct {
	Ctx          context.Context
	RefreshToken string
} {
	mock.lockRefreshSession.RLock()
	calls := mock.calls.RefreshSession
	mock.lockRefreshSession.RUnlock()
	return calls
}

func (mock *authBackendMock) SignInWithPassword(ctx context.Context, email string, password string) (*domain.Session, error) {
	if mock.SignInWithPasswordFunc == nil {
		panic("authBackendMock.SignInWithPasswordFunc: method is nil but authBackend.SignInWithPassword was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Email    string
		Password string
	}{Ctx: ctx, Email: email, Password: password}
	mock.lockSignInWithPassword.Lock()
	mock.calls.SignInWithPassword = append(mock.calls.SignInWithPassword, callInfo)
	mock.lockSignInWithPassword.Unlock()
	return mock.SignInWithPasswordFunc(ctx, email, password)
}

func (mock *authBackendMock) SignInWithPasswordCalls() []struct {
	Ctx      context.Context
	Email    string
	Password string
} {
	mock.lockSignInWithPassword.RLock()
	calls := mock.calls.SignInWithPassword
	mock.lockSignInWithPassword.RUnlock()
	return calls
}

func (mock *authBackendMock) SignOut(ctx context.Context, accessToken string) error {
	if mock.SignOutFunc == nil {
		panic("authBackendMock.SignOutFunc: method is nil but authBackend.SignOut was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		AccessToken string
	}{Ctx: ctx, AccessToken: accessToken}
	mock.lockSignOut.Lock()
	mock.calls.SignOut = append(mock.calls.SignOut, callInfo)
	mock.lockSignOut.Unlock()
	return mock.SignOutFunc(ctx, accessToken)
}

func (mock *authBackendMock) SignOutCalls() []struct {
	Ctx         context.Context
	AccessToken string
} {
	mock.lockSignOut.RLock()
	calls := mock.calls.SignOut
	mock.lockSignOut.RUnlock()
	return calls
}

func (mock *authBackendMock) VerifyAccessToken(token string) (*auth.AccessClaims, error) {
	if mock.VerifyAccessTokenFunc == nil {
		panic("authBackendMock.VerifyAccessTokenFunc: method is nil but authBackend.VerifyAccessToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockVerifyAccessToken.Lock()
	mock.calls.VerifyAccessToken = append(mock.calls.VerifyAccessToken, callInfo)
	mock.lockVerifyAccessToken.Unlock()
	return mock.VerifyAccessTokenFunc(token)
}

func (mock *authBackendMock) VerifyAccessTokenCalls() []struct {
	Token string
} {
	mock.lockVerifyAccessToken.RLock()
	calls := mock.calls.VerifyAccessToken
	mock.lockVerifyAccessToken.RUnlock()
	return calls
}
