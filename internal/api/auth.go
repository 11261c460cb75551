package api

import (
	"context"

	"github.com/SeimoDev/LightShop/domain"
)

// AuthAPI wraps the /auth endpoints.
type AuthAPI struct {
	gw domain.Gateway
}

// Login exchanges credentials for a token and user record.
func (a *AuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	if err := a.gw.Post(ctx, "/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates an account and logs it in in one round trip.
func (a *AuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	if err := a.gw.Post(ctx, "/auth/register", reg, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Profile fetches the current user record.
func (a *AuthAPI) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := a.gw.Get(ctx, "/auth/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile mutates the current user record and returns the new state.
func (a *AuthAPI) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := a.gw.Put(ctx, "/auth/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
