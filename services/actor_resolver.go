package services

import (
	"context"
	"errors"

	"pos-service/models"
	"pos-service/repository"
)

var ErrAccountDisabled = errors.New("account deleted or deactivated")

// ActorResolver turns a bearer token into the acting user. The account is
// read on every call, so a deleted or deactivated user loses access at once
// and a role change applies to tokens already issued.
type ActorResolver struct {
	tokens *TokenService
	store  repository.Store
}

// NewActorResolver creates a new ActorResolver.
func NewActorResolver(tokens *TokenService, store repository.Store) *ActorResolver {
	return &ActorResolver{tokens: tokens, store: store}
}

func (r *ActorResolver) Authenticate(ctx context.Context, token string) (models.Actor, error) {
	claimed, err := r.tokens.Parse(token)
	if err != nil {
		return models.Actor{}, err
	}

	user, err := r.store.Users().FindByID(ctx, claimed.UserID)
	if err != nil {
		if isNotFound(err) {
			return models.Actor{}, ErrAccountDisabled
		}
		return models.Actor{}, err
	}
	if !user.IsActive {
		return models.Actor{}, ErrAccountDisabled
	}
	return models.Actor{UserID: user.ID, Username: user.Username, Role: user.RoleID}, nil
}
