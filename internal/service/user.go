package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"userapi/internal/model"
	"userapi/internal/repository"
	"userapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("user not found")
)

// DefaultAvatarExpiry is used when NewUserService is given a non-positive expiry.
const DefaultAvatarExpiry = 15 * time.Minute

// UserService defines the use cases behind the user router.
type UserService interface {
	// Details returns the user's profile, with a pre-signed avatar URL when storage is available.
	Details(ctx context.Context, id string) (*model.UserDetails, error)
}

type userService struct {
	repo         repository.UserRepository
	store        storage.Storage
	avatarExpiry time.Duration
	log          *zap.Logger
}

// NewUserService constructs a UserService. store may be nil, in which case
// details never carry an avatar URL.
func NewUserService(repo repository.UserRepository, store storage.Storage, avatarExpiry time.Duration, log *zap.Logger) UserService {
	if avatarExpiry <= 0 {
		avatarExpiry = DefaultAvatarExpiry
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{repo: repo, store: store, avatarExpiry: avatarExpiry, log: log}
}

func (s *userService) Details(ctx context.Context, id string) (*model.UserDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("user.id", id))

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	details := &model.UserDetails{User: *u}
	if s.store == nil || u.AvatarKey == "" {
		return details, nil
	}

	avatarURL, err := s.store.PresignGet(ctx, u.AvatarKey, s.avatarExpiry)
	if err != nil {
		// Details are still served; the client just gets no avatar.
		s.log.Warn("avatar_presign_failed",
			zap.String("user_id", id),
			zap.String("avatar_key", u.AvatarKey),
			zap.Error(err),
		)
		span.AddEvent("avatar_presign_failed")
		return details, nil
	}
	details.AvatarURL = avatarURL
	return details, nil
}
