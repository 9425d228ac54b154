package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"userapi/internal/model"
	repoMocks "userapi/internal/repository/mocks"
	storeMocks "userapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUserService_Details(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		id            string
		setupMocks    func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage)
		want          *model.UserDetails
		wantErr       error
		wantErrMsg    string
		wantWarnCount int
	}{
		{
			name: "happy path with avatar",
			id:   "u1",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, "u1").Return(&model.User{
					ID: "u1", Name: "Ada", Email: "ada@example.com", AvatarKey: "avatars/u1.png", CreatedAt: created,
				}, nil)
				mStore.On("PresignGet", ctx, "avatars/u1.png", 5*time.Minute).
					Return("https://cdn.local/avatars/u1.png?sig=1", nil)
			},
			want: &model.UserDetails{
				User:      model.User{ID: "u1", Name: "Ada", Email: "ada@example.com", AvatarKey: "avatars/u1.png", CreatedAt: created},
				AvatarURL: "https://cdn.local/avatars/u1.png?sig=1",
			},
		},
		{
			name: "no avatar key skips storage",
			id:   "u2",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, "u2").Return(&model.User{ID: "u2", Name: "Grace"}, nil)
			},
			want: &model.UserDetails{User: model.User{ID: "u2", Name: "Grace"}},
		},
		{
			name: "presign failure degrades to no avatar",
			id:   "u3",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, "u3").Return(&model.User{ID: "u3", AvatarKey: "avatars/u3.png"}, nil)
				mStore.On("PresignGet", ctx, "avatars/u3.png", 5*time.Minute).
					Return("", errors.New("signer unavailable"))
			},
			want:          &model.UserDetails{User: model.User{ID: "u3", AvatarKey: "avatars/u3.png"}},
			wantWarnCount: 1,
		},
		{
			name:       "validation error - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository error",
			id:   "u4",
			setupMocks: func(mRepo *repoMocks.MockUserRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, "u4").Return(nil, errors.New("db down"))
			},
			wantErrMsg: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			mStore := new(storeMocks.MockStorage)
			tt.setupMocks(mRepo, mStore)

			core, logs := observer.New(zapcore.WarnLevel)
			svc := NewUserService(mRepo, mStore, 5*time.Minute, zap.New(core))

			got, err := svc.Details(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantWarnCount, logs.FilterMessage("avatar_presign_failed").Len())

			mRepo.AssertExpectations(t)
			mStore.AssertExpectations(t)
		})
	}
}

func TestUserService_Details_WithoutStorage(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", AvatarKey: "avatars/u1.png"}, nil)

	svc := NewUserService(mRepo, nil, 0, nil)

	got, err := svc.Details(ctx, "u1")

	require.NoError(t, err)
	assert.Empty(t, got.AvatarURL)
	mRepo.AssertExpectations(t)
}

func TestNewUserService_DefaultExpiry(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mStore := new(storeMocks.MockStorage)
	mRepo.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", AvatarKey: "k"}, nil)
	mStore.On("PresignGet", ctx, "k", DefaultAvatarExpiry).Return("https://signed", nil)

	svc := NewUserService(mRepo, mStore, -1, zap.NewNop())

	got, err := svc.Details(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "https://signed", got.AvatarURL)
	mock.AssertExpectationsForObjects(t, mRepo, mStore)
}
