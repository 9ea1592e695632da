package delegation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetTool(ctx context.Context, id int64) (*models.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *RepoMock) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *RepoMock) CreatePermission(ctx context.Context, perm models.Permission) (bool, error) {
	args := m.Called(ctx, perm)
	return args.Bool(0), args.Error(1)
}

type LevelsMock struct{ mock.Mock }

func (m *LevelsMock) StoredLevel(ctx context.Context, userID, toolID int64) (models.PermissionLevel, error) {
	args := m.Called(ctx, userID, toolID)
	return args.Get(0).(models.PermissionLevel), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const (
	byCard = "MAINT01"
	toCard = "NEWBIE1"
)

func cardOf(userID int64, subscribed bool) *models.Card {
	return &models.Card{UserID: userID, Owner: models.User{ID: userID, Subscribed: subscribed}}
}

func TestService_Grant(t *testing.T) {
	userLevelOnly := mock.MatchedBy(func(p models.Permission) bool {
		return p.Level == models.LevelUser && p.UserID == 2 && p.ToolID == 1 && p.AddedBy == 1 && !p.CreatedAt.IsZero()
	})

	tests := []struct {
		name    string
		setup   func(r *RepoMock, l *LevelsMock)
		want    models.Outcome
		wantErr bool
	}{
		{
			name: "maintainer grants user level",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
				r.On("CreatePermission", mock.Anything, userLevelOnly).Return(true, nil).Once()
			},
			want: models.OutcomeOK,
		},
		{
			name: "existing permission reports success without change",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
				r.On("CreatePermission", mock.Anything, userLevelOnly).Return(false, nil).Once()
			},
			want: models.OutcomeOK,
		},
		{
			name: "unknown tool",
			setup: func(r *RepoMock, _ *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(nil, storage.ErrToolNotFound)
			},
			want: models.OutcomeNotFound,
		},
		{
			name: "unknown granting card is denied, not not-found",
			setup: func(r *RepoMock, _ *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(nil, storage.ErrCardNotFound)
			},
			want: models.OutcomeDenied,
		},
		{
			name: "unknown target card is denied",
			setup: func(r *RepoMock, _ *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(nil, storage.ErrCardNotFound)
			},
			want: models.OutcomeDenied,
		},
		{
			name: "granting user only has user level",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelUser, nil)
			},
			want: models.OutcomeDenied,
		},
		{
			name: "target not subscribed",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, false), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
			},
			want: models.OutcomeDenied,
		},
		{
			name: "lapsed maintainer cannot grant",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, false), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
			},
			want: models.OutcomeDenied,
		},
		{
			name: "storage failure while creating",
			setup: func(r *RepoMock, l *LevelsMock) {
				r.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
				r.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
				r.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
				l.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
				r.On("CreatePermission", mock.Anything, mock.Anything).Return(false, errors.New("db down"))
			},
			want:    models.OutcomeDenied,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			levels := new(LevelsMock)
			tt.setup(repo, levels)

			got, err := NewService(repo, levels, newNoopLogger()).Grant(context.Background(), 1, toCard, byCard)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
			levels.AssertExpectations(t)
		})
	}
}

func TestService_GrantIsIdempotent(t *testing.T) {
	repo := new(RepoMock)
	levels := new(LevelsMock)
	repo.On("GetTool", mock.Anything, int64(1)).Return(&models.Tool{ID: 1}, nil)
	repo.On("GetCard", mock.Anything, byCard).Return(cardOf(1, true), nil)
	repo.On("GetCard", mock.Anything, toCard).Return(cardOf(2, true), nil)
	levels.On("StoredLevel", mock.Anything, int64(1), int64(1)).Return(models.LevelMaintainer, nil)
	repo.On("CreatePermission", mock.Anything, mock.Anything).Return(true, nil).Once()
	repo.On("CreatePermission", mock.Anything, mock.Anything).Return(false, nil).Once()

	svc := NewService(repo, levels, newNoopLogger())
	for range 2 {
		got, err := svc.Grant(context.Background(), 1, toCard, byCard)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeOK, got)
	}
	repo.AssertNumberOfCalls(t, "CreatePermission", 2)
}
