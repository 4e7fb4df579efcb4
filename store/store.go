package store

import (
	"context"

	"github.com/wize-house/api-go/models"
)

// AccountStore is the durable home of member records and their activity
// ledgers. The accrual flow only ever talks to this interface, so tests and
// alternative backends can swap in without touching the engine.
//
// SaveActivity must be durable before UpdateAggregate is attempted; if the
// aggregate write fails afterwards the ledger stays authoritative and the
// aggregate can be rebuilt from it.
type AccountStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
	FindByUpline(ctx context.Context, nickname string) ([]models.User, error)

	SaveActivity(ctx context.Context, activity *models.Activity) error
	UpdateAggregate(ctx context.Context, userID uint, points, streak int) error
	ResetHistory(ctx context.Context, userID uint) error
}
