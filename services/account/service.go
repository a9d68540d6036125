// Package account manages sign-in profile records. It gates navigation UI
// only; nothing in the transcript or summary path consults it.
package account

import (
	"context"
	"time"

	"tubescribe/errors"
	"tubescribe/models"
	"tubescribe/repository"

	"github.com/sirupsen/logrus"
)

type Service interface {
	// Create validates and stores a new account. The ID comes from the
	// auth provider; creating an existing ID is a conflict.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// Get returns the account with the given ID.
	Get(ctx context.Context, id string) (*models.Account, error)
}

type service struct {
	repo   repository.AccountRepository
	logger *logrus.Logger
}

func NewService(repo repository.AccountRepository, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	const op = "AccountService.Create"

	if account.ID == "" {
		return nil, errors.InvalidInput(op, nil, "Account ID is required")
	}
	if account.Email == "" {
		return nil, errors.InvalidInput(op, nil, "Email is required")
	}

	if _, err := s.repo.GetByID(ctx, account.ID); err == nil {
		return nil, errors.Conflict(op, nil, "Account already exists")
	} else if !errors.IsNotFound(err) {
		return nil, errors.Internal(op, err, "Failed to check existing account")
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, errors.Internal(op, err, "Failed to create account")
	}

	s.logger.WithField("account_id", account.ID).Info("Account created")
	return account, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Account, error) {
	const op = "AccountService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "Account ID is required")
	}

	return s.repo.GetByID(ctx, id)
}
