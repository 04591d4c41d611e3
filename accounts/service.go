package accounts

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/changenotify/core/logger"
)

// RoleAdmin is the elevated role granted by GrantAdmin.
const RoleAdmin = "admin"

// RoleStore adds a role to an account. It returns ErrAccountNotFound when
// uid does not exist. Adding a role the account already has is not an error.
type RoleStore interface {
	AddRole(ctx context.Context, uid, role string) error
}

// Service elevates accounts.
type Service struct {
	store  RoleStore
	logger *slog.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(store RoleStore, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{store: store, logger: log}
}

// GrantAdmin gives targetUID the admin role on behalf of callerUID.
// An empty caller is ErrUnauthenticated, an empty target ErrInvalidArgument.
// Store failures are returned wrapped in ErrInternal.
func (s *Service) GrantAdmin(ctx context.Context, callerUID, targetUID string) error {
	callerUID = strings.TrimSpace(callerUID)
	targetUID = strings.TrimSpace(targetUID)

	if callerUID == "" {
		return ErrUnauthenticated
	}
	if targetUID == "" {
		return errors.Join(ErrInvalidArgument, errors.New("uid is required"))
	}

	if err := s.store.AddRole(ctx, targetUID, RoleAdmin); err != nil {
		s.logger.ErrorContext(ctx, "grant admin failed",
			slog.String("caller", callerUID),
			slog.String("target", targetUID),
			logger.Error(err))
		return errors.Join(ErrInternal, err)
	}

	s.logger.InfoContext(ctx, "admin role granted",
		slog.String("caller", callerUID),
		slog.String("target", targetUID))
	return nil
}
