package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const usersTable = "users"

// UserService handles account registration, credential checks and profile
// updates. Profile mutations feed the audit trail; password hashes never
// appear in audit values.
type UserService struct {
	pool      *pgxpool.Pool
	userRepo  *repositories.UserRepo
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewUserService(pool *pgxpool.Pool, userRepo *repositories.UserRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *UserService {
	return &UserService{pool: pool, userRepo: userRepo, auditRepo: auditRepo, log: log}
}

func (s *UserService) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validation("email", "must be a valid address")
	}
	if len(password) < 8 {
		return nil, apperrors.Validation("password", "must be at least 8 characters")
	}
	if displayName == "" {
		displayName = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage("failed to hash password", err)
	}

	u := &models.User{
		Email:        email,
		DisplayName:  displayName,
		Role:         "editor",
		PasswordHash: string(hash),
	}

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(ctx, tx, u); err != nil {
			return err
		}
		// Self-registration: the new account is its own actor.
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  usersTable,
			RecordID:   u.ID,
			Action:     models.AuditActionInsert,
			ActorID:    &u.ID,
			ActorLabel: u.Email,
			NewValues:  u.AuditValues(),
		})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the account. Callers issue
// the JWT; lookup failures and bad passwords are indistinguishable to the
// client.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Validation("credentials", "invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Validation("credentials", "invalid email or password")
	}

	if err := s.userRepo.TouchLastActive(ctx, u.ID); err != nil {
		s.log.Warn("failed to touch last_active_at", zap.Error(err))
	}
	return u, nil
}

type ProfilePatch struct {
	Email       *string
	DisplayName *string
}

func (s *UserService) UpdateProfile(ctx context.Context, actor models.Actor, patch ProfilePatch) (*models.User, error) {
	if patch.Email == nil && patch.DisplayName == nil {
		return nil, apperrors.Validation("patch", "no fields to update")
	}

	cur, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	oldValues := cur.AuditValues()
	if patch.Email != nil {
		cur.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.DisplayName != nil {
		cur.DisplayName = *patch.DisplayName
	}

	fields := models.ChangedFields(oldValues, cur.AuditValues())

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.userRepo.UpdateTx(ctx, tx, cur); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:     usersTable,
			RecordID:      cur.ID,
			Action:        models.AuditActionUpdate,
			ActorID:       &actor.ID,
			ActorLabel:    actor.Label,
			OldValues:     oldValues,
			NewValues:     cur.AuditValues(),
			ChangedFields: fields,
		})
	})
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
