package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iftihoq/gobank/internal/domain"
)

// UserUseCase handles registration and authentication. Registration creates
// the user and their bank account in one transaction.
type UserUseCase struct {
	txManager    TransactionManager
	userRepo     UserRepository
	accountRepo  AccountRepository
	idGen        IDGenerator
	accountNoGen AccountNoGenerator
	notifier     Notifier
	logger       zerolog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	accountNoGen AccountNoGenerator,
	notifier Notifier,
	logger zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{
		txManager:    txManager,
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		idGen:        idGen,
		accountNoGen: accountNoGen,
		notifier:     notifier,
		logger:       logger,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a user with a hashed password and a zero-balance account
// with a fresh account number.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if err := domain.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: string(hash),
		Role:           domain.RoleCustomer,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Account numbers collide rarely; retry with a fresh candidate. Any other
	// failure, including an email race lost to a concurrent registration,
	// surfaces immediately.
	for attempt := 0; attempt < AccountNoAttempts; attempt++ {
		account.AccountNo = uc.accountNoGen.Generate()

		err = uc.createUserAndAccount(ctx, user, account)
		if err == nil {
			break
		}

		if !errors.Is(err, domain.ErrAccountNoTaken) {
			return nil, nil, err
		}
	}
	if err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""

	return user, account, nil
}

func (uc *UserUseCase) createUserAndAccount(ctx context.Context, user *domain.User, account *domain.Account) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.userRepo.Create(ctx, tx, user); err != nil {
		return err
	}

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""

	return user, nil
}

// ChangePassword replaces the user's password and sends a best-effort
// notification.
func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash), time.Now().UTC()); err != nil {
		return err
	}

	notifyCtx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
	defer cancel()

	if err := uc.notifier.Send(notifyCtx, user.Email, "Password Changed", "Successfully changed password"); err != nil {
		uc.logger.Warn().Err(err).Str("recipient", user.Email).Msg("notification failed")
	}

	return nil
}

// GetUser retrieves a user by ID without the password hash.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}
