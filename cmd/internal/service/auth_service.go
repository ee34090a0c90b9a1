package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cloudnotes/cmd/internal/contract"
	"cloudnotes/cmd/internal/domain/entity"
	"cloudnotes/cmd/internal/domain/sqlite/repository"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/apierror"
	"cloudnotes/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *entity.Account) error
}

type TokenIssuer interface {
	Issue(accountID, email string) (string, error)
}

type AuthService struct {
	AccountRepo AccountRepository
	Validate    *validator.Validate
	Tokens      TokenIssuer
	HashCost    int
}

func NewAuthService(accountRepo AccountRepository, validate *validator.Validate, tokens TokenIssuer, hashCost int) *AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		AccountRepo: accountRepo,
		Validate:    validate,
		Tokens:      tokens,
		HashCost:    hashCost,
	}
}

// Register creates an account. The password is stored only as a bcrypt hash.
func (a *AuthService) Register(ctx context.Context, req *contract.RegisterRequest) (*contract.AccountResponse, apierror.ErrorResponse) {
	// Passwords are taken verbatim, whitespace included.
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := a.AccountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if account (%s) exists: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.EmailTakenError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.HashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		problems := apierror.NewStructured(http.StatusBadRequest)
		problems.Add("password", "Value is too long, max: 72 bytes")
		return nil, problems
	}

	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	account := &entity.Account{
		ID:           uid.Generate(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.AccountRepo.Create(ctx, account)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a race against a concurrent registration.
		return nil, apierror.EmailTakenError
	}

	if err != nil {
		log.Errorf("failed to create account: %v", err)
		return nil, apierror.InternalServerError
	}
	return toAccountResponse(account), nil
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password are reported identically.
func (a *AuthService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	req.Email = strings.TrimSpace(req.Email)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	account, err := a.AccountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch account from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if account == nil {
		return nil, apierror.InvalidCredentialsError
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, apierror.InvalidCredentialsError
	}

	token, err := a.Tokens.Issue(account.ID, account.Email)
	if err != nil {
		log.Errorf("failed to issue token for account %s: %v", account.ID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.LoginResponse{Token: token, User: toAccountResponse(account)}, nil
}

func toAccountResponse(account *entity.Account) *contract.AccountResponse {
	return &contract.AccountResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	}
}
