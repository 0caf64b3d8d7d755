package services

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/authz"
	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// AccountService serves user records. Registration is open; mutations
// require the owner (or an admin). Password hashes never leave this
// layer in any representation.
type AccountService struct {
	Users *repos.UserRepo
}

func NewAccountService(users *repos.UserRepo) *AccountService {
	return &AccountService{Users: users}
}

type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AccountService) ListUsers(actor domain.Actor) ([]domain.User, error) {
	if err := authz.Authorize(authz.Users, authz.List, actor); err != nil {
		return nil, err
	}
	return s.Users.List()
}

func (s *AccountService) GetUser(actor domain.Actor, id string) (domain.User, error) {
	if err := authz.Authorize(authz.Users, authz.Retrieve, actor); err != nil {
		return domain.User{}, err
	}
	u, err := s.Users.ByID(id)
	if err != nil {
		return domain.User{}, err
	}
	return *u, nil
}

// Register creates a USER-role account. Public per the policy table.
func (s *AccountService) Register(actor domain.Actor, in UserInput) (domain.User, error) {
	if err := authz.Authorize(authz.Users, authz.Create, actor); err != nil {
		return domain.User{}, err
	}
	username, email, err := s.validateAccount(in, true)
	if err != nil {
		return domain.User{}, err
	}
	taken, err := s.Users.UsernameTaken(username, "")
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, domain.ErrConflict
	}
	h, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Hash:     string(h),
		Role:     "USER",
	}
	if err := s.Users.Insert(u); err != nil {
		return domain.User{}, err
	}
	created, err := s.Users.ByID(u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return *created, nil
}

// UpdateUser rewrites username/email and, when given, the password.
func (s *AccountService) UpdateUser(actor domain.Actor, id string, in UserInput) (domain.User, error) {
	if err := authz.Authorize(authz.Users, authz.Update, actor); err != nil {
		return domain.User{}, err
	}
	cur, err := s.Users.ByID(id)
	if err != nil {
		return domain.User{}, err
	}
	if !authz.OwnsUser(actor, cur.ID) {
		return domain.User{}, domain.ErrForbidden
	}
	username, email, err := s.validateAccount(in, in.Password != "")
	if err != nil {
		return domain.User{}, err
	}
	taken, err := s.Users.UsernameTaken(username, cur.ID)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, domain.ErrConflict
	}
	cur.Username = username
	cur.Email = email
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
		if err != nil {
			return domain.User{}, err
		}
		cur.Hash = string(h)
	}
	if err := s.Users.Update(*cur); err != nil {
		return domain.User{}, err
	}
	updated, err := s.Users.ByID(id)
	if err != nil {
		return domain.User{}, err
	}
	return *updated, nil
}

func (s *AccountService) DeleteUser(actor domain.Actor, id string) error {
	if err := authz.Authorize(authz.Users, authz.Delete, actor); err != nil {
		return err
	}
	cur, err := s.Users.ByID(id)
	if err != nil {
		return err
	}
	if !authz.OwnsUser(actor, cur.ID) {
		return domain.ErrForbidden
	}
	return s.Users.Delete(id)
}

func (s *AccountService) validateAccount(in UserInput, checkPassword bool) (string, string, error) {
	fields := map[string]string{}
	username, ok := validate.Username(in.Username)
	if !ok {
		fields["username"] = "3-30 characters: letters, digits, _ . -"
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		fields["email"] = "must be a valid address"
	}
	if checkPassword && !validate.Password(in.Password) {
		fields["password"] = "8-64 characters with upper, lower and digit"
	}
	if len(fields) > 0 {
		return "", "", &domain.ValidationError{Fields: fields}
	}
	return username, email, nil
}
