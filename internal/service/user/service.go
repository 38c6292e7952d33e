package user

import (
	"context"
	"fmt"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	users user.UserRepository
}

func NewUserService(users user.UserRepository) user.UserService {
	return &UserServiceImpl{users: users}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	multiplier := req.OvertimeMultiplier
	if multiplier == 0 {
		multiplier = 1.5
	}

	var rate *decimal.Decimal
	if req.HourlyRate != nil {
		d := decimal.NewFromFloat(*req.HourlyRate)
		rate = &d
	}

	created, err := s.users.Create(ctx, user.User{
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Role:               user.Role(req.Role),
		HourlyRate:         rate,
		OvertimeMultiplier: multiplier,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return mapUserResponse(created), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return mapUserResponse(u), nil
}

func mapUserResponse(u user.User) user.UserResponse {
	var rate *string
	if u.HourlyRate != nil {
		s := u.HourlyRate.StringFixed(2)
		rate = &s
	}
	return user.UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               string(u.Role),
		HourlyRate:         rate,
		OvertimeMultiplier: u.OvertimeMultiplier,
	}
}
