package user

import (
	"errors"

	"github.com/sgomezd/QuizRush/internal/apperrors"
	"gorm.io/gorm"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (u *UserService) Register(req RegisterRequest) (*UserResponse, string, error) {
	created, err := u.repo.CreateUser(req.Username, req.Password, req.Grade, req.SchoolName)
	if err != nil {
		return nil, "", err
	}

	token, errJWT := GenerateJWT(created.ID, created.Username)
	if errJWT != nil {
		return nil, "", apperrors.NewAppError(500, "error creating jwt token", errJWT)
	}
	return NewUserResponse(created, nil), token, nil
}

// Login fails with the same status and message whether the username is
// unknown or the password is wrong, so the endpoint cannot be used to
// probe for existing accounts.
func (u *UserService) Login(req LoginRequest) (*UserResponse, string, error) {
	validated, err := u.repo.ValidateUser(req.Username, req.Password)
	if err != nil {
		return nil, "", apperrors.NewAppError(401, "invalid credentials", err)
	}

	stats, err := u.repo.FetchUserStats(validated.ID)
	if err != nil {
		return nil, "", err
	}

	token, errJWT := GenerateJWT(validated.ID, validated.Username)
	if errJWT != nil {
		return nil, "", apperrors.NewAppError(500, "error creating jwt token", errJWT)
	}
	return NewUserResponse(validated, &stats), token, nil
}

// MergeStats resolves the username and hands the normalized submission to
// the atomic upsert. All conflict resolution happens store-side.
func (u *UserService) MergeStats(username string, submission StatsSubmission) error {
	found, err := u.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(404, "user not found", err)
		}
		return apperrors.NewAppError(500, "internal server error", err)
	}

	submission.applyDefaults()
	return u.repo.UpsertStats(found.ID, &submission)
}

func (u *UserService) DeleteAccount(userID uint) error {
	return u.repo.DeleteUser(userID)
}
