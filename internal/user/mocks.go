package user

import (
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(username, password string, grade int, schoolName string) (*User, error) {
	args := m.Called(username, password, grade, schoolName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) ValidateUser(username, password string) (*User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FetchUserStats(userID uint) (UserStats, error) {
	args := m.Called(userID)
	return args.Get(0).(UserStats), args.Error(1)
}

func (m *MockUserRepository) UpsertStats(userID uint, submission *StatsSubmission) error {
	args := m.Called(userID, submission)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
