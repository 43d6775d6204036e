package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tasktrackr/task-tracker-api/internal/models"
	"github.com/tasktrackr/task-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = s.db.AutoMigrate(&models.User{})
	s.Require().NoError(err)

	s.service = NewUserService(repository.NewUserRepository(s.db))
}

func (s *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *UserServiceTestSuite) register(name, email string) *models.User {
	user, err := s.service.Register(RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	s.Require().NoError(err)
	return user
}

func (s *UserServiceTestSuite) TestRegisterDefaultsRole() {
	user := s.register("Alice", "alice@example.com")
	s.Equal(models.RoleTokenUser, user.Roles)
	s.False(user.IsAdmin())
	s.NotEqual("secret123", user.PasswordHash)
}

func (s *UserServiceTestSuite) TestRegisterBlankRolesDefault() {
	user, err := s.service.Register(RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Roles:    "   ",
	})
	s.Require().NoError(err)
	s.Equal(models.RoleTokenUser, user.Roles)
}

func (s *UserServiceTestSuite) TestRegisterKeepsExplicitRoles() {
	user, err := s.service.Register(RegisterInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "secret123",
		Roles:    "ROLE_USER,ROLE_ADMIN",
	})
	s.Require().NoError(err)
	s.True(user.IsAdmin())
}

func (s *UserServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	s.register("Alice", "alice@example.com")

	_, err := s.service.Register(RegisterInput{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *UserServiceTestSuite) TestRegisterRejectsShortPassword() {
	_, err := s.service.Register(RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "short",
	})
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	s.register("Alice", "alice@example.com")

	user, err := s.service.Authenticate("alice@example.com", "secret123")
	s.Require().NoError(err)
	s.Equal("Alice", user.Name)
}

func (s *UserServiceTestSuite) TestAuthenticateFailuresCollapse() {
	s.register("Alice", "alice@example.com")

	_, err := s.service.Authenticate("alice@example.com", "wrongpass")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Authenticate("nobody@example.com", "secret123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestGetByEmailAndID() {
	created := s.register("Alice", "alice@example.com")

	byEmail, err := s.service.GetByEmail("alice@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, byEmail.ID)

	byID, err := s.service.GetByID(created.ID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", byID.Email)

	_, err = s.service.GetByEmail("nobody@example.com")
	s.ErrorIs(err, ErrUserNotFound)

	_, err = s.service.GetByID(9999)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestSearch() {
	s.register("Alice Smith", "alice@example.com")
	s.register("Bob Jones", "bob@corp.example.com")

	byName, err := s.service.Search("smith")
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Alice Smith", byName[0].Name)

	byEmail, err := s.service.Search("CORP")
	s.Require().NoError(err)
	s.Require().Len(byEmail, 1)
	s.Equal("Bob Jones", byEmail[0].Name)

	all, err := s.service.Search("   ")
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
