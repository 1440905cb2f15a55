package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

func newAuthServiceForTest(users *fakeUserRepo, units *fakeUnitRepo) *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 1,
		BcryptCost:          4, // min cost keeps the test fast
		AdminCodes:          []string{"let-me-in"},
	}
	return NewAuthService(cfg, users, units)
}

func TestRegisterEmployee(t *testing.T) {
	users := newFakeUserRepo()
	units := newFakeUnitRepo(&domain.Unit{ID: 1, Name: "General Medicine", Code: "GM"})
	svc := newAuthServiceForTest(users, units)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		UnitID:   int64Ptr(1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleEmployee, result.User.Role)
	require.NotNil(t, result.User.UnitID)
	assert.Equal(t, int64(1), *result.User.UnitID)
	assert.NotEqual(t, "hunter22", result.User.PasswordHash)
}

func TestRegisterEmployeeRequiresUnit(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeUnitRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRegisterEmployeeUnknownUnit(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeUnitRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		UnitID:   int64Ptr(42),
	})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestRegisterAdminCodeGate(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeUnitRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:      "Ava Lin",
		Email:     "ava@example.com",
		Password:  "hunter22",
		Role:      "admin",
		AdminCode: "wrong",
	})
	assertDomainCode(t, err, "FORBIDDEN")

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:      "Ava Lin",
		Email:     "ava@example.com",
		Password:  "hunter22",
		Role:      "admin",
		AdminCode: "let-me-in",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.Nil(t, result.User.UnitID)
}

func TestRegisterMissingFieldsReportedInOrder(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeUnitRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "sam@example.com"})
	assertDomainCode(t, err, "VALIDATION_FAILED")
	assert.Contains(t, err.Error(), "name is required")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	units := newFakeUnitRepo(&domain.Unit{ID: 1, Name: "General Medicine", Code: "GM"})
	svc := newAuthServiceForTest(users, units)

	input := RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		UnitID:   int64Ptr(1),
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assertDomainCode(t, err, "CONFLICT")
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeUnitRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     "superuser",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	units := newFakeUnitRepo(&domain.Unit{ID: 1, Name: "General Medicine", Code: "GM"})
	svc := newAuthServiceForTest(users, units)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		UnitID:   int64Ptr(1),
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "sam@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(context.Background(), "sam@example.com", "wrong")
	assertDomainCode(t, err, "UNAUTHENTICATED")

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assertDomainCode(t, err, "UNAUTHENTICATED")
}

func TestProfile(t *testing.T) {
	users := newFakeUserRepo()
	units := newFakeUnitRepo(&domain.Unit{ID: 1, Name: "General Medicine", Code: "GM"})
	svc := newAuthServiceForTest(users, units)

	registered, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "hunter22",
		UnitID:   int64Ptr(1),
	})
	require.NoError(t, err)

	user, err := svc.Profile(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, domain.RoleEmployee, user.Role)

	_, err = svc.Profile(context.Background(), 9999)
	assertDomainCode(t, err, "UNAUTHENTICATED")
}
