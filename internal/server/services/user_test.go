package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
)

func newUserService() *UserService {
	return NewUserService(repomanager.NewMemoryRepositoryManager(), testConfig(), testLogger())
}

func TestUserService_RegisterValidation(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	tests := []struct {
		name               string
		uname, email, pass string
		wantField          string
	}{
		{"empty name", "", "a@b.test", "longenough", "name"},
		{"empty email", "Ann", "", "longenough", "email"},
		{"email without at", "Ann", "not-an-address", "longenough", "email"},
		{"short password", "Ann", "a@b.test", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(ctx, tt.uname, tt.email, tt.pass)
			require.ErrorIs(t, err, common.ErrorValidation)

			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	token, user, err := s.Register(ctx, "Ann", "ann@example.test", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must not be stored in clear")

	token, got, err := s.Login(ctx, "ann@example.test", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Ann", "ann@example.test", "correct horse")
	require.NoError(t, err)

	_, _, err = s.Register(ctx, "Other", "ann@example.test", "battery staple")
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestUserService_LoginFailuresAreUniform(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Ann", "ann@example.test", "correct horse")
	require.NoError(t, err)

	// social account without a stored password
	_, _, err = s.SocialLogin(ctx, &models.SocialProfile{
		Provider: "google", ProviderID: "g-1", Email: "bob@example.test", Name: "Bob",
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		email, pass string
	}{
		{"unknown email", "nobody@example.test", "whatever"},
		{"wrong password", "ann@example.test", "wrong"},
		{"credential-less account", "bob@example.test", "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Login(ctx, tt.email, tt.pass)
			assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
		})
	}
}

func TestUserService_SocialLoginFindOrCreate(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	profile := &models.SocialProfile{
		Provider: "google", ProviderID: "g-42", Email: "carol@example.test", Name: "Carol",
	}

	_, created, err := s.SocialLogin(ctx, profile)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// same identity again resolves to the same account
	_, again, err := s.SocialLogin(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	// a different provider with the same email links to the existing account
	_, linked, err := s.SocialLogin(ctx, &models.SocialProfile{
		Provider: "github", ProviderID: "gh-7", Email: "carol@example.test", Name: "Carol",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, linked.ID)
}

func TestUserService_SocialLoginLinksToPasswordAccount(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	_, registered, err := s.Register(ctx, "Ann", "ann@example.test", "correct horse")
	require.NoError(t, err)

	_, social, err := s.SocialLogin(ctx, &models.SocialProfile{
		Provider: "google", ProviderID: "g-1", Email: "ann@example.test", Name: "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, social.ID)

	// the original password still works after linking
	_, _, err = s.Login(ctx, "ann@example.test", "correct horse")
	assert.NoError(t, err)
}

func TestUserService_Resolve(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	token, user, err := s.Register(ctx, "Ann", "ann@example.test", "correct horse")
	require.NoError(t, err)

	got, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}
