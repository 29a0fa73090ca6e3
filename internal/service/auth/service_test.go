package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (r *memUserRepo) add(u *domain.User) {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
}

func (r *memUserRepo) Create(_ context.Context, in userrepo.CreateUserInput) (*domain.User, error) {
	if _, ok := r.byEmail[in.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: in.PasswordHash,
		IsStaff:      in.IsStaff,
		CreatedAt:    time.Now(),
	}
	r.add(u)
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (r *memTokenRepo) Create(_ context.Context, tok tokenrepo.Token) error {
	if _, ok := r.tokens[tok.Token]; ok {
		return domain.ErrAlreadyExists
	}
	r.tokens[tok.Token] = tok
	return nil
}

func (r *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	tok, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tok, nil
}

func (r *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func newTestService() (*Service, *memUserRepo, *memTokenRepo) {
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	return New(users, tokens, time.Hour), users, tokens
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []SignupInput{
		{Email: "", Password: "longenough"},
		{Email: "not-an-email", Password: "longenough"},
		{Email: "a@b.com", Password: "short"},
	}
	for _, in := range cases {
		_, err := svc.Signup(context.Background(), in)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
	}
}

func TestSignupNormalizesEmailAndHashesPassword(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Ada@Example.COM ",
		Name:     " Ada ",
		Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.Name)
	assert.NotEqual(t, "correcthorse", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correcthorse")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	in := SignupInput{Email: "ada@example.com", Password: "correcthorse"}
	_, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLoginIssuesWorkingToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupInput{Email: "ada@example.com", Password: "correcthorse"})
	require.NoError(t, err)

	tok, user, err := svc.Login(context.Background(), "ada@example.com", "correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := svc.Identify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupInput{Email: "ada@example.com", Password: "correcthorse"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIdentifyUnknownToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Identify(context.Background(), "bogus")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIdentifyExpiredTokenIsRevoked(t *testing.T) {
	svc, users, tokens := newTestService()

	u := &domain.User{ID: uuid.NewString(), Email: "ada@example.com"}
	users.add(u)
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := svc.Identify(context.Background(), "stale")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, ok := tokens.tokens["stale"]
	assert.False(t, ok, "expired token should be deleted on use")
}
