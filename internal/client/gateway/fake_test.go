package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	signUpIn  []*cip.SignUpInput
	authIn    []*cip.InitiateAuthInput
	getUserIn []*cip.GetUserInput
	signOutIn []*cip.GlobalSignOutInput

	signUp    func(*cip.SignUpInput) (*cip.SignUpOutput, error)
	auth      func(*cip.InitiateAuthInput) (*cip.InitiateAuthOutput, error)
	getUser   func(*cip.GetUserInput) (*cip.GetUserOutput, error)
	globalOut func(*cip.GlobalSignOutInput) (*cip.GlobalSignOutOutput, error)
}

func (f *fakeCognito) SignUp(ctx context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.signUpIn = append(f.signUpIn, in)
	if f.signUp == nil {
		return nil, errors.New("unexpected SignUp")
	}
	return f.signUp(in)
}

func (f *fakeCognito) InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.authIn = append(f.authIn, in)
	if f.auth == nil {
		return nil, errors.New("unexpected InitiateAuth")
	}
	return f.auth(in)
}

func (f *fakeCognito) GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.signOutIn = append(f.signOutIn, in)
	if f.globalOut == nil {
		return &cip.GlobalSignOutOutput{}, nil
	}
	return f.globalOut(in)
}

func (f *fakeCognito) GetUser(ctx context.Context, in *cip.GetUserInput, _ ...func(*cip.Options)) (*cip.GetUserOutput, error) {
	f.getUserIn = append(f.getUserIn, in)
	if f.getUser == nil {
		return nil, errors.New("unexpected GetUser")
	}
	return f.getUser(in)
}

// signedToken builds a JWT carrying only an exp claim.
func signedToken(t *testing.T, exp time.Time, marker string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"jti": marker,
		"sub": "sub-1",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}
