package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/cooksocial/internal/client/tokens"
	"github.com/dmitrijs2005/cooksocial/internal/common"
	"github.com/dmitrijs2005/cooksocial/internal/cryptox"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// cognitoAPI is the part of the Cognito user pool client the gateway calls.
type cognitoAPI interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newCognitoClient = func(cfg aws.Config, optFns ...func(*cip.Options)) cognitoAPI {
		return cip.NewFromConfig(cfg, optFns...)
	}
)

// expirySkew treats an access token as expired slightly ahead of its exp
// claim so a request does not race the deadline.
const expirySkew = 30 * time.Second

type CognitoOptions struct {
	Region   string
	ClientID string
	// ClientSecret is set only for app clients created with a secret.
	ClientSecret string
	// Endpoint points the SDK at a local emulator instead of AWS.
	Endpoint string
}

// Cognito signs users in against a user pool app client with the
// USER_PASSWORD_AUTH flow. Tokens go to store so that a restarted client can
// resume the session.
type Cognito struct {
	api          cognitoAPI
	clientID     string
	clientSecret string
	store        tokens.Store
	log          logging.Logger
	now          func() time.Time

	mu     sync.Mutex
	cached *tokens.Tokens
}

func NewCognito(ctx context.Context, opts CognitoOptions, store tokens.Store, log logging.Logger) (*Cognito, error) {
	if opts.ClientID == "" {
		return nil, errors.New("cognito client id is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.Endpoint != "" {
		// emulators accept any signature
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	api := newCognitoClient(cfg, func(o *cip.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return newCognito(api, opts, store, log), nil
}

func newCognito(api cognitoAPI, opts CognitoOptions, store tokens.Store, log logging.Logger) *Cognito {
	return &Cognito{
		api:          api,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		store:        store,
		log:          log.With("module", "gateway", "provider", "cognito"),
		now:          time.Now,
	}
}

func (c *Cognito) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	names := make([]string, 0, len(in.Attributes))
	for name, value := range in.Attributes {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	attrs := make([]types.AttributeType, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, types.AttributeType{
			Name:  aws.String(name),
			Value: aws.String(in.Attributes[name]),
		})
	}

	out, err := c.api.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(c.clientID),
		Username:       aws.String(in.Username),
		Password:       aws.String(in.Password),
		SecretHash:     c.secretHash(in.Username),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, mapError(err)
	}

	c.log.Info(ctx, "user signed up", "username", in.Username, "confirmed", out.UserConfirmed)
	return &SignUpResult{UserID: aws.ToString(out.UserSub), Confirmed: out.UserConfirmed}, nil
}

func (c *Cognito) SignIn(ctx context.Context, username, password string) error {
	params := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if h := c.secretHash(username); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(c.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return mapError(err)
	}

	res := out.AuthenticationResult
	if res == nil {
		return newError(ErrGateway, fmt.Sprintf("Sign-in requires an unsupported challenge: %s", out.ChallengeName))
	}

	c.remember(ctx, tokens.Tokens{
		Username:     username,
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
	})
	return nil
}

// SignOut revokes every token of the user. A session the provider no longer
// recognises counts as signed out.
func (c *Cognito) SignOut(ctx context.Context) error {
	if _, ok := c.current(ctx); !ok {
		return nil
	}

	err := c.withAccessToken(ctx, func(ctx context.Context, access string) error {
		_, err := c.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(access)})
		return err
	})
	if err != nil && !errors.Is(err, ErrNotAuthorized) {
		return err
	}

	c.forget(ctx)
	return nil
}

func (c *Cognito) CurrentUser(ctx context.Context) (*User, error) {
	t, ok := c.current(ctx)
	if !ok {
		return nil, newError(ErrNoSession, "The user is not authenticated")
	}

	var out *cip.GetUserOutput
	err := c.withAccessToken(ctx, func(ctx context.Context, access string) error {
		var err error
		out, err = c.api.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(access)})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotAuthorized) {
			c.forget(ctx)
			return nil, newError(ErrNoSession, Message(err))
		}
		return nil, err
	}

	u := &User{Username: aws.ToString(out.Username)}
	for _, a := range out.UserAttributes {
		if aws.ToString(a.Name) == AttrSub {
			u.UserID = aws.ToString(a.Value)
		}
	}

	// signed in with an alias; refresh needs the pool username
	if u.Username != "" && u.Username != t.Username {
		if latest, ok := c.current(ctx); ok {
			latest.Username = u.Username
			c.remember(ctx, latest)
		}
	}
	return u, nil
}

// withAccessToken calls fn with a usable access token, refreshing it first
// when it has expired and at most once more when the provider rejects it.
func (c *Cognito) withAccessToken(ctx context.Context, fn func(ctx context.Context, access string) error) error {
	t, ok := c.current(ctx)
	if !ok {
		return newError(ErrNoSession, "The user is not authenticated")
	}

	refreshed := false
	if c.expired(t.AccessToken) && t.RefreshToken != "" {
		next, err := c.refresh(ctx, t)
		if err != nil {
			return err
		}
		t, refreshed = next, true
	}

	err := fn(ctx, t.AccessToken)
	if err == nil {
		return nil
	}
	mapped := mapError(err)
	if refreshed || t.RefreshToken == "" || !errors.Is(mapped, ErrNotAuthorized) {
		return mapped
	}

	next, rerr := c.refresh(ctx, t)
	if rerr != nil {
		return rerr
	}
	if err := fn(ctx, next.AccessToken); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Cognito) refresh(ctx context.Context, t tokens.Tokens) (tokens.Tokens, error) {
	params := map[string]string{"REFRESH_TOKEN": t.RefreshToken}
	if h := c.secretHash(t.Username); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(c.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return tokens.Tokens{}, mapError(err)
	}
	res := out.AuthenticationResult
	if res == nil {
		return tokens.Tokens{}, newError(ErrGateway, "Token refresh returned no tokens")
	}

	next := t
	next.AccessToken = aws.ToString(res.AccessToken)
	if res.IdToken != nil {
		next.IDToken = aws.ToString(res.IdToken)
	}
	// Cognito rotates the refresh token only when rotation is enabled
	if rt := aws.ToString(res.RefreshToken); rt != "" {
		next.RefreshToken = rt
	}

	c.log.Debug(ctx, "tokens refreshed", "username", t.Username)
	c.remember(ctx, next)
	return next, nil
}

// expired reads the exp claim without verifying the signature; GetUser is
// what the provider actually checks.
func (c *Cognito) expired(raw string) bool {
	if raw == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !c.now().Add(expirySkew).Before(exp.Time)
}

func (c *Cognito) current(ctx context.Context) (tokens.Tokens, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return *c.cached, true
	}

	t, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			c.log.Warn(ctx, "token cache unreadable", "error", err)
		}
		return tokens.Tokens{}, false
	}
	c.cached = &t
	return t, true
}

// remember keeps t in memory and in the cache. A cache write failure only
// costs the session on the next start, so it is logged and ignored.
func (c *Cognito) remember(ctx context.Context, t tokens.Tokens) {
	c.mu.Lock()
	c.cached = &t
	c.mu.Unlock()

	if err := c.store.Save(ctx, t); err != nil {
		c.log.Warn(ctx, "token cache write failed", "error", err)
	}
}

func (c *Cognito) forget(ctx context.Context) {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "token cache clear failed", "error", err)
	}
}

// secretHash returns nil for app clients without a secret.
func (c *Cognito) secretHash(username string) *string {
	if c.clientSecret == "" {
		return nil
	}
	return aws.String(cryptox.SecretHash(c.clientSecret, username, c.clientID))
}

// mapError sorts provider errors into kinds and keeps their message as is.
func mapError(err error) error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return newError(ErrNetwork, err.Error())
	}

	msg := apiErr.ErrorMessage()
	if msg == "" {
		msg = apiErr.ErrorCode()
	}

	switch apiErr.ErrorCode() {
	case "UsernameExistsException", "AliasExistsException":
		return newError(ErrConflict, msg)
	case "InvalidPasswordException", "InvalidParameterException":
		return newError(ErrValidation, msg)
	case "NotAuthorizedException", "UserNotConfirmedException",
		"UserNotFoundException", "PasswordResetRequiredException":
		return newError(ErrNotAuthorized, msg)
	default:
		return newError(ErrGateway, msg)
	}
}
