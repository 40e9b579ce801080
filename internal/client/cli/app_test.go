package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cooksocial/internal/client/config"
	"github.com/dmitrijs2005/cooksocial/internal/client/gateway"
	"github.com/dmitrijs2005/cooksocial/internal/client/tokens"
	"github.com/dmitrijs2005/cooksocial/internal/common"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.RequestTimeout = time.Second
	return c
}

func scripted(t *testing.T, gw gateway.Gateway, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)
	capturePrintln(t)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return newApp(testConfig(), gw, logging.Discard(), in, &out), &out
}

var registerAlice = []string{
	"register",
	"alice",
	"alice@example.com",
	"Passw0rd",
	"Passw0rd",
	"1990-04-01",
	"female",
	"ital",
	"nuts,  dairy",
}

func TestApp_RegisterLoginPostLogout(t *testing.T) {
	gw := gateway.NewDemo(logging.Discard())
	lines := append([]string{}, registerAlice...)
	lines = append(lines,
		"login", "alice@example.com", "Passw0rd",
		"post", "Pho is life", "", "",
		"feed",
	)
	a, out := scripted(t, gw, lines...)

	a.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "✓ At least 8 characters")
	assert.Contains(t, text, "✓ Passwords match")
	assert.Contains(t, text, "Selected Italy")
	assert.Contains(t, text, "Registration successful! You can now sign in.")
	assert.Contains(t, text, "Welcome, alice!")
	assert.Contains(t, text, "Posted #")
	assert.Contains(t, text, "Pho is life")
	assert.Contains(t, text, "♡ 0")

	posts := a.feed.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "alice", posts[0].Author)

	require.NoError(t, a.Like(context.Background(), strconv.FormatInt(posts[0].ID, 10)))
	assert.Contains(t, out.String(), "♥ 1")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Zero(t, a.feed.Len())
}

func TestApp_RegisterShowsFeedback(t *testing.T) {
	gw := gateway.NewDemo(logging.Discard())
	a, out := scripted(t, gw,
		"bob", "", "password", "passw0rd", "1990-04-01", "male", "guin", "Guinea", "",
	)

	err := a.Register(context.Background())
	require.Error(t, err)

	text := out.String()
	assert.Contains(t, text, "✗ One uppercase letter")
	assert.Contains(t, text, "✗ One number")
	assert.Contains(t, text, "✓ One lowercase letter")
	assert.Contains(t, text, "✗ Passwords do not match")
	assert.Contains(t, text, "  - Equatorial Guinea")
	assert.Contains(t, text, "Passwords do not match\n")
}

func TestApp_LoginFailureIsReported(t *testing.T) {
	gw := gateway.NewDemo(logging.Discard())
	a, out := scripted(t, gw, "alice", "nope")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Incorrect username or password.")
	assert.False(t, a.isLoggedIn())
}

func TestApp_RunRestoresSession(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewDemo(logging.Discard())
	_, err := gw.SignUp(ctx, gateway.SignUpInput{Username: "alice", Password: "Passw0rd"})
	require.NoError(t, err)
	require.NoError(t, gw.SignIn(ctx, "alice", "Passw0rd"))

	a, out := scripted(t, gw, "whoami", "exit")
	a.Run(ctx)

	assert.Contains(t, out.String(), "Welcome back, alice!")
	assert.Contains(t, out.String(), "Signed in as alice")
}

func TestApp_PostNothing(t *testing.T) {
	gw := gateway.NewDemo(logging.Discard())
	a, out := scripted(t, gw, "", "")

	require.NoError(t, a.Post(context.Background()))
	assert.Contains(t, out.String(), "Nothing to post")
	assert.Zero(t, a.feed.Len())
}

func TestApp_PostWithImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pho.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	gw := gateway.NewDemo(logging.Discard())
	a, out := scripted(t, gw, "", path)

	require.NoError(t, a.Post(context.Background()))
	posts := a.feed.Posts()
	require.Len(t, posts, 1)
	assert.True(t, strings.HasPrefix(posts[0].Image, "data:image/png;base64,"))

	require.NoError(t, a.Feed(context.Background()))
	assert.Contains(t, out.String(), "[photo: image/png,")
}

func TestApp_PostRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	gw := gateway.NewDemo(logging.Discard())
	a, out := scripted(t, gw, "hello", "", path)

	require.Error(t, a.Post(context.Background()))
	assert.Contains(t, out.String(), "Could not attach image")
	assert.Zero(t, a.feed.Len())
}

func TestApp_LikeBadID(t *testing.T) {
	a, out := scripted(t, gateway.NewDemo(logging.Discard()))

	require.Error(t, a.Like(context.Background(), "abc"))
	assert.Contains(t, out.String(), "Usage: like <id>")
	assert.NoError(t, a.Like(context.Background(), "12345"))
}

func TestApp_EmptyFeed(t *testing.T) {
	a, out := scripted(t, gateway.NewDemo(logging.Discard()))

	require.NoError(t, a.Feed(context.Background()))
	assert.Contains(t, out.String(), "No posts yet.")
}

func TestDescribeImage(t *testing.T) {
	assert.Equal(t, "image/png, 0.0 KB", describeImage("data:image/png;base64,AAAA"))
	assert.Equal(t, "attached", describeImage("garbage"))
}

func TestBuildGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("demo", func(t *testing.T) {
		c := testConfig()
		gw, db, err := buildGateway(ctx, c, logging.Discard())
		require.NoError(t, err)
		assert.IsType(t, &gateway.Demo{}, gw)
		assert.Nil(t, db)
	})

	t.Run("unknown", func(t *testing.T) {
		c := testConfig()
		c.Gateway = "ldap"
		_, _, err := buildGateway(ctx, c, logging.Discard())
		assert.ErrorIs(t, err, common.ErrorUnknownBackend)
	})

	t.Run("cognito uses sqlite token cache", func(t *testing.T) {
		origNew := newCognito
		defer func() { newCognito = origNew }()

		var gotStore tokens.Store
		var gotOpts gateway.CognitoOptions
		newCognito = func(ctx context.Context, opts gateway.CognitoOptions, store tokens.Store, log logging.Logger) (gateway.Gateway, error) {
			gotOpts, gotStore = opts, store
			return gateway.NewDemo(log), nil
		}

		c := testConfig()
		c.Gateway = config.GatewayCognito
		c.ClientID = "client-123"
		c.TokenCacheDSN = filepath.Join(t.TempDir(), "tokens.db")

		_, db, err := buildGateway(ctx, c, logging.Discard())
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.IsType(t, &tokens.SQLiteStore{}, gotStore)
		assert.Equal(t, "client-123", gotOpts.ClientID)
		assert.Equal(t, "us-east-1", gotOpts.Region)
	})

	t.Run("cognito without cache keeps tokens in memory", func(t *testing.T) {
		origNew := newCognito
		defer func() { newCognito = origNew }()

		var gotStore tokens.Store
		newCognito = func(ctx context.Context, opts gateway.CognitoOptions, store tokens.Store, log logging.Logger) (gateway.Gateway, error) {
			gotStore = store
			return gateway.NewDemo(log), nil
		}

		c := testConfig()
		c.Gateway = config.GatewayCognito
		c.TokenCacheDSN = ""

		_, db, err := buildGateway(ctx, c, logging.Discard())
		require.NoError(t, err)
		assert.Nil(t, db)
		assert.IsType(t, &tokens.MemoryStore{}, gotStore)
	})

	t.Run("cache open error", func(t *testing.T) {
		origOpen := openLocalDB
		defer func() { openLocalDB = origOpen }()
		openLocalDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
			return nil, errors.New("read-only fs")
		}

		c := testConfig()
		c.Gateway = config.GatewayCognito
		_, _, err := buildGateway(ctx, c, logging.Discard())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token cache error: read-only fs")
	})

	t.Run("cognito error", func(t *testing.T) {
		c := testConfig()
		c.Gateway = config.GatewayCognito
		c.ClientID = ""
		c.TokenCacheDSN = ":memory:"

		_, _, err := buildGateway(ctx, c, logging.Discard())
		assert.Error(t, err)
	})
}
