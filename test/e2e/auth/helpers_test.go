package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for token service end-to-end tests.
 * The service runs with its built-in development clients.
 */

const (
	testImageName = "mcauth-test:latest"

	signingSecret = "e2e-signing-secret-0123456789abcdef"

	marketingClientID     = "marketing_cloud_app_1"
	marketingClientSecret = "super_secret_key_123"
	analyticsClientID     = "analytics_dashboard"
	analyticsClientSecret = "analytics_secret_456"
	mobileClientID        = "mobile_app_client"
	mobileClientSecret    = "mobile_secret_789"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found, skipping end-to-end tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building token service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up token service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAuthContainer starts the token service and returns its base URL.
// extraEnv overrides the defaults.
func setupAuthContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_JWT_SECRET":    signingSecret,
		"AUTH_ISSUER":        "mcauth",
		"AUTH_REGISTRY_MODE": "persistent",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupClient starts a container and returns an SDK client for it.
func setupClient(t *testing.T) *authsdk.SDKClient {
	t.Helper()
	baseURL, cleanup := setupAuthContainer(t, nil)
	t.Cleanup(cleanup)
	return authsdk.NewSDKClient(baseURL)
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, resp *authsdk.TokenResponse) {
	t.Helper()
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, resp.RefreshToken, "Refresh token should not be empty")
	require.Equal(t, "Bearer", resp.TokenType, "Token type should be Bearer")
	require.Equal(t, 7200, resp.ExpiresIn)
	require.Equal(t, 30*24*3600, resp.RefreshExpiresIn)
	require.NotEmpty(t, resp.Scope, "Scope should not be empty")
}

// assertUnauthorized checks that an error is a 401 with the given code.
func assertUnauthorized(t *testing.T, err error, code, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.ErrorIs(t, err, authsdk.NewOAuth2Error(401, code, ""), context)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertScopeNotGranted verifies that a token does not contain specific scopes.
func assertScopeNotGranted(t *testing.T, tokenScope string, deniedScopes ...string) {
	t.Helper()
	granted := strings.Fields(tokenScope)
	for _, scope := range deniedScopes {
		require.NotContains(t, granted, scope, "Should not receive %s scope", scope)
	}
}
