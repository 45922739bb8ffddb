package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

type mockService struct {
	mock.Mock
}

func (m *mockService) Analyze(ctx context.Context, opts insights.Options) *insights.Result {
	return m.Called(ctx, opts).Get(0).(*insights.Result)
}

func (m *mockService) FindSimilar(ctx context.Context, req insights.SimilarRequest) (*insights.SimilarResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*insights.SimilarResponse)
	return resp, args.Error(1)
}

func (m *mockService) BuildGraph(ctx context.Context, req insights.GraphRequest) (*insights.GraphResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*insights.GraphResponse)
	return resp, args.Error(1)
}

// stubBuilder returns svc and records the source it was asked for.
func stubBuilder(svc insights.Service, source *string) ServiceBuilder {
	return func(cc *CLIContext, src string) (insights.Service, func() error, error) {
		if source != nil {
			*source = src
		}
		return svc, nil, nil
	}
}

// isolate keeps the default config search away from the developer's files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand(nil)

	assert.Equal(t, "insights", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"analyze", "similar", "graph", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	pf := NewRootCommand(nil).PersistentFlags()

	for name, def := range map[string]string{
		"config":    "",
		"log-level": "warn",
		"output":    "text",
		"timeout":   "2m0s",
	} {
		f := pf.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
	assert.Equal(t, "c", pf.Lookup("config").Shorthand)
	assert.Equal(t, "o", pf.Lookup("output").Shorthand)
}

func TestRoot_RejectsUnknownOutputFormat(t *testing.T) {
	isolate(t)
	_, _, err := run(t, NewRootCommand(nil), "version", "-o", "yaml")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
	assert.Equal(t, 2, ExitCode(err))
}

func TestRoot_RejectsNonPositiveTimeout(t *testing.T) {
	isolate(t)
	_, _, err := run(t, NewRootCommand(nil), "version", "--timeout", "0s")
	require.Error(t, err)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	isolate(t)
	_, _, err := run(t, NewRootCommand(nil), "version", "--config", filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

func TestGetCLIContext_WithoutPreRun(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := GetCLIContext(cmd)
	require.Error(t, err)

	cmd.SetContext(context.Background())
	_, err = GetCLIContext(cmd)
	require.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Version
// ─────────────────────────────────────────────────────────────────────────────

func TestVersion_Text(t *testing.T) {
	isolate(t)
	out, _, err := run(t, NewRootCommand(nil), "version")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "insights "+Version))
}

func TestVersion_JSON(t *testing.T) {
	isolate(t)
	out, _, err := run(t, NewRootCommand(nil), "version", "-o", "json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

//Personal.AI order the ending
