package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("log-level", DefaultLogLevel, "")
	f.String("log-format", DefaultLogFormat, "")
	f.String("project_id", "", "")
	f.String("location", DefaultLocation, "")
	f.String("model", DefaultModel, "")
	f.Int("delay", 0, "")
	f.String("backend", DefaultBackend, "")
	f.Int("retries", DefaultRetries, "")
	f.Bool("overwrite", false, "")
	f.Bool("strict-pdf", false, "")
	f.Bool("skip-preflight", false, "")
	return f
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "GOOGLE_CLOUD_PROJECT", "GOOGLE_APPLICATION_CREDENTIALS",
		"AI_PDF2DOCX_MODEL", "AI_PDF2DOCX_DELAY", "AI_PDF2DOCX_PROJECT_ID", "AI_PDF2DOCX_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	s, err := Load(testFlags(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocation, s.Location)
	assert.Equal(t, DefaultModel, s.Model)
	assert.Equal(t, BackendVertex, s.Backend)
	assert.Equal(t, DefaultRetries, s.Retries)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Zero(t, s.Delay)
	assert.False(t, s.Overwrite)
	assert.Empty(t, s.ConfigFile)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	cfg := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("model: from-file\ndelay: 7\nlocation: europe-west4\n"), 0o644))
	t.Setenv("AI_PDF2DOCX_DELAY", "3")

	f := testFlags()
	require.NoError(t, f.Parse([]string{"--location", "asia-east1"}))

	s, err := Load(f, cfg)
	require.NoError(t, err)
	assert.Equal(t, "from-file", s.Model, "file beats default")
	assert.Equal(t, 3, s.Delay, "env beats file")
	assert.Equal(t, "asia-east1", s.Location, "flag beats file")
	assert.Equal(t, cfg, s.ConfigFile)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile("ai-pdf2docx.yaml", []byte("overwrite: true\n"), 0o644))

	s, err := Load(testFlags(), "")
	require.NoError(t, err)
	assert.True(t, s.Overwrite)
	assert.NotEmpty(t, s.ConfigFile)
}

func TestLoadGoogleEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key-123")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj-9")

	s, err := Load(testFlags(), "")
	require.NoError(t, err)
	assert.Equal(t, "key-123", s.APIKey)
	assert.Equal(t, "proj-9", s.ProjectID)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(testFlags(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"log level", []string{"--log-level", "loud"}, "invalid log level"},
		{"log format", []string{"--log-format", "xml"}, "invalid log format"},
		{"backend", []string{"--backend", "openai"}, "invalid backend"},
		{"delay", []string{"--delay", "-1"}, "delay must not be negative"},
		{"negative retries", []string{"--retries", "-2"}, "retries must be between 0 and 10"},
		{"too many retries", []string{"--retries", "32"}, "retries must be between 0 and 10"},
		{"preflight", []string{"--strict-pdf", "--skip-preflight"}, "cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			f := testFlags()
			require.NoError(t, f.Parse(tt.args))

			_, err := Load(f, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("AI_PDF2DOCX_MODEL=gemini-from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AI_PDF2DOCX_MODEL") })

	// godotenv does not override variables that are already set, even empty.
	os.Unsetenv("AI_PDF2DOCX_MODEL")
	require.NoError(t, LoadDotEnv())

	s, err := Load(testFlags(), "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-from-dotenv", s.Model)
}

func TestLoadDotEnvMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadDotEnv())
}

func TestLoadDotEnvMalformed(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("BROKEN-KEY=1\n"), 0o644))

	err := LoadDotEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load .env")
}
