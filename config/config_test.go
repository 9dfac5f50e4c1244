package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("SSM_PARAMETER_PATH", "")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "http://localhost:8000", cfg.SiteURL)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.Database.ReplicaDSNs)
	assert.Equal(t, "@every 1m", cfg.DemoMonitor.Schedule)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SSM_PARAMETER_PATH", "")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("HTTP_WRITE_TIMEOUT", "5s")
	t.Setenv("SITE_URL", "https://example.dev/")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.dev, https://b.dev,")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_REPLICA_DSNS", "host=r1,host=r2")
	t.Setenv("NOTIFY_CHANNELS", "email,sms")
	t.Setenv("DEMO_MONITOR_ENABLED", "true")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "https://example.dev", cfg.SiteURL)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AcceptedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, []string{"host=r1", "host=r2"}, cfg.Database.ReplicaDSNs)
	assert.Equal(t, []string{"email", "sms"}, cfg.Notify.Channels)
	assert.True(t, cfg.DemoMonitor.Enabled)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("SSM_PARAMETER_PATH", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "7000")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
}

func TestLoad_RejectsUnknownBackends(t *testing.T) {
	t.Setenv("SSM_PARAMETER_PATH", "")
	t.Setenv("DATABASE_TYPE", "oracle")
	_, err := Load(context.Background())
	assert.Error(t, err)

	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("STORAGE_BACKEND", "ftp")
	_, err = Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("SSM_PARAMETER_PATH", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load(context.Background())
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestApplySSMOverlay(t *testing.T) {
	t.Setenv("SSM_PARAMETER_PATH", "")
	t.Setenv("JWT_SECRET", "from-env")

	v, err := newViper()
	require.NoError(t, err)

	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/jwt/secret"), Value: aws.String("from-ssm")}},
		{{Name: aws.String("/portfolio/prod/resend/api_key"), Value: aws.String("re_123")}},
	}}
	require.NoError(t, applySSMOverlay(context.Background(), v, client, "/portfolio/prod"))

	cfg, err := unmarshal(v)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "from-ssm", cfg.JWT.Secret)
	assert.Equal(t, "re_123", cfg.Resend.APIKey)
}
