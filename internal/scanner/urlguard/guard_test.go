package urlguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsInternalTargets(t *testing.T) {
	blocked := []string{
		"http://127.0.0.1/",
		"http://localhost/admin",
		"http://169.254.169.254/latest/meta-data/",
		"http://10.0.0.5/",
		"http://192.168.1.1/",
		"http://metadata.google.internal/computeMetadata/v1/",
		"http://metadata.aws.internal/",
		"http://0.0.0.0:8080/",
		"http://[::1]/",
		"http://172.16.0.1/",
	}

	for _, raw := range blocked {
		_, err := Validate(raw)
		assert.Error(t, err, "expected rejection for %s", raw)
	}
}

func TestValidate_AcceptsPublicTargets(t *testing.T) {
	for _, raw := range []string{
		"https://example.com",
		"https://example.com/login?next=/home",
		"http://93.184.216.34/",
	} {
		got, err := Validate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, got)
	}
}

func TestValidate_RejectsBadSchemesAndEmptyHost(t *testing.T) {
	_, err := Validate("ftp://example.com/file")
	assert.ErrorContains(t, err, "scheme")

	_, err = Validate("file:///etc/passwd")
	assert.ErrorContains(t, err, "scheme")

	_, err = Validate("https:///no-host")
	assert.ErrorContains(t, err, "hostname")
}

func TestJoin_ValidatesResolvedURL(t *testing.T) {
	got, err := Join("https://example.com/app/", "/.git/config")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/.git/config", got)

	// A malicious catalog entry must not redirect the probe elsewhere.
	_, err = Join("https://example.com", "http://169.254.169.254/latest/")
	assert.Error(t, err)
}
