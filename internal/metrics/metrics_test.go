package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordRegistration()
	c.RecordLogin(LoginSuccess)
	c.RecordLogin(LoginUnverified)
	c.RecordLogin(LoginUnverified)
	c.RecordVerification()
	c.RecordAvatarUpload()
	c.RecordNotificationFailure()
	c.RecordEmailSent(nil)
	c.RecordEmailSent(errors.New("smtp down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues(LoginUnverified)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.verifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.avatarUploads))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notificationFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emailsSent.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emailsSent.WithLabelValues("error")))
}

func TestCollector_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRegistration()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "identity_registrations_total 1"))
}
