package handlers_test

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/api/testhelpers"
)

func TestSignUploadParams(t *testing.T) {
	sum := sha1.Sum([]byte("timestamp=1710063000&upload_preset=prisonerssecret"))

	signature, err := handlers.SignUploadParams("1710063000", "prisoners", "secret")

	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), signature)
}

func TestPhoto_PhotoSignatureHandler(t *testing.T) {
	ta := newTestApp(t)

	rr := ta.do(t, "POST", "/api/v1/prisoners/photo-signature", policeEmail, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got map[string]string
	decode(t, rr, &got)
	assert.Equal(t, "1710063000", got["timestamp"])
	assert.Equal(t, "prisoners", got["uploadPreset"])
	want, err := handlers.SignUploadParams("1710063000", "prisoners", "cloud-secret")
	require.NoError(t, err)
	assert.Equal(t, want, got["signature"])
}

func TestPhoto_PhotoSignatureHandlerNotConfigured(t *testing.T) {
	p := handlers.Photo{Now: func() time.Time { return testhelpers.Now }}
	req := httptest.NewRequest("POST", "/api/v1/prisoners/photo-signature", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(p.PhotoSignatureHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "CLOUDINARY_API_SECRET is not set", errorBody(t, rr).Response.Error)
}
