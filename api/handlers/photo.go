package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cldapi "github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/linesmerrill/prosecution-case-api/config"
)

// Photo signs direct prisoner photo uploads to Cloudinary
type Photo struct {
	APISecret    string
	UploadPreset string
	Now          func() time.Time
}

type photoSignature struct {
	Timestamp    string `json:"timestamp"`
	Signature    string `json:"signature"`
	UploadPreset string `json:"uploadPreset"`
}

// SignUploadParams computes the Cloudinary signature for an unsigned-preset upload
func SignUploadParams(timestamp, uploadPreset, apiSecret string) (string, error) {
	params := url.Values{}
	params.Set("timestamp", timestamp)
	params.Set("upload_preset", uploadPreset)
	return cldapi.SignParameters(params, apiSecret)
}

// PhotoSignatureHandler generates a signature for a prisoner photo upload
func (p Photo) PhotoSignatureHandler(w http.ResponseWriter, r *http.Request) {
	if p.APISecret == "" {
		config.ErrorStatus("photo uploads are not configured", http.StatusServiceUnavailable, w,
			errors.New("CLOUDINARY_API_SECRET is not set"))
		return
	}
	timestamp := strconv.FormatInt(p.Now().Unix(), 10)
	signature, err := SignUploadParams(timestamp, p.UploadPreset, p.APISecret)
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, photoSignature{
		Timestamp:    timestamp,
		Signature:    signature,
		UploadPreset: p.UploadPreset,
	})
}
