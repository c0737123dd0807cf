// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genun/genun-backend/internal/config"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func newMemoryFile(content []byte) multipart.File {
	return memoryFile{bytes.NewReader(content)}
}

func newFileHeader(name string, size int64, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func storageTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Upload: config.UploadConfig{MaxSizeMB: 10, TimeoutSeconds: 120, MaxRetries: 3},
	}
}

var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("fake image payload")...)

func TestUploadProductImageLocalDevelopment(t *testing.T) {
	svc, err := NewStorageService(storageTestConfig())
	require.NoError(t, err)

	file := newMemoryFile(pngBytes)
	header := newFileHeader("label.png", int64(len(pngBytes)), "image/png")

	result, err := svc.UploadProductImage(context.Background(), file, header)
	require.NoError(t, err)
	assert.Contains(t, result.URL, result.Key)
	assert.Contains(t, result.Key, "products/")
	assert.Equal(t, int64(len(pngBytes)), result.Size)
	assert.Equal(t, "image/png", result.MimeType)
}

func TestUploadProductImageRejectsOversizedFile(t *testing.T) {
	svc, err := NewStorageService(storageTestConfig())
	require.NoError(t, err)

	header := newFileHeader("huge.png", 11<<20, "image/png")
	_, err = svc.UploadProductImage(context.Background(), newMemoryFile(pngBytes), header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadProductImageRejectsNonImage(t *testing.T) {
	svc, err := NewStorageService(storageTestConfig())
	require.NoError(t, err)

	content := []byte("#!/bin/sh\necho not an image")
	header := newFileHeader("script.png", int64(len(content)), "image/png")

	_, err = svc.UploadProductImage(context.Background(), newMemoryFile(content), header)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestImageSignatureDetection(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		valid  bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, true},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, true},
		{"gif87a", []byte("GIF87a"), true},
		{"gif89a", []byte("GIF89a"), true},
		{"pdf", []byte("%PDF-1.4"), false},
		{"text", []byte("hello world"), false},
		{"empty", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, isImageSignature(tc.header))
		})
	}
}

func TestValidateImageRewindsFile(t *testing.T) {
	file := newMemoryFile(pngBytes)
	require.NoError(t, validateImage(file))

	// The full content must still be readable after validation.
	buf := make([]byte, len(pngBytes))
	n, err := file.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(pngBytes), n)
	assert.Equal(t, pngBytes, buf)
}

func TestUploadErrorRetryClassification(t *testing.T) {
	denied := awserr.NewRequestFailure(awserr.New("AccessDenied", "access denied", nil), http.StatusForbidden, "req-1")
	assert.False(t, isRetryableUploadError(denied))

	badRequest := awserr.NewRequestFailure(awserr.New("InvalidRequest", "malformed", nil), http.StatusBadRequest, "req-2")
	assert.False(t, isRetryableUploadError(badRequest))

	unauthorized := awserr.NewRequestFailure(awserr.New("InvalidAccessKeyId", "bad key", nil), http.StatusUnauthorized, "req-3")
	assert.False(t, isRetryableUploadError(unauthorized))

	throttled := awserr.NewRequestFailure(awserr.New("SlowDown", "slow down", nil), http.StatusServiceUnavailable, "req-4")
	assert.True(t, isRetryableUploadError(throttled))

	assert.True(t, isRetryableUploadError(errors.New("connection reset")))
}
