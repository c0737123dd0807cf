// internal/services/storage_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/genun/genun-backend/internal/config"
)

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// No credentials: run without S3 for local development.
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// UploadProductImage validates and stores one product image. The upload is
// staged through a temporary file that is always removed, and the S3 call
// runs under an overall deadline with bounded retries.
func (s *StorageService) UploadProductImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	maxSize := int64(s.config.Upload.MaxSizeMB) << 20
	if header.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	if err := validateImage(file); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "genun-upload-*")
	if err != nil {
		return nil, fmt.Errorf("%w: temp file: %v", ErrUploadFailed, err)
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", tmp.Name()).
				Warn("Failed to remove temporary upload file")
		}
	}()

	size, err := io.Copy(tmp, io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: staging: %v", ErrUploadFailed, err)
	}
	// Size header can lie; re-check against what was actually read.
	if size > maxSize {
		return nil, ErrFileTooLarge
	}

	key := s.objectKey(header.Filename)
	contentType := header.Header.Get("Content-Type")

	if s.s3Client == nil {
		return &UploadResult{
			URL:      fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key),
			Key:      key,
			Size:     size,
			MimeType: contentType,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.Upload.TimeoutSeconds)*time.Second)
	defer cancel()

	if err := s.putWithRetry(ctx, tmp, key, contentType, size); err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:      s.objectURL(key),
		Key:      key,
		Size:     size,
		MimeType: contentType,
	}, nil
}

// putWithRetry attempts the S3 put up to MaxRetries times with 2s, 4s, 8s
// backoff, all inside the caller's deadline.
func (s *StorageService) putWithRetry(ctx context.Context, body *os.File, key, contentType string, size int64) error {
	var lastErr error
	for attempt := 1; attempt <= s.config.Upload.MaxRetries; attempt++ {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("%w: rewind: %v", ErrUploadFailed, err)
		}

		_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.config.AWS.S3Bucket),
			Key:           aws.String(key),
			Body:          body,
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(size),
			ACL:           aws.String("public-read"),
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ErrUploadTimeout
		}
		if !isRetryableUploadError(err) {
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"key":     key,
			"attempt": attempt,
		}).Warn("S3 upload attempt failed")

		if attempt == s.config.Upload.MaxRetries {
			break
		}

		backoff := time.Duration(1<<attempt) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ErrUploadTimeout
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrUploadTimeout
	}
	return fmt.Errorf("%w: %v", ErrUploadFailed, lastErr)
}

// isRetryableUploadError reports whether another attempt could succeed.
// Malformed-request and authorization failures never heal on retry.
func isRetryableUploadError(err error) bool {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode() {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return false
		}
	}
	return true
}

func (s *StorageService) objectKey(originalName string) string {
	id := uuid.New()
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("products/%s_%s%s", time.Now().Format("20060102"), id.String()[:8], ext)
}

func (s *StorageService) objectURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// validateImage checks the magic bytes, not the filename or declared
// content type. Only JPEG, PNG and GIF pass.
func validateImage(file multipart.File) error {
	buffer := make([]byte, 8)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: read: %v", ErrUploadFailed, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewind: %v", ErrUploadFailed, err)
	}

	if !isImageSignature(buffer[:n]) {
		return ErrInvalidFileType
	}
	return nil
}

func isImageSignature(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}
	// PNG
	if len(buffer) >= 4 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}
	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}
	return false
}
