// Package dictsource fetches a shared attribute dictionary from object
// storage, so a fleet of raddecode instances can stay on one authoritative
// dictionary file without each operator distributing it by hand.
package dictsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/pkg/metrics"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/dictionary/loader"
)

// S3Source fetches and parses a dictionary object from S3 or an
// S3-compatible store.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string

	maxRetries        uint
	initialBackoff    time.Duration
	maxBackoff        time.Duration
	backoffMultiplier float64

	metrics metrics.S3Metrics
}

// Config configures an S3Source.
type Config struct {
	Client *s3.Client
	Bucket string
	Key    string

	// MaxRetries is the maximum number of retry attempts for transient
	// errors (default: 3).
	MaxRetries uint
	// InitialBackoff is the backoff before the first retry (default: 100ms).
	InitialBackoff time.Duration
	// MaxBackoff caps the exponential backoff (default: 2s).
	MaxBackoff time.Duration
	// BackoffMultiplier scales the backoff on each retry (default: 2.0).
	BackoffMultiplier float64
}

// New builds an S3Source from cfg, applying defaults for unset retry fields.
func New(cfg Config) (*S3Source, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("dictsource: S3 client is required")
	}
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("dictsource: bucket and key are required")
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	initialBackoff := cfg.InitialBackoff
	if initialBackoff == 0 {
		initialBackoff = 100 * time.Millisecond
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = 2 * time.Second
	}
	backoffMultiplier := cfg.BackoffMultiplier
	if backoffMultiplier == 0 {
		backoffMultiplier = 2.0
	}

	return &S3Source{
		client:            cfg.Client,
		bucket:            cfg.Bucket,
		key:               cfg.Key,
		maxRetries:        maxRetries,
		initialBackoff:    initialBackoff,
		maxBackoff:        maxBackoff,
		backoffMultiplier: backoffMultiplier,
		metrics:           metrics.NewS3Metrics(),
	}, nil
}

// Fetch downloads the dictionary object and parses it. Transient S3 errors
// (throttling, 5xx, network timeouts) are retried with exponential backoff;
// not-found and access-denied errors are not.
func (s *S3Source) Fetch(ctx context.Context) (*dictionary.Memory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var result *s3.GetObjectOutput
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= int(s.maxRetries); attempt++ {
		if attempt > 0 {
			backoff := s.calculateBackoff(attempt - 1)
			logger.Debug("dictsource: retrying fetch", logger.DictSource("s3"), logger.Attempt(attempt), logger.MaxRetries(int(s.maxRetries)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		attempts++
		result, lastErr = s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key),
		})
		if lastErr == nil {
			break
		}
		if isNotFoundError(lastErr) {
			return nil, fmt.Errorf("dictsource: object s3://%s/%s not found: %w", s.bucket, s.key, lastErr)
		}
		if !isRetryableError(lastErr) {
			break
		}
	}

	if lastErr != nil {
		metrics.ObserveOperation(s.metrics, "GetObject", time.Since(start), lastErr)
		return nil, fmt.Errorf("dictsource: fetch s3://%s/%s failed after %d attempts: %w", s.bucket, s.key, attempts, lastErr)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		metrics.ObserveOperation(s.metrics, "GetObject", time.Since(start), err)
		return nil, fmt.Errorf("dictsource: read s3://%s/%s: %w", s.bucket, s.key, err)
	}
	metrics.ObserveOperation(s.metrics, "GetObject", time.Since(start), nil)
	metrics.RecordBytes(s.metrics, "GetObject", int64(len(body)))

	dict, err := loader.LoadReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dictsource: parse s3://%s/%s: %w", s.bucket, s.key, err)
	}

	logger.Info("dictionary loaded", logger.DictSource("s3"), logger.DictPath(fmt.Sprintf("s3://%s/%s", s.bucket, s.key)))
	return dict, nil
}

func (s *S3Source) calculateBackoff(attempt int) time.Duration {
	backoff := float64(s.initialBackoff)
	for i := 0; i < attempt; i++ {
		backoff *= s.backoffMultiplier
	}
	if backoff > float64(s.maxBackoff) {
		backoff = float64(s.maxBackoff)
	}
	return time.Duration(backoff)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "Throttling", "ThrottlingException", "RequestThrottled", "SlowDown":
			return true
		case "InternalError", "ServiceUnavailable", "ServiceException", "InternalServiceException":
			return true
		case "NoSuchKey", "NotFound", "AccessDenied", "Forbidden":
			return false
		}
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "500")
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || code == "404"
	}
	return strings.Contains(err.Error(), "NoSuchKey")
}
