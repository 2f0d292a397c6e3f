package dictsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *httptest.Server) *s3.Client {
	t.Helper()
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	require.NoError(t, err)

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(server.URL)
		o.UsePathStyle = true
	})
}

func TestFetch_Success(t *testing.T) {
	body := "ATTRIBUTE User-Name 1 string\nATTRIBUTE NAS-Port 5 integer\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	src, err := New(Config{
		Client: newTestClient(t, server),
		Bucket: "dictionaries",
		Key:    "shared.dictionary",
	})
	require.NoError(t, err)

	dict, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, dict.ChildByNum(dict.Root(), 1))
	assert.NotNil(t, dict.ChildByNum(dict.Root(), 5))
}

func TestFetch_NotFoundNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`))
	}))
	defer server.Close()

	src, err := New(Config{
		Client:     newTestClient(t, server),
		Bucket:     "dictionaries",
		Key:        "missing.dictionary",
		MaxRetries: 2,
	})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, attempts, "not-found errors must not be retried")
}

func TestFetch_ThrottlingRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	body := "ATTRIBUTE User-Name 1 string\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>SlowDown</Code><Message>slow down</Message></Error>`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	src, err := New(Config{
		Client:         newTestClient(t, server),
		Bucket:         "dictionaries",
		Key:            "shared.dictionary",
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
	require.NoError(t, err)

	dict, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dict.ChildByNum(dict.Root(), 1))
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestNew_RequiresBucketAndKey(t *testing.T) {
	_, err := New(Config{Client: &s3.Client{}, Bucket: "", Key: ""})
	assert.Error(t, err)
}
