package storage

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

// startMinio runs a MinIO container and returns its host:port
func startMinio(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername(minioUser),
		tcminio.WithPassword(minioPassword),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return endpoint
}

func fetch(t *testing.T, url string) (string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body), resp.Header
}

func TestObjectStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	endpoint := startMinio(t)
	ctx := context.Background()
	bucket := "coil-test-" + uuid.New().String()[:8]

	// the minio store creates the bucket, the S3 store then reuses it
	minioStore, err := NewMinioService(ctx, MinioConfig{
		Endpoint:  endpoint,
		Bucket:    bucket,
		AccessKey: minioUser,
		SecretKey: minioPassword,
		URLExpiry: time.Minute,
	})
	require.NoError(t, err)

	s3Store, err := NewS3Service(S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: minioUser,
		SecretKey: minioPassword,
		URLExpiry: time.Minute,
	})
	require.NoError(t, err)

	stores := map[string]ObjectStore{"minio": minioStore, "s3": s3Store}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			key := "exports/" + name + "/coil_coordinates.txt"
			data := []byte("0.00 0.00\n0.00 50.00")

			require.NoError(t, store.Upload(ctx, key, "text/plain; charset=utf-8", data))

			url, err := store.GenerateDownloadURL(ctx, key, "coil_coordinates.txt")
			require.NoError(t, err)

			body, header := fetch(t, url)
			assert.Equal(t, string(data), body)
			assert.Contains(t, header.Get("Content-Disposition"), "coil_coordinates.txt")

			require.NoError(t, store.DeleteFile(ctx, key))
		})
	}
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.EqualError(t, err, "S3_BUCKET is required")
}

func TestNewMinioService_RequiresEndpoint(t *testing.T) {
	_, err := NewMinioService(context.Background(), MinioConfig{Bucket: "exports"})
	assert.Error(t, err)
}

func TestAttachment(t *testing.T) {
	assert.Equal(t, `attachment; filename="coil_coordinates.png"`, attachment("coil_coordinates.png"))
}
