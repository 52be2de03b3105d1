package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockObjectAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func TestUpload(t *testing.T) {
	client := new(mockObjectAPI)
	store := NewMinioStoreWithClient(client, "music-marketplace", "http://localhost:9000/music-marketplace/")

	client.On("PutObject", mock.Anything, "music-marketplace", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "listings/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything, int64(5), mock.Anything).Return(minio.UploadInfo{}, nil)

	up, err := store.Upload(context.Background(), "listings", "guitar.jpg", "image/jpeg", bytes.NewReader([]byte("12345")), 5)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.PublicID, "listings/"))
	assert.Equal(t, "http://localhost:9000/music-marketplace/"+up.PublicID, up.URL)
	client.AssertExpectations(t)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	client := new(mockObjectAPI)
	store := NewMinioStoreWithClient(client, "music-marketplace", "http://localhost:9000/music-marketplace")

	_, err := store.Upload(context.Background(), "listings", "huge.png", "image/png", bytes.NewReader(nil), MaxFileSize+1)
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject")
}

func TestUploadRejectsUnsupportedContentType(t *testing.T) {
	client := new(mockObjectAPI)
	store := NewMinioStoreWithClient(client, "music-marketplace", "http://localhost:9000/music-marketplace")

	_, err := store.Upload(context.Background(), "listings", "notes.pdf", "application/pdf", bytes.NewReader([]byte("x")), 1)
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject")
}

func TestRemove(t *testing.T) {
	client := new(mockObjectAPI)
	store := NewMinioStoreWithClient(client, "music-marketplace", "http://localhost:9000/music-marketplace")

	client.On("RemoveObject", mock.Anything, "music-marketplace", "listings/abc.jpg", mock.Anything).Return(nil)
	assert.NoError(t, store.Remove(context.Background(), "listings/abc.jpg"))

	client.On("RemoveObject", mock.Anything, "music-marketplace", "listings/gone.jpg", mock.Anything).Return(errors.New("boom"))
	assert.Error(t, store.Remove(context.Background(), "listings/gone.jpg"))
	client.AssertExpectations(t)
}

func TestAllowedContentType(t *testing.T) {
	assert.True(t, AllowedContentType("image/jpeg"))
	assert.True(t, AllowedContentType("image/webp"))
	assert.False(t, AllowedContentType("video/mp4"))
	assert.False(t, AllowedContentType(""))
}
