package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windoze95/vanadisheart-api/internal/repository"
)

// fakeObjectAPI keeps objects in memory. Multipart calls are never reached
// because store values are far below the uploader's part size.
type fakeObjectAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string][]byte)}
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

var errMultipart = errors.New("multipart upload not supported by fake")

func (f *fakeObjectAPI) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errMultipart
}

func (f *fakeObjectAPI) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeObjectAPI) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeObjectAPI) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errMultipart
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjectAPI()
	store := NewStoreWithClient(api, "bucket")

	_, err := store.Get(ctx, "vanadisHeartUserData:alice")
	assert.True(t, repository.IsNotFound(err))

	require.NoError(t, store.Set(ctx, "vanadisHeartUserData:alice", []byte(`{"id":"alice"}`)))
	_, ok := api.objects["vanadisheart/store/vanadisHeartUserData/alice.json"]
	assert.True(t, ok, "object should be written under the mapped key")

	got, err := store.Get(ctx, "vanadisHeartUserData:alice")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"alice"}`, string(got))

	require.NoError(t, store.Delete(ctx, "vanadisHeartUserData:alice"))
	_, err = store.Get(ctx, "vanadisHeartUserData:alice")
	assert.True(t, repository.IsNotFound(err))
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"recipe:abc", "vanadisheart/store/recipe/abc.json"},
		{"currentRecipe:bob", "vanadisheart/store/currentRecipe/bob.json"},
		{"plain", "vanadisheart/store/plain.json"},
		{"recipe:alice:r1", "vanadisheart/store/recipe/alice/r1.json"},
		{"recipe:a/b", "vanadisheart/store/recipe/a%2Fb.json"},
		{"recipe:a:b", "vanadisheart/store/recipe/a/b.json"},
		{"recipe:a%2Fb", "vanadisheart/store/recipe/a%252Fb.json"},
	}
	for _, tt := range tests {
		if got := ObjectKey(tt.key); got != tt.want {
			t.Errorf("ObjectKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestStore_SlashInSegmentDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	store := NewStoreWithClient(newFakeObjectAPI(), "bucket")

	require.NoError(t, store.Set(ctx, "recipe:a:b", []byte(`"colon"`)))
	require.NoError(t, store.Set(ctx, "recipe:a/b", []byte(`"slash"`)))

	got, err := store.Get(ctx, "recipe:a:b")
	require.NoError(t, err)
	assert.Equal(t, `"colon"`, string(got))

	got, err = store.Get(ctx, "recipe:a/b")
	require.NoError(t, err)
	assert.Equal(t, `"slash"`, string(got))
}
