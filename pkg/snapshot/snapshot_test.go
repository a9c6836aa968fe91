package snapshot

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/reconcile/internal/errors"
)

// fakeS3 keeps objects in memory.
type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	failPut error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	f.types[*in.Key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "counter/final"); !NotFound(err) {
		t.Errorf("Get(missing) = %v, want S152", err)
	}

	if err := s.Put(ctx, "counter/final", []byte("<p>1</p>")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "counter/initial", []byte("<p>0</p>")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "list", []byte("<ul></ul>")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "counter/final", []byte("<p>2</p>")); err != nil {
		t.Fatalf("Put(overwrite) error: %v", err)
	}

	got, err := s.Get(ctx, "counter/final")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "<p>2</p>" {
		t.Errorf("Get = %q, want %q", got, "<p>2</p>")
	}

	keys, err := s.List(ctx, "counter/")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if diff := cmp.Diff([]string{"counter/final", "counter/initial"}, keys); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, "list"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, "list"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if diff := cmp.Diff([]string{"counter/final", "counter/initial"}, all); diff != "" {
		t.Errorf("List after delete mismatch (-want +got):\n%s", diff)
	}

	if err := s.Put(ctx, "../escape", []byte("x")); !errors.Is(err, "S153") {
		t.Errorf("Put(../escape) = %v, want S153", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	storeContract(t, s)

	if _, err := os.Stat(filepath.Join(dir, "counter", "final.html")); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "counter"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".snapshot-") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestS3Store(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Store(fake, "bucket", "ci/")
	storeContract(t, s)

	if _, ok := fake.objects["ci/counter/final.html"]; !ok {
		t.Error("object key should carry the prefix and extension")
	}
	if got := fake.types["ci/counter/final.html"]; got != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q, want text/html", got)
	}
}

func TestS3StorePutFailure(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = stderrors.New("access denied")
	s := NewS3Store(fake, "bucket", "")

	err := s.Put(context.Background(), "a", []byte("x"))
	if !errors.Is(err, "S150") {
		t.Errorf("Put = %v, want S150", err)
	}
	if !stderrors.Is(err, fake.failPut) {
		t.Error("Put error should wrap the client error")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key string
		ok  bool
	}{
		{"counter", true},
		{"counter/step-1.final", true},
		{"a_b/C9", true},
		{"", false},
		{"/abs", false},
		{"trailing/", false},
		{"a//b", false},
		{"a/../b", false},
		{".", false},
		{"spa ce", false},
		{`back\slash`, false},
	}
	for _, tt := range tests {
		err := ValidateKey(tt.key)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateKey(%q) = %v, want ok=%v", tt.key, err, tt.ok)
		}
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	s := NewS3Store(newFakeS3(), "bucket", "")
	if err := s.Put(ctx, "page", []byte("<p>a</p>")); err != nil {
		t.Fatal(err)
	}

	m, err := Check(ctx, s, "page", []byte("<p>a</p>"))
	if err != nil || m != nil {
		t.Errorf("Check(equal) = %v, %v, want nil, nil", m, err)
	}

	m, err = Check(ctx, s, "page", []byte("<p>b</p>"))
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if m == nil || string(m.Want) != "<p>a</p>" || string(m.Got) != "<p>b</p>" {
		t.Errorf("Check(differs) = %+v, want a mismatch", m)
	}

	if _, err := Check(ctx, s, "other", nil); !NotFound(err) {
		t.Errorf("Check(missing) = %v, want S152", err)
	}
}
