package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekathra/pkg/platform/sentinel"
)

const testBucket = "ekathra-archive"

var objectTime = time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)

type fakeObject struct {
	body        []byte
	contentType string
}

// fakeS3 answers the path-style requests the S3 driver sends: PutObject,
// HeadObject, GetObject and ListObjectsV2 against a single bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	puts    []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == testBucket && r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2" {
		f.list(w, r.URL.Query().Get("prefix"))
		return
	}
	key, ok := strings.CutPrefix(path, testBucket+"/")
	if !ok {
		http.Error(w, "unknown bucket", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.objects[key] = fakeObject{body: body, contentType: r.Header.Get("Content-Type")}
		f.puts = append(f.puts, key)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead, http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>%s</Key></Error>`, key)
			}
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.body)))
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("Last-Modified", objectTime.Format(http.TimeFormat))
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(obj.body)
		}
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeS3) list(w http.ResponseWriter, prefix string) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	fmt.Fprintf(&b, "<Name>%s</Name><KeyCount>%d</KeyCount><IsTruncated>false</IsTruncated>", testBucket, len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>%s</LastModified></Contents>",
			k, len(f.objects[k].body), objectTime.Format(time.RFC3339))
	}
	b.WriteString("</ListBucketResult>")

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, b.String())
}

func newTestS3(t *testing.T) (*S3, *fakeS3) {
	t.Helper()
	// keep a developer's ~/.aws files out of the loaded config
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")

	fake := &fakeS3{objects: make(map[string]fakeObject)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3(context.Background(), S3Config{
		Bucket:          testBucket,
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		PathStyle:       true,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)
	return store, fake
}

func TestS3_PutGetList(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestS3(t)

	info, err := store.Put(ctx, "receipts/a.pdf", strings.NewReader("%PDF-a"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "receipts/a.pdf", info.Key)
	assert.Equal(t, int64(6), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.True(t, objectTime.Equal(info.LastModified), "last modified %s", info.LastModified)

	_, err = store.Put(ctx, "exports/x.csv", strings.NewReader("Name"), "text/csv")
	require.NoError(t, err)
	_, err = store.Put(ctx, "receipts/b.pdf", strings.NewReader("%PDF-b"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, []string{"receipts/a.pdf", "exports/x.csv", "receipts/b.pdf"}, fake.puts)
	assert.Equal(t, "application/pdf", fake.objects["receipts/a.pdf"].contentType)
	assert.Equal(t, "%PDF-a", string(fake.objects["receipts/a.pdf"].body))

	got, body, err := store.Get(ctx, "receipts/b.pdf")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-b", string(data))
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, int64(6), got.Size)

	listed, err := store.List(ctx, "receipts/")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "receipts/a.pdf", listed[0].Key)
	assert.Equal(t, "receipts/b.pdf", listed[1].Key)
	assert.Equal(t, int64(6), listed[1].Size)
}

func TestS3_PutBuffersUnseekableBody(t *testing.T) {
	store, fake := newTestS3(t)

	body := io.MultiReader(strings.NewReader("Name,Phone,Receipt ID\n"), strings.NewReader("Alice,555-0100,x\n"))
	info, err := store.Put(context.Background(), "exports/roster.csv", body, "text/csv")
	require.NoError(t, err)

	want := "Name,Phone,Receipt ID\nAlice,555-0100,x\n"
	assert.Equal(t, int64(len(want)), info.Size)
	assert.Equal(t, want, string(fake.objects["exports/roster.csv"].body))
	assert.Equal(t, "text/csv", fake.objects["exports/roster.csv"].contentType)
}

func TestS3_GetMissingIsNotFound(t *testing.T) {
	store, _ := newTestS3(t)
	_, _, err := store.Get(context.Background(), "receipts/missing.pdf")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{Region: "us-east-1"})
	require.ErrorContains(t, err, "bucket")
}
