package media

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(handler http.HandlerFunc) (*Cloudinary, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewCloudinary("democloud", "key123", "secret456")
	c.baseURL = srv.URL
	return c, srv
}

func TestCloudinaryUpload(t *testing.T) {
	var gotPath string
	var gotFile, gotKey, gotSignature string

	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotFile = r.FormValue("file")
		gotKey = r.FormValue("api_key")
		gotSignature = r.FormValue("signature")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.test/demo/v1/pic.jpg"}`))
	})
	defer srv.Close()

	url, err := c.Upload("data:image/png;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.test/demo/v1/pic.jpg", url)
	assert.Equal(t, "/democloud/image/upload", gotPath)
	assert.Equal(t, "data:image/png;base64,AAAA", gotFile)
	assert.Equal(t, "key123", gotKey)
	assert.Len(t, gotSignature, 40)
}

func TestCloudinaryUploadFallsBackToURL(t *testing.T) {
	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"http://res.cloudinary.test/demo/v1/pic.jpg"}`))
	})
	defer srv.Close()

	url, err := c.Upload("raw")
	require.NoError(t, err)
	assert.Equal(t, "http://res.cloudinary.test/demo/v1/pic.jpg", url)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})
	defer srv.Close()

	_, err := c.Upload("raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestCloudinaryDestroy(t *testing.T) {
	var gotPublicID string

	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPublicID = r.FormValue("public_id")
		w.Write([]byte(`{"result":"ok"}`))
	})
	defer srv.Close()

	err := c.Destroy("http://res.cloudinary.test/demo/v1/abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotPublicID)
}

func TestCloudinaryDestroyMissingBlobIsFine(t *testing.T) {
	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"not found"}`))
	})
	defer srv.Close()

	assert.NoError(t, c.Destroy("http://res.cloudinary.test/demo/v1/gone.jpg"))
}

func TestCloudinaryDestroyFailure(t *testing.T) {
	c, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error"}`))
	})
	defer srv.Close()

	assert.Error(t, c.Destroy("http://res.cloudinary.test/demo/v1/abc.jpg"))
}

func TestCloudinarySign(t *testing.T) {
	c := NewCloudinary("democloud", "key123", "secret456")

	// sha1 over params+secret, hex encoded. Stable across calls.
	first := c.sign("timestamp=100")
	assert.Len(t, first, 40)
	assert.Equal(t, first, c.sign("timestamp=100"))
	assert.NotEqual(t, first, c.sign("timestamp=101"))
}
