package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ideaforge/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

// fakePinata is an in-memory stand-in for the Pinata API and gateway.
type fakePinata struct {
	mu        sync.Mutex
	pinned    map[string]bool
	jsonBody  []byte
	failFiles map[string]bool
	metadata  string
	options   string
	fileType  string
}

func newFakePinata() *fakePinata {
	return &fakePinata{pinned: make(map[string]bool), failFiles: make(map[string]bool)}
}

func (f *fakePinata) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("pinata_api_key") != "key" || r.Header.Get("pinata_secret_api_key") != "secret" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /pinning/pinFileToIPFS", auth(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)

		f.mu.Lock()
		fail := f.failFiles[header.Filename]
		f.metadata = r.FormValue("pinataMetadata")
		f.options = r.FormValue("pinataOptions")
		f.fileType = header.Header.Get("Content-Type")
		f.mu.Unlock()

		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"IpfsHash":"Qm` + header.Filename + `","PinSize":` + itoa(len(data)+11) + `,"Timestamp":"2024-05-01T10:00:00Z"}`))
	}))
	mux.HandleFunc("POST /pinning/pinJSONToIPFS", auth(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.jsonBody = body
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"IpfsHash":"QmJSON","PinSize":42,"Timestamp":"2024-05-01T10:00:00Z"}`))
	}))
	mux.HandleFunc("POST /pinning/pinByHash", auth(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HashToPin string `json:"hashToPin"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.pinned[req.HashToPin] = true
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"id":"1","ipfsHash":"` + req.HashToPin + `","status":"prechecking"}`))
	}))
	mux.HandleFunc("DELETE /pinning/unpin/{hash}", auth(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.pinned[r.PathValue("hash")] {
			http.Error(w, "not pinned", http.StatusNotFound)
			return
		}
		delete(f.pinned, r.PathValue("hash"))
		_, _ = w.Write([]byte("OK"))
	}))
	mux.HandleFunc("GET /data/pinList", auth(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pinned", r.URL.Query().Get("status"))
		f.mu.Lock()
		count := 0
		if f.pinned[r.URL.Query().Get("hashContains")] {
			count = 1
		}
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"count":` + itoa(count) + `,"rows":[]}`))
	}))
	mux.HandleFunc("HEAD /ipfs/{hash}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("hash") != testHash {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "2048")
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

type recordingArchive struct {
	mu    sync.Mutex
	keys  []string
	fails bool
}

func (a *recordingArchive) Archive(_ context.Context, hash string, _ []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fails {
		return errors.New("bucket unavailable")
	}
	a.keys = append(a.keys, ObjectKey(hash))
	return nil
}

func newTestPinata(t *testing.T, fake *fakePinata, archive Archiver) *PinataServiceImpl {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	log, _ := testLogger()
	return NewPinataService(PinataOptions{
		APIURL:     srv.URL,
		GatewayURL: srv.URL + "/ipfs",
		APIKey:     "key",
		SecretKey:  "secret",
	}, archive, log)
}

func TestUploadFile(t *testing.T) {
	fake := newFakePinata()
	archive := &recordingArchive{}
	svc := newTestPinata(t, fake, archive)

	res, err := svc.UploadFile(context.Background(), models.FileUpload{
		Data:        []byte("hello ipfs"),
		Filename:    "hello.txt",
		ContentType: "text/plain",
	})
	require.NoError(t, err)
	assert.Equal(t, "Qmhello.txt", res.Hash)
	assert.Equal(t, int64(10), res.Size)
	assert.Equal(t, int64(21), res.PinSize)
	assert.Equal(t, int64(1714557600000), res.Timestamp)
	assert.True(t, strings.HasSuffix(res.URL, "/ipfs/Qmhello.txt"))

	assert.JSONEq(t, `{"name":"hello.txt"}`, fake.metadata)
	assert.JSONEq(t, `{"cidVersion":0}`, fake.options)
	assert.Equal(t, "text/plain", fake.fileType)
	assert.Equal(t, []string{"ipfs/Qmhello.txt"}, archive.keys)
}

func TestUploadFileArchiveFailureIsIgnored(t *testing.T) {
	svc := newTestPinata(t, newFakePinata(), &recordingArchive{fails: true})

	res, err := svc.UploadFile(context.Background(), models.FileUpload{Data: []byte("x"), Filename: "x.txt", ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "Qmx.txt", res.Hash)
}

func TestUploadFileProviderErrorIsGeneric(t *testing.T) {
	fake := newFakePinata()
	fake.failFiles["bad.txt"] = true
	svc := newTestPinata(t, fake, nil)

	_, err := svc.UploadFile(context.Background(), models.FileUpload{Data: []byte("x"), Filename: "bad.txt", ContentType: "text/plain"})
	require.Error(t, err)
	apiErr := models.AsAPIError(err)
	assert.Equal(t, models.KindUpstream, apiErr.Kind)
	assert.Equal(t, "Failed to upload file to IPFS", apiErr.Message)
}

func TestUploadJSONSortsKeys(t *testing.T) {
	fake := newFakePinata()
	svc := newTestPinata(t, fake, nil)

	res, err := svc.UploadJSON(context.Background(), json.RawMessage(`{"title":"t","category":"c","nested":{"z":1,"a":12345678901234567890}}`))
	require.NoError(t, err)
	assert.Equal(t, "QmJSON", res.Hash)

	var sent struct {
		PinataContent  json.RawMessage   `json:"pinataContent"`
		PinataMetadata map[string]string `json:"pinataMetadata"`
	}
	require.NoError(t, json.Unmarshal(fake.jsonBody, &sent))
	assert.Equal(t, `{"category":"c","nested":{"a":12345678901234567890,"z":1},"title":"t"}`, string(sent.PinataContent))
	assert.True(t, strings.HasPrefix(sent.PinataMetadata["name"], "metadata-"))
	assert.Equal(t, int64(len(sent.PinataContent)), res.Size)
}

func TestUploadMultipleFilesAllOrNothing(t *testing.T) {
	fake := newFakePinata()
	fake.failFiles["b.txt"] = true
	svc := newTestPinata(t, fake, nil)

	files := []models.FileUpload{
		{Data: []byte("a"), Filename: "a.txt", ContentType: "text/plain"},
		{Data: []byte("b"), Filename: "b.txt", ContentType: "text/plain"},
		{Data: []byte("c"), Filename: "c.txt", ContentType: "text/plain"},
	}
	results, err := svc.UploadMultipleFiles(context.Background(), files)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Equal(t, "Failed to upload multiple files to IPFS", models.AsAPIError(err).Message)

	delete(fake.failFiles, "b.txt")
	results, err = svc.UploadMultipleFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Qma.txt", results[0].Hash)
	assert.Equal(t, "Qmb.txt", results[1].Hash)
	assert.Equal(t, "Qmc.txt", results[2].Hash)
}

func TestPinLifecycle(t *testing.T) {
	svc := newTestPinata(t, newFakePinata(), nil)
	ctx := context.Background()

	assert.False(t, svc.IsPinned(ctx, testHash))
	assert.False(t, svc.UnpinHash(ctx, testHash))

	assert.True(t, svc.PinHash(ctx, testHash))
	assert.True(t, svc.IsPinned(ctx, testHash))

	assert.True(t, svc.UnpinHash(ctx, testHash))
	assert.False(t, svc.IsPinned(ctx, testHash))
}

func TestBestEffortNeverRaises(t *testing.T) {
	log, hook := testLogger()
	svc := NewPinataService(PinataOptions{
		APIURL:     "http://127.0.0.1:1",
		GatewayURL: "http://127.0.0.1:1/ipfs/",
	}, nil, log)
	ctx := context.Background()

	assert.False(t, svc.PinHash(ctx, testHash))
	assert.False(t, svc.UnpinHash(ctx, testHash))
	assert.False(t, svc.IsPinned(ctx, testHash))
	assert.False(t, svc.VerifyHash(ctx, testHash))
	assert.Len(t, hook.AllEntries(), 4)
}

func TestVerifyAndFileInfo(t *testing.T) {
	svc := newTestPinata(t, newFakePinata(), nil)
	ctx := context.Background()

	assert.True(t, svc.VerifyHash(ctx, testHash))
	assert.False(t, svc.VerifyHash(ctx, "QmMissing"))

	info, err := svc.GetFileInfo(ctx, testHash)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), info.Size)
	assert.Equal(t, "image/png", info.Type)
	assert.False(t, info.Pinned)

	_, err = svc.GetFileInfo(ctx, "QmMissing")
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.AsAPIError(err).Kind)
}
