package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// StorageService pins content on IPFS through Pinata.
//
// Two error strategies apply. Raising operations (uploads, GetFileInfo) return an upstream
// APIError when the provider fails. Best-effort operations (PinHash, UnpinHash, IsPinned,
// VerifyHash) log the failure and answer false; they never return an error.
type StorageService interface {
	UploadFile(ctx context.Context, file models.FileUpload) (*models.UploadResult, error)
	UploadJSON(ctx context.Context, v any) (*models.UploadResult, error)
	// UploadMultipleFiles uploads concurrently and fails as a whole if any upload fails.
	UploadMultipleFiles(ctx context.Context, files []models.FileUpload) ([]models.UploadResult, error)
	GetFileInfo(ctx context.Context, hash string) (*models.FileInfo, error)

	PinHash(ctx context.Context, hash string) bool
	UnpinHash(ctx context.Context, hash string) bool
	IsPinned(ctx context.Context, hash string) bool
	VerifyHash(ctx context.Context, hash string) bool

	GatewayURL(hash string) string
}

// Ensure PinataServiceImpl implements StorageService interface
var _ StorageService = (*PinataServiceImpl)(nil)

type PinataOptions struct {
	APIURL     string
	GatewayURL string
	APIKey     string
	SecretKey  string
	Timeout    time.Duration
}

type PinataServiceImpl struct {
	apiURL     string
	gatewayURL string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	archive    Archiver
	log        *logrus.Entry
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// NewPinataService builds the gateway. archive may be nil.
func NewPinataService(opts PinataOptions, archive Archiver, log *logrus.Entry) *PinataServiceImpl {
	gateway := opts.GatewayURL
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &PinataServiceImpl{
		apiURL:     strings.TrimSuffix(opts.APIURL, "/"),
		gatewayURL: gateway,
		apiKey:     opts.APIKey,
		secretKey:  opts.SecretKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		archive:    archive,
		log:        log,
	}
}

func (s *PinataServiceImpl) GatewayURL(hash string) string {
	return s.gatewayURL + hash
}

// raising logs err and converts it to the public upstream error.
func (s *PinataServiceImpl) raising(message string, err error, fields logrus.Fields) error {
	s.log.WithError(err).WithFields(fields).Error(message)
	return models.UpstreamError(message, err)
}

// bestEffort logs err and reports false.
func (s *PinataServiceImpl) bestEffort(op string, err error, hash string) bool {
	s.log.WithError(err).WithField("hash", hash).Warn(op + " failed")
	return false
}

// do sends an authenticated request to the Pinata API and returns the body of a 2xx response.
func (s *PinataServiceImpl) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("pinata_api_key", s.apiKey)
	req.Header.Set("pinata_secret_api_key", s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pinata response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("pinata %s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func (s *PinataServiceImpl) toResult(body []byte, size int64) (*models.UploadResult, error) {
	var pin pinResponse
	if err := json.Unmarshal(body, &pin); err != nil {
		return nil, fmt.Errorf("failed to parse pinata response: %w", err)
	}
	if pin.IpfsHash == "" {
		return nil, errors.New("pinata response has no IpfsHash")
	}

	ts := time.Now()
	if parsed, err := time.Parse(time.RFC3339, pin.Timestamp); err == nil {
		ts = parsed
	}
	return &models.UploadResult{
		Hash:      pin.IpfsHash,
		Size:      size,
		URL:       s.GatewayURL(pin.IpfsHash),
		PinSize:   pin.PinSize,
		Timestamp: ts.UnixMilli(),
	}, nil
}

func (s *PinataServiceImpl) UploadFile(ctx context.Context, file models.FileUpload) (*models.UploadResult, error) {
	const msg = "Failed to upload file to IPFS"
	fields := logrus.Fields{"filename": file.Filename, "size": len(file.Data)}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
	header.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, s.raising(msg, err, fields)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, s.raising(msg, err, fields)
	}

	meta, _ := json.Marshal(map[string]string{"name": file.Filename})
	if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
		return nil, s.raising(msg, err, fields)
	}
	if err := w.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return nil, s.raising(msg, err, fields)
	}
	if err := w.Close(); err != nil {
		return nil, s.raising(msg, err, fields)
	}

	body, err := s.do(ctx, http.MethodPost, "/pinning/pinFileToIPFS", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, s.raising(msg, err, fields)
	}
	result, err := s.toResult(body, int64(len(file.Data)))
	if err != nil {
		return nil, s.raising(msg, err, fields)
	}

	s.log.WithFields(fields).WithField("hash", result.Hash).Info("File pinned")
	s.mirror(ctx, result.Hash, file.Data, file.ContentType)
	return result, nil
}

// canonicalJSON re-encodes v through generic values so object keys come out sorted.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

func (s *PinataServiceImpl) UploadJSON(ctx context.Context, v any) (*models.UploadResult, error) {
	const msg = "Failed to upload JSON to IPFS"

	content, err := canonicalJSON(v)
	if err != nil {
		return nil, s.raising(msg, err, nil)
	}

	name := fmt.Sprintf("metadata-%d.json", time.Now().UnixMilli())
	payload, err := json.Marshal(map[string]any{
		"pinataContent":  json.RawMessage(content),
		"pinataMetadata": map[string]string{"name": name},
		"pinataOptions":  map[string]int{"cidVersion": 0},
	})
	if err != nil {
		return nil, s.raising(msg, err, nil)
	}

	body, err := s.do(ctx, http.MethodPost, "/pinning/pinJSONToIPFS", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, s.raising(msg, err, logrus.Fields{"size": len(content)})
	}
	result, err := s.toResult(body, int64(len(content)))
	if err != nil {
		return nil, s.raising(msg, err, nil)
	}

	s.log.WithField("hash", result.Hash).Info("JSON pinned")
	s.mirror(ctx, result.Hash, content, "application/json")
	return result, nil
}

func (s *PinataServiceImpl) UploadMultipleFiles(ctx context.Context, files []models.FileUpload) ([]models.UploadResult, error) {
	results := make([]models.UploadResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			res, err := s.UploadFile(gctx, f)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.raising("Failed to upload multiple files to IPFS", err, logrus.Fields{"count": len(files)})
	}
	return results, nil
}

func (s *PinataServiceImpl) PinHash(ctx context.Context, hash string) bool {
	payload, err := json.Marshal(map[string]any{
		"hashToPin":      hash,
		"pinataMetadata": map[string]string{"name": hash},
	})
	if err != nil {
		return s.bestEffort("pin", err, hash)
	}
	if _, err := s.do(ctx, http.MethodPost, "/pinning/pinByHash", "application/json", bytes.NewReader(payload)); err != nil {
		return s.bestEffort("pin", err, hash)
	}
	return true
}

func (s *PinataServiceImpl) UnpinHash(ctx context.Context, hash string) bool {
	if _, err := s.do(ctx, http.MethodDelete, "/pinning/unpin/"+url.PathEscape(hash), "", nil); err != nil {
		return s.bestEffort("unpin", err, hash)
	}
	return true
}

func (s *PinataServiceImpl) IsPinned(ctx context.Context, hash string) bool {
	query := url.Values{"hashContains": {hash}, "status": {"pinned"}}
	body, err := s.do(ctx, http.MethodGet, "/data/pinList?"+query.Encode(), "", nil)
	if err != nil {
		return s.bestEffort("pin status", err, hash)
	}
	return gjson.GetBytes(body, "count").Int() > 0
}

// head issues a HEAD request for hash against the public gateway.
func (s *PinataServiceImpl) head(ctx context.Context, hash string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.GatewayURL(hash), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

func (s *PinataServiceImpl) VerifyHash(ctx context.Context, hash string) bool {
	resp, err := s.head(ctx, hash)
	if err != nil {
		return s.bestEffort("verify", err, hash)
	}
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

func (s *PinataServiceImpl) GetFileInfo(ctx context.Context, hash string) (*models.FileInfo, error) {
	const msg = "Failed to retrieve file information"

	resp, err := s.head(ctx, hash)
	if err != nil {
		return nil, s.raising(msg, err, logrus.Fields{"hash": hash})
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NotFoundError(fmt.Errorf("%s not found on gateway", hash))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.raising(msg, fmt.Errorf("gateway returned status %d", resp.StatusCode), logrus.Fields{"hash": hash})
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "unknown"
	}
	return &models.FileInfo{
		Hash:   hash,
		Size:   resp.ContentLength,
		Type:   contentType,
		Pinned: s.IsPinned(ctx, hash),
		URL:    s.GatewayURL(hash),
	}, nil
}

// mirror copies pinned bytes to the archive. Failures never affect the upload.
func (s *PinataServiceImpl) mirror(ctx context.Context, hash string, data []byte, contentType string) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Archive(context.WithoutCancel(ctx), hash, data, contentType); err != nil {
		s.log.WithError(err).WithField("hash", hash).Warn("Archive mirror failed")
	}
}
