package handlers

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ideaforge/backend/models"
	"github.com/ideaforge/backend/services"
)

// fakeChain records write calls and serves canned reads.
type fakeChain struct {
	mu    sync.Mutex
	calls []string

	submitted struct {
		title, contentHash, metadataHash, fee string
	}
	proposal models.ProposalInput
	vote     struct {
		id      *big.Int
		support uint8
	}

	idea *models.IdeaSubmission
	err  error
}

var _ services.ChainService = (*fakeChain)(nil)

func (f *fakeChain) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeChain) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

const fakeTxHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

func (f *fakeChain) SubmitIdea(_ context.Context, title, _, _, contentHash, metadataHash, fee string) (*models.TxResult, error) {
	if err := f.record("SubmitIdea"); err != nil {
		return nil, err
	}
	f.submitted.title = title
	f.submitted.contentHash = contentHash
	f.submitted.metadataHash = metadataHash
	f.submitted.fee = fee
	return &models.TxResult{TxHash: fakeTxHash, BlockNumber: 10, ID: big.NewInt(7), IDFound: true}, nil
}

func (f *fakeChain) ApproveIdea(context.Context, uint64, uint64, string) (string, error) {
	return fakeTxHash, f.record("ApproveIdea")
}

func (f *fakeChain) MintIPNFT(context.Context, uint64, string, uint64) (*models.TxResult, error) {
	if err := f.record("MintIPNFT"); err != nil {
		return nil, err
	}
	return &models.TxResult{TxHash: fakeTxHash, ID: new(big.Int)}, nil
}

func (f *fakeChain) GetIdeaSubmission(context.Context, uint64) (*models.IdeaSubmission, error) {
	if err := f.record("GetIdeaSubmission"); err != nil {
		return nil, err
	}
	return f.idea, nil
}

func (f *fakeChain) GetUserSubmissions(context.Context, string) ([]uint64, error) {
	return []uint64{1, 2}, f.record("GetUserSubmissions")
}

func (f *fakeChain) GetIPNFTData(_ context.Context, tokenID uint64) (*models.IPNFTData, error) {
	return &models.IPNFTData{TokenID: tokenID, LicensePrice: "0.5"}, f.record("GetIPNFTData")
}

func (f *fakeChain) GetCreatorTokens(context.Context, string) ([]uint64, error) {
	return []uint64{}, f.record("GetCreatorTokens")
}

func (f *fakeChain) LicenseIP(context.Context, uint64, string) (string, error) {
	return fakeTxHash, f.record("LicenseIP")
}

func (f *fakeChain) GetVotingPower(context.Context, string) (string, error) {
	return "1.5", f.record("GetVotingPower")
}

func (f *fakeChain) GetForgeTokenBalance(context.Context, string) (string, error) {
	return "100.0", f.record("GetForgeTokenBalance")
}

func (f *fakeChain) CreateDAOProposal(_ context.Context, p models.ProposalInput) (*models.TxResult, error) {
	if err := f.record("CreateDAOProposal"); err != nil {
		return nil, err
	}
	f.proposal = p
	id, _ := new(big.Int).SetString("71246914390812313904417373937491209785474926283624536402468530018413425430826", 10)
	return &models.TxResult{TxHash: fakeTxHash, ID: id, IDFound: true}, nil
}

func (f *fakeChain) VoteOnProposal(_ context.Context, id *big.Int, support uint8) (string, error) {
	f.vote.id = id
	f.vote.support = support
	return fakeTxHash, f.record("VoteOnProposal")
}

func (f *fakeChain) GetProposalState(context.Context, *big.Int) (uint8, error) {
	return 1, f.record("GetProposalState")
}

func (f *fakeChain) GetCreatorEarnings(context.Context, string) (string, error) {
	return "0.25", f.record("GetCreatorEarnings")
}

func (f *fakeChain) ClaimCreatorEarnings(context.Context, string) (string, error) {
	return fakeTxHash, f.record("ClaimCreatorEarnings")
}

func (f *fakeChain) CurrentBlockNumber(context.Context) (uint64, error) {
	return 123, f.record("CurrentBlockNumber")
}

func (f *fakeChain) GetTransactionReceipt(context.Context, string) (*models.TxReceipt, error) {
	if err := f.record("GetTransactionReceipt"); err != nil {
		return nil, err
	}
	return nil, models.NotFoundError(errors.New("receipt not found"))
}

func (f *fakeChain) Close() {}

// fakeStorage hands out sequential hashes.
type fakeStorage struct {
	mu       sync.Mutex
	uploads  []models.FileUpload
	jsonDocs []any
	err      error
}

var _ services.StorageService = (*fakeStorage)(nil)

const (
	fileHash = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	jsonHash = "QmT78zSuBmuS4z925WZfrqQ1qHaJ56DQaTfyMUF7F8ff5o"
)

func (f *fakeStorage) UploadFile(_ context.Context, file models.FileUpload) (*models.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, file)
	return &models.UploadResult{Hash: fileHash, Size: int64(len(file.Data))}, nil
}

func (f *fakeStorage) UploadJSON(_ context.Context, v any) (*models.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.jsonDocs = append(f.jsonDocs, v)
	return &models.UploadResult{Hash: jsonHash}, nil
}

func (f *fakeStorage) UploadMultipleFiles(ctx context.Context, files []models.FileUpload) ([]models.UploadResult, error) {
	out := make([]models.UploadResult, 0, len(files))
	for _, file := range files {
		r, err := f.UploadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStorage) GetFileInfo(_ context.Context, hash string) (*models.FileInfo, error) {
	return &models.FileInfo{Hash: hash, Size: 42, Type: "text/plain", Pinned: true}, nil
}

func (f *fakeStorage) PinHash(context.Context, string) bool   { return true }
func (f *fakeStorage) UnpinHash(context.Context, string) bool { return false }
func (f *fakeStorage) IsPinned(context.Context, string) bool  { return true }
func (f *fakeStorage) VerifyHash(context.Context, string) bool {
	return true
}

func (f *fakeStorage) GatewayURL(hash string) string {
	return "https://gateway.example/ipfs/" + hash
}

type fakeAI struct {
	err error
}

var _ services.InferenceService = (*fakeAI)(nil)

func (f *fakeAI) ValidateIdea(context.Context, string, string, string, string) models.AIValidationResult {
	return services.FallbackValidation()
}

func (f *fakeAI) AnalyzeContent(context.Context, string, string) (*models.ContentAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ContentAnalysis{Summary: "short", Keywords: []string{"a"}, Sentiment: "neutral", Topics: []string{}}, nil
}

func (f *fakeAI) GenerateMetadata(context.Context, string, string, string, float64) (string, error) {
	return `{"name":"x"}`, f.err
}
