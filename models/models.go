package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// Request models

type WalletAuthRequest struct {
	Address   string `json:"address" binding:"required,ethaddr"`
	Signature string `json:"signature" binding:"required,hexbytes"`
	Message   string `json:"message" binding:"required"`
}

// FileInput is a base64 encoded attachment.
type FileInput struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Content string `json:"content" binding:"required,base64"`
}

type SubmitIdeaRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=200"`
	Description string      `json:"description" binding:"required,min=10,max=2000"`
	Category    string      `json:"category" binding:"required,min=1,max=50"`
	Content     string      `json:"content"`
	Files       []FileInput `json:"files" binding:"omitempty,dive"`
}

// Numeric fields where zero is a legal value are pointers so that `required` means "present".

type ApproveIdeaRequest struct {
	IdeaID             *uint64 `json:"ideaId" binding:"required"`
	AICredibilityScore *uint64 `json:"aiCredibilityScore" binding:"required,max=100"`
	ValidationNotes    string  `json:"validationNotes" binding:"required,min=1,max=1000"`
}

type MintIPNFTRequest struct {
	IdeaID     *uint64 `json:"ideaId" binding:"required"`
	TokenURI   string  `json:"tokenURI" binding:"required,url"`
	RoyaltyFee *uint64 `json:"royaltyFee" binding:"required,max=1000"`
}

type LicenseIPRequest struct {
	TokenID *uint64 `json:"tokenId" binding:"required"`
	Price   string  `json:"price" binding:"required,ether"`
}

type CreateProposalRequest struct {
	Targets      []string `json:"targets" binding:"required,dive,ethaddr"`
	Values       []string `json:"values" binding:"required,dive,uintstr"`
	Calldatas    []string `json:"calldatas" binding:"required,dive,hexbytes"`
	Description  string   `json:"description" binding:"required,min=1,max=1000"`
	ProposalType *uint8   `json:"proposalType" binding:"required,max=4"`
	Title        string   `json:"title" binding:"required,min=1,max=200"`
	ExternalLink string   `json:"externalLink" binding:"omitempty,url"`
}

type VoteRequest struct {
	ProposalID *BigUint `json:"proposalId" binding:"required"`
	Support    *uint8   `json:"support" binding:"required,max=2"`
}

type ClaimEarningsRequest struct {
	Amount string `json:"amount" binding:"required,ether"`
}

type ValidateIdeaRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=10,max=2000"`
	Category    string `json:"category" binding:"required,min=1,max=50"`
	Content     string `json:"content"`
}

type AnalyzeContentRequest struct {
	Content     string `json:"content" binding:"required,min=1"`
	ContentType string `json:"contentType" binding:"required,min=1"`
}

type GenerateMetadataRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"required,min=10,max=2000"`
	Category    string   `json:"category" binding:"required,min=1,max=50"`
	AIScore     *float64 `json:"aiScore" binding:"required,min=0,max=100"`
}

type UploadFileRequest struct {
	Filename    string `json:"filename" binding:"required,min=1"`
	ContentType string `json:"contentType" binding:"required,min=1"`
	Content     string `json:"content" binding:"required,base64"`
}

type UploadJSONRequest struct {
	Metadata json.RawMessage `json:"metadata" binding:"required"`
}

type HashRequest struct {
	Hash string `json:"hash" binding:"required,cid"`
}

// Domain models

// FileUpload is a decoded attachment on its way to the pinning service.
type FileUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// IdeaMetadata is the JSON document pinned next to every submission.
type IdeaMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content,omitempty"`
	SubmittedAt string `json:"submittedAt"`
	Version     string `json:"version"`
}

// ProposalInput is a validated DAO proposal with values already converted to wei.
type ProposalInput struct {
	Targets      []string
	Values       []*big.Int
	Calldatas    [][]byte
	Description  string
	ProposalType uint8
	Title        string
	ExternalLink string
}

// TxResult describes a mined transaction and the identifier decoded from its event, if any.
type TxResult struct {
	TxHash      string
	BlockNumber uint64
	ID          *big.Int
	IDFound     bool
}

// Response models

type IdeaSubmission struct {
	IdeaID             uint64  `json:"ideaId"`
	Submitter          string  `json:"submitter"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	ContentHash        string  `json:"contentHash"`
	MetadataHash       string  `json:"metadataHash"`
	SubmissionTime     uint64  `json:"submissionTime"`
	AICredibilityScore *uint64 `json:"aiCredibilityScore,omitempty"`
	IsApproved         bool    `json:"isApproved"`
	IsMinted           bool    `json:"isMinted"`
	Validator          string  `json:"validator,omitempty"`
	ValidationNotes    string  `json:"validationNotes"`
	MintedTokenID      *uint64 `json:"mintedTokenId,omitempty"`
}

type IPNFTData struct {
	TokenID      uint64  `json:"tokenId"`
	Creator      string  `json:"creator"`
	CreationTime uint64  `json:"creationTime"`
	AIScore      uint64  `json:"aiScore"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	IsLicensed   bool    `json:"isLicensed"`
	LicensePrice string  `json:"licensePrice"`
	RoyaltyFee   *uint64 `json:"royaltyFee,omitempty"`
}

type TxReceipt struct {
	TxHash          string `json:"txHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	Status          uint64 `json:"status"`
	GasUsed         uint64 `json:"gasUsed"`
	ContractAddress string `json:"contractAddress,omitempty"`
	Logs            int    `json:"logs"`
}

type UploadResult struct {
	Hash      string `json:"hash"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	PinSize   int64  `json:"pinSize"`
	Timestamp int64  `json:"timestamp"`
}

type FileInfo struct {
	Hash   string `json:"hash"`
	Size   int64  `json:"size"`
	Type   string `json:"type"`
	Pinned bool   `json:"pinned"`
	URL    string `json:"url"`
}

type AIValidationResult struct {
	Score           float64  `json:"score"`
	Originality     float64  `json:"originality"`
	Quality         float64  `json:"quality"`
	MarketPotential float64  `json:"marketPotential"`
	Category        string   `json:"category"`
	Suggestions     []string `json:"suggestions"`
	Risks           []string `json:"risks"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
}

type ContentAnalysis struct {
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
}

type AuthUser struct {
	Address       string `json:"address"`
	Authenticated bool   `json:"authenticated,omitempty"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  AuthUser `json:"user"`
}

// BigUint is an unsigned integer of arbitrary size. It decodes from a JSON number or a decimal
// string and always encodes as a decimal string, since governor proposal ids overflow float64.
type BigUint struct {
	big.Int
}

func (b *BigUint) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if _, ok := b.SetString(s, 10); !ok || b.Sign() < 0 {
		return fmt.Errorf("invalid unsigned integer %s", data)
	}
	return nil
}

func (b BigUint) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}
