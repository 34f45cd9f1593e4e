package services

import (
	"context"
	"math/big"

	"github.com/ideaforge/backend/models"
)

// ChainService talks to the deployed IdeaForge contracts through one JSON-RPC node and one
// signing key. Every failure comes back as a models.APIError of kind upstream whose message
// names the operation; the cause is logged, never returned to HTTP clients.
//
// Writes wait for the receipt and treat a reverted status as a failure. They are not retried.
type ChainService interface {
	SubmitIdea(ctx context.Context, title, description, category, contentHash, metadataHash, fee string) (*models.TxResult, error)
	ApproveIdea(ctx context.Context, ideaID, score uint64, notes string) (string, error)
	// MintIPNFT reports IDFound=false, with ID zero, when no IPNFTMinted log is in the receipt.
	MintIPNFT(ctx context.Context, ideaID uint64, tokenURI string, royaltyBps uint64) (*models.TxResult, error)
	GetIdeaSubmission(ctx context.Context, ideaID uint64) (*models.IdeaSubmission, error)
	GetUserSubmissions(ctx context.Context, address string) ([]uint64, error)

	GetIPNFTData(ctx context.Context, tokenID uint64) (*models.IPNFTData, error)
	GetCreatorTokens(ctx context.Context, address string) ([]uint64, error)
	LicenseIP(ctx context.Context, tokenID uint64, price string) (string, error)

	GetVotingPower(ctx context.Context, address string) (string, error)
	GetForgeTokenBalance(ctx context.Context, address string) (string, error)

	CreateDAOProposal(ctx context.Context, proposal models.ProposalInput) (*models.TxResult, error)
	VoteOnProposal(ctx context.Context, proposalID *big.Int, support uint8) (string, error)
	GetProposalState(ctx context.Context, proposalID *big.Int) (uint8, error)

	GetCreatorEarnings(ctx context.Context, address string) (string, error)
	ClaimCreatorEarnings(ctx context.Context, amount string) (string, error)

	CurrentBlockNumber(ctx context.Context) (uint64, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*models.TxReceipt, error)

	Close()
}
