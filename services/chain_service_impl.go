package services

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ideaforge/backend/config"
	"github.com/ideaforge/backend/contracts"
	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
)

// Ensure ChainServiceImpl implements ChainService interface
var _ ChainService = (*ChainServiceImpl)(nil)

// rpcBackend is the subset of *ethclient.Client the gateway needs.
type rpcBackend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

// royaltyDenominator is the sale price passed to royaltyInfo so the answer comes back in basis points.
var royaltyDenominator = big.NewInt(10000)

type ChainOptions struct {
	ChainID      *big.Int // nil = ask the node on first write
	TxTimeout    time.Duration
	PollInterval time.Duration
}

type ChainServiceImpl struct {
	client    rpcBackend
	key       *ecdsa.PrivateKey
	from      common.Address
	abis      contracts.Registry
	addresses map[contracts.Name]common.Address
	opts      ChainOptions
	log       *logrus.Entry

	// writeMu is held from nonce fetch until the transaction is handed to the node.
	writeMu sync.Mutex
	chainID *big.Int
}

// ideaSubmissionTuple mirrors IdeaForgeCore.IdeaSubmission. Field order and names must match the ABI.
type ideaSubmissionTuple struct {
	IdeaId             *big.Int
	Submitter          common.Address
	Title              string
	Description        string
	Category           string
	ContentHash        string
	MetadataHash       string
	SubmissionTime     *big.Int
	AiCredibilityScore *big.Int
	IsApproved         bool
	IsMinted           bool
	Validator          common.Address
	ValidationNotes    string
	MintedTokenId      *big.Int
}

type ipDataOutput struct {
	Creator      common.Address
	CreationTime *big.Int
	AiScore      *big.Int
	Category     string
	Description  string
	IsLicensed   bool
	LicensePrice *big.Int
}

func NewChainService(cfg *config.Config, log *logrus.Entry) (*ChainServiceImpl, error) {
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC node: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	abis, err := contracts.Load()
	if err != nil {
		client.Close()
		return nil, err
	}

	addresses := map[contracts.Name]common.Address{
		contracts.ForgeToken:      common.HexToAddress(cfg.ForgeTokenAddress),
		contracts.IPNFT:           common.HexToAddress(cfg.IPNFTAddress),
		contracts.IdeaForgeCore:   common.HexToAddress(cfg.IdeaForgeCoreAddress),
		contracts.IdeaForgeDAO:    common.HexToAddress(cfg.DAOAddress),
		contracts.RevenueSplitter: common.HexToAddress(cfg.RevenueSplitterAddress),
	}

	opts := ChainOptions{TxTimeout: cfg.TxTimeout, PollInterval: cfg.ReceiptPollInterval}
	if cfg.ChainID != 0 {
		opts.ChainID = big.NewInt(cfg.ChainID)
	}

	return newChainService(client, key, abis, addresses, opts, log), nil
}

func newChainService(
	client rpcBackend,
	key *ecdsa.PrivateKey,
	abis contracts.Registry,
	addresses map[contracts.Name]common.Address,
	opts ChainOptions,
	log *logrus.Entry,
) *ChainServiceImpl {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	s := &ChainServiceImpl{
		client:    client,
		key:       key,
		from:      crypto.PubkeyToAddress(key.PublicKey),
		abis:      abis,
		addresses: addresses,
		opts:      opts,
		log:       log,
		chainID:   opts.ChainID,
	}
	s.log.WithField("signer", s.from.Hex()).Info("Chain service initialized")
	return s
}

func (s *ChainServiceImpl) Close() {
	s.client.Close()
}

// fail logs the cause and returns the public upstream error.
func (s *ChainServiceImpl) fail(message string, err error, fields logrus.Fields) error {
	s.log.WithError(err).WithFields(fields).Error(message)
	return models.UpstreamError(message, err)
}

// call runs an eth_call against name and returns the raw return data.
func (s *ChainServiceImpl) call(ctx context.Context, name contracts.Name, method string, args ...any) ([]byte, error) {
	input, err := s.abis[name].Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", name, method, err)
	}

	to := s.addresses[name]
	out, err := s.client.CallContract(ctx, ethereum.CallMsg{From: s.from, To: &to, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s.%s call failed: %w", name, method, err)
	}
	return out, nil
}

// callUnpack runs call and decodes the outputs into a slice.
func (s *ChainServiceImpl) callUnpack(ctx context.Context, name contracts.Name, method string, args ...any) ([]any, error) {
	out, err := s.call(ctx, name, method, args...)
	if err != nil {
		return nil, err
	}
	values, err := s.abis[name].Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s.%s: %w", name, method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s.%s returned no values", name, method)
	}
	return values, nil
}

// submitTransaction signs and sends a call to name.method, then waits for it to be mined.
// The request context only contributes its values; the wait is bounded by the tx timeout, if set.
func (s *ChainServiceImpl) submitTransaction(
	ctx context.Context,
	name contracts.Name,
	method string,
	value *big.Int,
	args ...any,
) (*types.Receipt, error) {
	input, err := s.abis[name].Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", name, method, err)
	}

	ctx = context.WithoutCancel(ctx)
	if s.opts.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TxTimeout)
		defer cancel()
	}

	tx, err := s.signAndSend(ctx, s.addresses[name], value, input)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"contract": name,
		"method":   method,
		"tx":       tx.Hash().Hex(),
		"nonce":    tx.Nonce(),
	}).Info("Transaction submitted")

	receipt, err := s.waitMined(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted in block %d", tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}
	return receipt, nil
}

func (s *ChainServiceImpl) signAndSend(ctx context.Context, to common.Address, value *big.Int, input []byte) (*types.Transaction, error) {
	if value == nil {
		value = new(big.Int)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.chainID == nil {
		id, err := s.client.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain id: %w", err)
		}
		s.chainID = id
	}

	nonce, err := s.client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     s.from,
		To:       &to,
		GasPrice: gasPrice,
		Value:    value,
		Data:     input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &to,
		Value:    value,
		Data:     input,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	return signed, nil
}

// waitMined polls for the receipt until it exists or ctx ends.
func (s *ChainServiceImpl) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			s.log.WithError(err).WithField("tx", hash.Hex()).Warn("Receipt lookup failed, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// eventID scans the receipt for the first log of event and returns its field. Logs that fail to
// decode are skipped.
func (s *ChainServiceImpl) eventID(receipt *types.Receipt, name contracts.Name, event, field string) (*big.Int, bool) {
	parsed := s.abis[name]
	ev, ok := parsed.Events[event]
	if !ok {
		return nil, false
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}

	for _, lg := range receipt.Logs {
		if len(lg.Topics) == 0 || lg.Topics[0] != ev.ID {
			continue
		}
		values := make(map[string]any)
		if len(lg.Data) > 0 {
			if err := parsed.UnpackIntoMap(values, event, lg.Data); err != nil {
				continue
			}
		}
		if err := abi.ParseTopicsIntoMap(values, indexed, lg.Topics[1:]); err != nil {
			continue
		}
		if id, ok := values[field].(*big.Int); ok {
			return id, true
		}
	}
	return nil, false
}

func txResult(receipt *types.Receipt, id *big.Int, found bool) *models.TxResult {
	if id == nil {
		id = new(big.Int)
	}
	return &models.TxResult{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		ID:          id,
		IDFound:     found,
	}
}

func toUint64s(values []*big.Int) []uint64 {
	out := make([]uint64, 0, len(values))
	for _, v := range values {
		out = append(out, v.Uint64())
	}
	return out
}

// Idea operations

func (s *ChainServiceImpl) SubmitIdea(ctx context.Context, title, description, category, contentHash, metadataHash, fee string) (*models.TxResult, error) {
	const msg = "Failed to submit idea to blockchain"
	fields := logrus.Fields{"title": title, "category": category}

	value, err := ParseEther(fee)
	if err != nil {
		return nil, s.fail(msg, err, fields)
	}

	receipt, err := s.submitTransaction(ctx, contracts.IdeaForgeCore, "submitIdea", value,
		title, description, category, contentHash, metadataHash)
	if err != nil {
		return nil, s.fail(msg, err, fields)
	}

	id, found := s.eventID(receipt, contracts.IdeaForgeCore, contracts.EventIdeaSubmitted, "ideaId")
	if !found {
		s.log.WithField("tx", receipt.TxHash.Hex()).Warn("IdeaSubmitted event not found in receipt")
	}
	return txResult(receipt, id, found), nil
}

func (s *ChainServiceImpl) ApproveIdea(ctx context.Context, ideaID, score uint64, notes string) (string, error) {
	receipt, err := s.submitTransaction(ctx, contracts.IdeaForgeCore, "approveIdea", nil,
		new(big.Int).SetUint64(ideaID), new(big.Int).SetUint64(score), notes)
	if err != nil {
		return "", s.fail("Failed to approve idea on blockchain", err, logrus.Fields{"ideaId": ideaID})
	}
	return receipt.TxHash.Hex(), nil
}

func (s *ChainServiceImpl) MintIPNFT(ctx context.Context, ideaID uint64, tokenURI string, royaltyBps uint64) (*models.TxResult, error) {
	receipt, err := s.submitTransaction(ctx, contracts.IdeaForgeCore, "mintIPNFT", nil,
		new(big.Int).SetUint64(ideaID), tokenURI, new(big.Int).SetUint64(royaltyBps))
	if err != nil {
		return nil, s.fail("Failed to mint IP-NFT on blockchain", err, logrus.Fields{"ideaId": ideaID})
	}

	id, found := s.eventID(receipt, contracts.IdeaForgeCore, contracts.EventIPNFTMinted, "tokenId")
	if !found {
		s.log.WithFields(logrus.Fields{"ideaId": ideaID, "tx": receipt.TxHash.Hex()}).
			Warn("IPNFTMinted event not found in receipt, token id unknown")
	}
	return txResult(receipt, id, found), nil
}

func (s *ChainServiceImpl) GetIdeaSubmission(ctx context.Context, ideaID uint64) (*models.IdeaSubmission, error) {
	const msg = "Failed to retrieve idea submission from blockchain"
	fields := logrus.Fields{"ideaId": ideaID}

	values, err := s.callUnpack(ctx, contracts.IdeaForgeCore, "getIdeaSubmission", new(big.Int).SetUint64(ideaID))
	if err != nil {
		return nil, s.fail(msg, err, fields)
	}
	tuple, ok := abi.ConvertType(values[0], new(ideaSubmissionTuple)).(*ideaSubmissionTuple)
	if !ok {
		return nil, s.fail(msg, errors.New("unexpected getIdeaSubmission output"), fields)
	}

	view := &models.IdeaSubmission{
		IdeaID:          tuple.IdeaId.Uint64(),
		Submitter:       tuple.Submitter.Hex(),
		Title:           tuple.Title,
		Description:     tuple.Description,
		Category:        tuple.Category,
		ContentHash:     tuple.ContentHash,
		MetadataHash:    tuple.MetadataHash,
		SubmissionTime:  tuple.SubmissionTime.Uint64(),
		IsApproved:      tuple.IsApproved,
		IsMinted:        tuple.IsMinted,
		ValidationNotes: tuple.ValidationNotes,
	}
	if tuple.IsApproved {
		score := tuple.AiCredibilityScore.Uint64()
		view.AICredibilityScore = &score
	}
	if tuple.Validator != (common.Address{}) {
		view.Validator = tuple.Validator.Hex()
	}
	if tuple.IsMinted {
		tokenID := tuple.MintedTokenId.Uint64()
		view.MintedTokenID = &tokenID
	}
	return view, nil
}

func (s *ChainServiceImpl) GetUserSubmissions(ctx context.Context, address string) ([]uint64, error) {
	values, err := s.callUnpack(ctx, contracts.IdeaForgeCore, "getUserSubmissions", common.HexToAddress(address))
	if err != nil {
		return nil, s.fail("Failed to retrieve user submissions from blockchain", err, logrus.Fields{"address": address})
	}
	ids, ok := values[0].([]*big.Int)
	if !ok {
		return nil, s.fail("Failed to retrieve user submissions from blockchain", errors.New("unexpected output type"), nil)
	}
	return toUint64s(ids), nil
}

// NFT operations

func (s *ChainServiceImpl) GetIPNFTData(ctx context.Context, tokenID uint64) (*models.IPNFTData, error) {
	const msg = "Failed to retrieve IP-NFT data from blockchain"
	fields := logrus.Fields{"tokenId": tokenID}
	id := new(big.Int).SetUint64(tokenID)

	out, err := s.call(ctx, contracts.IPNFT, "getIPData", id)
	if err != nil {
		return nil, s.fail(msg, err, fields)
	}
	var data ipDataOutput
	if err := s.abis[contracts.IPNFT].UnpackIntoInterface(&data, "getIPData", out); err != nil {
		return nil, s.fail(msg, fmt.Errorf("failed to decode getIPData: %w", err), fields)
	}

	view := &models.IPNFTData{
		TokenID:      tokenID,
		Creator:      data.Creator.Hex(),
		CreationTime: data.CreationTime.Uint64(),
		AIScore:      data.AiScore.Uint64(),
		Category:     data.Category,
		Description:  data.Description,
		IsLicensed:   data.IsLicensed,
		LicensePrice: FormatEther(data.LicensePrice),
	}

	// Royalty is read through ERC-2981; a token without it is still returned.
	royalty, err := s.callUnpack(ctx, contracts.IPNFT, "royaltyInfo", id, royaltyDenominator)
	if err != nil {
		s.log.WithError(err).WithFields(fields).Debug("royaltyInfo unavailable")
		return view, nil
	}
	bps, err := royaltyBasisPoints(royalty)
	if err != nil {
		s.log.WithError(err).WithFields(fields).Debug("royaltyInfo malformed")
		return view, nil
	}
	view.RoyaltyFee = &bps
	return view, nil
}

// royaltyBasisPoints picks the amount out of royaltyInfo's (receiver, amount) pair.
func royaltyBasisPoints(values []any) (uint64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("royaltyInfo returned %d values, want 2", len(values))
	}
	amount, ok := values[1].(*big.Int)
	if !ok || amount == nil {
		return 0, fmt.Errorf("royaltyInfo amount has type %T", values[1])
	}
	return amount.Uint64(), nil
}

func (s *ChainServiceImpl) GetCreatorTokens(ctx context.Context, address string) ([]uint64, error) {
	values, err := s.callUnpack(ctx, contracts.IPNFT, "getCreatorTokens", common.HexToAddress(address))
	if err != nil {
		return nil, s.fail("Failed to retrieve creator tokens from blockchain", err, logrus.Fields{"address": address})
	}
	ids, ok := values[0].([]*big.Int)
	if !ok {
		return nil, s.fail("Failed to retrieve creator tokens from blockchain", errors.New("unexpected output type"), nil)
	}
	return toUint64s(ids), nil
}

func (s *ChainServiceImpl) LicenseIP(ctx context.Context, tokenID uint64, price string) (string, error) {
	const msg = "Failed to license IP on blockchain"
	fields := logrus.Fields{"tokenId": tokenID, "price": price}

	priceWei, err := ParseEther(price)
	if err != nil {
		return "", s.fail(msg, err, fields)
	}
	receipt, err := s.submitTransaction(ctx, contracts.IPNFT, "licenseIP", priceWei,
		new(big.Int).SetUint64(tokenID), priceWei)
	if err != nil {
		return "", s.fail(msg, err, fields)
	}
	return receipt.TxHash.Hex(), nil
}

// Token operations

func (s *ChainServiceImpl) readEther(ctx context.Context, name contracts.Name, method, address, msg string) (string, error) {
	values, err := s.callUnpack(ctx, name, method, common.HexToAddress(address))
	if err != nil {
		return "", s.fail(msg, err, logrus.Fields{"address": address})
	}
	wei, ok := values[0].(*big.Int)
	if !ok {
		return "", s.fail(msg, fmt.Errorf("unexpected %s output type %T", method, values[0]), nil)
	}
	return FormatEther(wei), nil
}

func (s *ChainServiceImpl) GetVotingPower(ctx context.Context, address string) (string, error) {
	return s.readEther(ctx, contracts.ForgeToken, "getVotes", address, "Failed to retrieve voting power")
}

func (s *ChainServiceImpl) GetForgeTokenBalance(ctx context.Context, address string) (string, error) {
	return s.readEther(ctx, contracts.ForgeToken, "balanceOf", address, "Failed to retrieve FORGE token balance")
}

// DAO operations

func (s *ChainServiceImpl) CreateDAOProposal(ctx context.Context, p models.ProposalInput) (*models.TxResult, error) {
	targets := make([]common.Address, 0, len(p.Targets))
	for _, t := range p.Targets {
		targets = append(targets, common.HexToAddress(t))
	}

	receipt, err := s.submitTransaction(ctx, contracts.IdeaForgeDAO, "proposeWithMetadata", nil,
		targets, p.Values, p.Calldatas, p.Description, p.ProposalType, p.Title, p.ExternalLink)
	if err != nil {
		return nil, s.fail("Failed to create DAO proposal", err, logrus.Fields{"title": p.Title, "type": p.ProposalType})
	}

	id, found := s.eventID(receipt, contracts.IdeaForgeDAO, contracts.EventProposalCreated, "proposalId")
	if !found {
		s.log.WithField("tx", receipt.TxHash.Hex()).Warn("ProposalCreated event not found in receipt")
	}
	return txResult(receipt, id, found), nil
}

func (s *ChainServiceImpl) VoteOnProposal(ctx context.Context, proposalID *big.Int, support uint8) (string, error) {
	receipt, err := s.submitTransaction(ctx, contracts.IdeaForgeDAO, "castVote", nil, proposalID, support)
	if err != nil {
		return "", s.fail("Failed to vote on DAO proposal", err, logrus.Fields{"proposalId": proposalID.String(), "support": support})
	}
	return receipt.TxHash.Hex(), nil
}

func (s *ChainServiceImpl) GetProposalState(ctx context.Context, proposalID *big.Int) (uint8, error) {
	const msg = "Failed to retrieve proposal state"
	values, err := s.callUnpack(ctx, contracts.IdeaForgeDAO, "state", proposalID)
	if err != nil {
		return 0, s.fail(msg, err, logrus.Fields{"proposalId": proposalID.String()})
	}
	state, ok := values[0].(uint8)
	if !ok {
		return 0, s.fail(msg, fmt.Errorf("unexpected state output type %T", values[0]), nil)
	}
	return state, nil
}

// Revenue operations

func (s *ChainServiceImpl) GetCreatorEarnings(ctx context.Context, address string) (string, error) {
	return s.readEther(ctx, contracts.RevenueSplitter, "getCreatorEarnings", address, "Failed to retrieve creator earnings")
}

func (s *ChainServiceImpl) ClaimCreatorEarnings(ctx context.Context, amount string) (string, error) {
	const msg = "Failed to claim creator earnings"
	fields := logrus.Fields{"amount": amount}

	wei, err := ParseEther(amount)
	if err != nil {
		return "", s.fail(msg, err, fields)
	}
	receipt, err := s.submitTransaction(ctx, contracts.RevenueSplitter, "claimCreatorEarnings", nil, wei)
	if err != nil {
		return "", s.fail(msg, err, fields)
	}
	return receipt.TxHash.Hex(), nil
}

// Node queries

func (s *ChainServiceImpl) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	n, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, s.fail("Failed to retrieve current block number", err, nil)
	}
	return n, nil
}

func (s *ChainServiceImpl) GetTransactionReceipt(ctx context.Context, txHash string) (*models.TxReceipt, error) {
	hash := common.HexToHash(txHash)
	receipt, err := s.client.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, models.NotFoundError(fmt.Errorf("receipt for %s not found", hash.Hex()))
	}
	if err != nil {
		return nil, s.fail("Failed to retrieve transaction receipt", err, logrus.Fields{"tx": txHash})
	}

	view := &models.TxReceipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Status:      receipt.Status,
		GasUsed:     receipt.GasUsed,
		Logs:        len(receipt.Logs),
	}
	if receipt.ContractAddress != (common.Address{}) {
		view.ContractAddress = receipt.ContractAddress.Hex()
	}
	return view, nil
}
