package handlers

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
	"github.com/ideaforge/backend/services"
)

var errProposalShape = errors.New("targets, values and calldatas must have the same length")

// proposalInput converts a bound request; the validator has already checked each element.
func proposalInput(req models.CreateProposalRequest) (models.ProposalInput, error) {
	if len(req.Targets) != len(req.Values) || len(req.Targets) != len(req.Calldatas) {
		return models.ProposalInput{}, models.ValidationError(errProposalShape)
	}

	in := models.ProposalInput{
		Targets:      req.Targets,
		Values:       make([]*big.Int, len(req.Values)),
		Calldatas:    make([][]byte, len(req.Calldatas)),
		Description:  req.Description,
		ProposalType: *req.ProposalType,
		Title:        req.Title,
		ExternalLink: req.ExternalLink,
	}
	for i, v := range req.Values {
		wei, err := services.ParseWei(v)
		if err != nil {
			return models.ProposalInput{}, models.ValidationError(err)
		}
		in.Values[i] = wei
	}
	for i, data := range req.Calldatas {
		b, err := hexutil.Decode(data)
		if err != nil {
			return models.ProposalInput{}, models.ValidationError(err)
		}
		in.Calldatas[i] = b
	}
	return in, nil
}

func (h *Handler) CreateProposal(c *gin.Context) {
	var req models.CreateProposalRequest
	if !h.bind(c, &req) {
		return
	}
	in, err := proposalInput(req)
	if err != nil {
		h.abort(c, err)
		return
	}

	res, err := h.chain.CreateDAOProposal(c.Request.Context(), in)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"proposalId": res.ID.String(), "txHash": res.TxHash})
}

func (h *Handler) Vote(c *gin.Context) {
	var req models.VoteRequest
	if !h.bind(c, &req) {
		return
	}

	txHash, err := h.chain.VoteOnProposal(c.Request.Context(), &req.ProposalID.Int, *req.Support)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"proposalId": req.ProposalID, "support": *req.Support, "txHash": txHash})
}

func (h *Handler) GetProposalState(c *gin.Context) {
	proposalID, ok := h.bigParam(c, "proposalId")
	if !ok {
		return
	}

	state, err := h.chain.GetProposalState(c.Request.Context(), proposalID)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"proposalId": proposalID.String(), "state": state})
}

func (h *Handler) GetVotingPower(c *gin.Context) {
	address, ok := h.pathParam(c, "address", "required,ethaddr")
	if !ok {
		return
	}

	power, err := h.chain.GetVotingPower(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"address": address, "votingPower": power})
}
