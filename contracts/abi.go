// Package contracts holds the ABI of every deployed IdeaForge contract the backend talks to.
package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Name identifies one logical contract of the suite.
type Name string

const (
	ForgeToken      Name = "ForgeToken"
	IPNFT           Name = "IPNFT"
	IdeaForgeCore   Name = "IdeaForgeCore"
	IdeaForgeDAO    Name = "IdeaForgeDAO"
	RevenueSplitter Name = "RevenueSplitter"
)

// Event names decoded from receipts.
const (
	EventIdeaSubmitted   = "IdeaSubmitted"
	EventIPNFTMinted     = "IPNFTMinted"
	EventProposalCreated = "ProposalCreated"
)

const forgeTokenABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getVotes","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"unstake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claimRewards","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

const ipnftABI = `[
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"getIPData","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[
		{"name":"creator","type":"address"},
		{"name":"creationTime","type":"uint256"},
		{"name":"aiScore","type":"uint256"},
		{"name":"category","type":"string"},
		{"name":"description","type":"string"},
		{"name":"isLicensed","type":"bool"},
		{"name":"licensePrice","type":"uint256"}
	]},
	{"type":"function","name":"getCreatorTokens","stateMutability":"view","inputs":[{"name":"creator","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"licenseIP","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"royaltyInfo","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"salePrice","type":"uint256"}],"outputs":[{"name":"receiver","type":"address"},{"name":"royaltyAmount","type":"uint256"}]}
]`

const ideaForgeCoreABI = `[
	{"type":"function","name":"submitIdea","stateMutability":"payable","inputs":[
		{"name":"title","type":"string"},
		{"name":"description","type":"string"},
		{"name":"category","type":"string"},
		{"name":"contentHash","type":"string"},
		{"name":"metadataHash","type":"string"}
	],"outputs":[]},
	{"type":"function","name":"approveIdea","stateMutability":"nonpayable","inputs":[
		{"name":"ideaId","type":"uint256"},
		{"name":"aiCredibilityScore","type":"uint256"},
		{"name":"validationNotes","type":"string"}
	],"outputs":[]},
	{"type":"function","name":"mintIPNFT","stateMutability":"nonpayable","inputs":[
		{"name":"ideaId","type":"uint256"},
		{"name":"tokenURI","type":"string"},
		{"name":"royaltyFee","type":"uint96"}
	],"outputs":[]},
	{"type":"function","name":"getIdeaSubmission","stateMutability":"view","inputs":[{"name":"ideaId","type":"uint256"}],"outputs":[
		{"name":"","type":"tuple","internalType":"struct IdeaForgeCore.IdeaSubmission","components":[
			{"name":"ideaId","type":"uint256"},
			{"name":"submitter","type":"address"},
			{"name":"title","type":"string"},
			{"name":"description","type":"string"},
			{"name":"category","type":"string"},
			{"name":"contentHash","type":"string"},
			{"name":"metadataHash","type":"string"},
			{"name":"submissionTime","type":"uint256"},
			{"name":"aiCredibilityScore","type":"uint256"},
			{"name":"isApproved","type":"bool"},
			{"name":"isMinted","type":"bool"},
			{"name":"validator","type":"address"},
			{"name":"validationNotes","type":"string"},
			{"name":"mintedTokenId","type":"uint256"}
		]}
	]},
	{"type":"function","name":"getUserSubmissions","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"event","name":"IdeaSubmitted","anonymous":false,"inputs":[
		{"name":"ideaId","type":"uint256","indexed":true},
		{"name":"submitter","type":"address","indexed":true},
		{"name":"title","type":"string","indexed":false},
		{"name":"category","type":"string","indexed":false},
		{"name":"contentHash","type":"string","indexed":false}
	]},
	{"type":"event","name":"IPNFTMinted","anonymous":false,"inputs":[
		{"name":"ideaId","type":"uint256","indexed":true},
		{"name":"tokenId","type":"uint256","indexed":true},
		{"name":"creator","type":"address","indexed":true}
	]}
]`

const ideaForgeDAOABI = `[
	{"type":"function","name":"proposeWithMetadata","stateMutability":"nonpayable","inputs":[
		{"name":"targets","type":"address[]"},
		{"name":"values","type":"uint256[]"},
		{"name":"calldatas","type":"bytes[]"},
		{"name":"description","type":"string"},
		{"name":"proposalType","type":"uint8"},
		{"name":"title","type":"string"},
		{"name":"externalLink","type":"string"}
	],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"castVote","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"},{"name":"support","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"state","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[
		{"name":"proposalId","type":"uint256","indexed":true},
		{"name":"proposer","type":"address","indexed":true},
		{"name":"proposalType","type":"uint8","indexed":false},
		{"name":"title","type":"string","indexed":false}
	]}
]`

const revenueSplitterABI = `[
	{"type":"function","name":"getCreatorEarnings","stateMutability":"view","inputs":[{"name":"creator","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"claimCreatorEarnings","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]}
]`

var sources = map[Name]string{
	ForgeToken:      forgeTokenABI,
	IPNFT:           ipnftABI,
	IdeaForgeCore:   ideaForgeCoreABI,
	IdeaForgeDAO:    ideaForgeDAOABI,
	RevenueSplitter: revenueSplitterABI,
}

// All lists every contract in the suite.
var All = []Name{ForgeToken, IPNFT, IdeaForgeCore, IdeaForgeDAO, RevenueSplitter}

// Registry maps each contract to its parsed ABI.
type Registry map[Name]*abi.ABI

// Load parses every embedded ABI.
func Load() (Registry, error) {
	reg := make(Registry, len(sources))
	for _, name := range All {
		parsed, err := abi.JSON(strings.NewReader(sources[name]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s ABI: %w", name, err)
		}
		reg[name] = &parsed
	}
	return reg, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() Registry {
	reg, err := Load()
	if err != nil {
		panic(err)
	}
	return reg
}
