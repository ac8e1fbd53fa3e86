package clients

import (
	"github.com/babylonchain/staking-vault-service/internal/clients/node"
	"github.com/babylonchain/staking-vault-service/internal/config"
)

type Clients struct {
	Node *node.NodeClient
}

func New(cfg *config.Config) *Clients {
	nodeClient := node.NewNodeClient(&cfg.Node)

	return &Clients{
		Node: nodeClient,
	}
}
