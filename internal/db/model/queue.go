package model

import (
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// UnstakeQueueCursorID is the id of the cursor document of the unstake queue.
const UnstakeQueueCursorID = "unstake_queue"

// UnstakeRequestDocument is a queued request keyed by its sequence number.
type UnstakeRequestDocument struct {
	Seq         uint64 `bson:"_id"`
	Account     string `bson:"account"`
	Amount      string `bson:"amount"`
	RequestedAt int64  `bson:"requested_at"`
}

// QueueCursorDocument tracks the queue bounds. Head is the sequence number of
// the oldest unsettled request and Tail the last one assigned, the queue is
// empty when Tail < Head.
type QueueCursorDocument struct {
	ID   string `bson:"_id"`
	Head uint64 `bson:"head"`
	Tail uint64 `bson:"tail"`
}

func (c *QueueCursorDocument) Length() uint64 {
	if c.Tail < c.Head {
		return 0
	}
	return c.Tail - c.Head + 1
}

func NewUnstakeRequestDocument(request vault.UnstakeRequest) *UnstakeRequestDocument {
	return &UnstakeRequestDocument{
		Seq:         request.Seq,
		Account:     request.Account.String(),
		Amount:      encodeAmount(request.Amount),
		RequestedAt: request.RequestedAt.UnixMilli(),
	}
}

func (d *UnstakeRequestDocument) ToUnstakeRequest() (*vault.UnstakeRequest, error) {
	amount, err := decodeAmount("amount", d.Amount)
	if err != nil {
		return nil, err
	}
	return &vault.UnstakeRequest{
		Seq:         d.Seq,
		Account:     vault.Account(d.Account),
		Amount:      amount,
		RequestedAt: unixMilli(d.RequestedAt),
	}, nil
}
