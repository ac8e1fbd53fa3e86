package model

type BalanceDocument struct {
	Account   string `bson:"_id"`
	Balance   string `bson:"balance"`
	UpdatedAt int64  `bson:"updated_at"`
}
