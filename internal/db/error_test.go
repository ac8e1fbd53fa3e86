package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorClassification(t *testing.T) {
	writeConflict := &mongo.CommandError{Code: writeConflictCode, Name: "WriteConflict"}
	aborted := mongo.CommandError{Code: noSuchTransactionCode, Name: "NoSuchTransaction"}
	transient := mongo.CommandError{Code: 1, Labels: []string{transientTransactionLabel}}

	assert.True(t, IsWriteConflictError(writeConflict))
	assert.True(t, IsWriteConflictError(fmt.Errorf("wrapped: %w", writeConflict)))
	assert.False(t, IsWriteConflictError(aborted))
	assert.False(t, IsWriteConflictError(nil))

	assert.True(t, IsTransactionAbortedError(aborted))
	assert.False(t, IsTransactionAbortedError(writeConflict))

	assert.True(t, IsTransientTransactionError(transient))
	assert.False(t, IsTransientTransactionError(writeConflict))

	assert.True(t, shouldRetry(writeConflict))
	assert.True(t, shouldRetry(aborted))
	assert.True(t, shouldRetry(transient))
	assert.False(t, shouldRetry(fmt.Errorf("invalid amount")))
}

func TestTypedErrors(t *testing.T) {
	notFound := fmt.Errorf("peek: %w", &NotFoundError{Key: "3", Message: "missing"})
	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsDuplicateKeyError(notFound))
	assert.True(t, IsDuplicateKeyError(&DuplicateKeyError{Key: "1", Message: "dup"}))
	assert.True(t, IsInvalidPaginationTokenError(&InvalidPaginationTokenError{Message: "bad"}))
}
