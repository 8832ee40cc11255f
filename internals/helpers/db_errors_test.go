package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyTranslatedSentinel(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create test: %w", gorm.ErrDuplicatedKey)))
}

func TestIsDuplicateKeyRawDriverMessage(t *testing.T) {
	// Without TranslateError the driver error surfaces as-is; the message
	// check must still catch it.
	raw := errors.New(`ERROR: duplicate key value violates unique constraint "uq_tests_code" (SQLSTATE 23505)`)
	assert.True(t, IsDuplicateKey(raw))

	assert.True(t, IsDuplicateKey(errors.New("exec failed (SQLSTATE 23505)")))
}

func TestIsDuplicateKeyUnrelatedErrors(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
}
