package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeFileNotFound, CategoryIO, SeverityError},
		{ErrCodeStoreOpen, CategoryStore, SeverityFatal},
		{ErrCodeUnsupportedPlatform, CategoryPlatform, SeverityWarning},
		{ErrCodeBookmarkParse, CategoryParse, SeverityWarning},
		{ErrCodeLockHeld, CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		err := New(tt.code, "boom", nil)
		assert.Equal(t, tt.category, err.Category, "category of %s", tt.code)
		assert.Equal(t, tt.severity, err.Severity, "severity of %s", tt.code)
	}
}

func TestErrorStringIncludesCode(t *testing.T) {
	err := StoreError("query failed", nil)
	assert.Equal(t, "[ERR_303_STORE_QUERY] query failed", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := Wrap(ErrCodeStoreWrite, cause)
	require.NotNil(t, err)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "disk gone", err.Message)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeStoreWrite, nil))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(ErrCodeProfileNotFound, "no chrome profile", nil)
	target := New(ErrCodeProfileNotFound, "", nil)

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeStoreOpen, "", nil)))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeStoreSchema, "bad schema", nil)))
	assert.False(t, IsFatal(New(ErrCodeHistoryParse, "bad row", nil)))
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := PlatformError("safari requires macOS").WithDetail("browser", "safari")
	assert.Equal(t, "safari", err.Details["browser"])
	assert.Equal(t, ErrCodeUnsupportedPlatform, GetCode(err))
	assert.Equal(t, CategoryPlatform, GetCategory(err))
}
