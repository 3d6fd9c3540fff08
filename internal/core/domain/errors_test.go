package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrFrozen", ErrFrozen},
		{"ErrCompilerUnavailable", ErrCompilerUnavailable},
		{"ErrConfigNotFound", ErrConfigNotFound},
		{"ErrConfigParentMissing", ErrConfigParentMissing},
		{"ErrConfigCycle", ErrConfigCycle},
		{"ErrUnknownDataSource", ErrUnknownDataSource},
		{"ErrNotActivated", ErrNotActivated},
		{"ErrDuplicateIdentifier", ErrDuplicateIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestConfigCycleError(t *testing.T) {
	err := &ConfigCycleError{Path: "/site/a.yaml", Chain: []string{"/site/a.yaml", "/site/b.yaml"}}

	assert.ErrorIs(t, err, ErrConfigCycle)
	assert.NotErrorIs(t, err, ErrConfigParentMissing)
	assert.Equal(t, "parent configuration cycle: /site/a.yaml -> /site/b.yaml -> /site/a.yaml", err.Error())
}

func TestConfigParentMissingError(t *testing.T) {
	err := &ConfigParentMissingError{Path: "/site/base.yaml", Referrer: "/site/folio.yaml"}

	assert.ErrorIs(t, err, ErrConfigParentMissing)
	assert.Contains(t, err.Error(), "/site/base.yaml")
	assert.Contains(t, err.Error(), "/site/folio.yaml")
}

func TestUnknownDataSourceError(t *testing.T) {
	err := &UnknownDataSourceError{Type: "ftp"}

	assert.ErrorIs(t, err, ErrUnknownDataSource)
	assert.Equal(t, `unknown data source type "ftp"`, err.Error())
}

func TestDuplicateIdentifierError(t *testing.T) {
	err := &DuplicateIdentifierError{Identifier: "/about/", Kind: KindItem}

	assert.ErrorIs(t, err, ErrDuplicateIdentifier)
	assert.Equal(t, "there are multiple items with the /about/ identifier", err.Error())

	t.Run("survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("load: %w", err)

		var dup *DuplicateIdentifierError
		assert.True(t, errors.As(wrapped, &dup))
		assert.Equal(t, Identifier("/about/"), dup.Identifier)
		assert.Equal(t, KindItem, dup.Kind)
	})
}
