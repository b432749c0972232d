package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/mock"
)

func TestSettingsService(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsWhenUnsaved", func(t *testing.T) {
		svc := NewSettingsService(mock.NewSettingsStore(), testLogger())

		items, err := svc.GetList(ctx, safetyhub.ListCategories)
		require.NoError(t, err)
		assert.Equal(t, safetyhub.DefaultList(safetyhub.ListCategories), items)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		svc := NewSettingsService(mock.NewSettingsStore(), testLogger())

		want := []string{"生產線 C", "包裝部"}
		require.NoError(t, svc.PutList(ctx, safetyhub.ListLocations, want))

		items, err := svc.GetList(ctx, safetyhub.ListLocations)
		require.NoError(t, err)
		assert.Equal(t, want, items, "order preserved, first entry is the default pick")
	})

	t.Run("BlankEntriesDropped", func(t *testing.T) {
		svc := NewSettingsService(mock.NewSettingsStore(), testLogger())

		require.NoError(t, svc.PutList(ctx, safetyhub.ListInspectors, []string{" 陳大文 ", "", "   "}))

		items, err := svc.GetList(ctx, safetyhub.ListInspectors)
		require.NoError(t, err)
		assert.Equal(t, []string{"陳大文"}, items)
	})

	t.Run("EmptyListRejected", func(t *testing.T) {
		svc := NewSettingsService(mock.NewSettingsStore(), testLogger())

		err := svc.PutList(ctx, safetyhub.ListInspectors, []string{"", "  "})
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(err))
	})

	t.Run("UnknownKind", func(t *testing.T) {
		svc := NewSettingsService(mock.NewSettingsStore(), testLogger())

		_, err := svc.GetList(ctx, safetyhub.ListKind("colors"))
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(err))

		err = svc.PutList(ctx, safetyhub.ListKind("colors"), []string{"red"})
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(err))
	})
}
