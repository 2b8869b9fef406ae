package codec

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

func TestJSON_RoundTrip(t *testing.T) {
	w := domain.New([]domain.Item{
		{ProductID: "5", Name: "Silk Midi Skirt", Price: decimal.NewFromInt(149), OriginalPrice: decimal.NewNullDecimal(decimal.NewFromInt(199)), Image: "/s.jpg", Category: "women"},
		{ProductID: "2", Name: "Trousers", Price: decimal.RequireFromString("249.50"), Image: "/t.jpg", Category: "men"},
	})

	payload, err := JSON{}.Encode(w)
	require.NoError(t, err)
	restored, err := JSON{}.Decode(payload)
	require.NoError(t, err)

	require.Equal(t, 2, restored.Count())
	for i, item := range restored.Items() {
		want := w.Items()[i]
		assert.Equal(t, want.ProductID, item.ProductID)
		assert.Equal(t, want.Category, item.Category)
		assert.True(t, want.Price.Equal(item.Price))
		assert.Equal(t, want.OriginalPrice.Valid, item.OriginalPrice.Valid)
	}
}

func TestJSON_Versions(t *testing.T) {
	w, err := JSON{}.Decode([]byte(`{"state":{"items":[{"id":"1","name":"Coat","price":299,"image":"/c.jpg","category":"women"}]},"version":0}`))
	require.NoError(t, err)
	assert.True(t, w.Contains("1"))

	_, err = JSON{}.Decode([]byte(`{"version":2,"items":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
