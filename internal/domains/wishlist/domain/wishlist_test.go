package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saved(id string) Item {
	return Item{ProductID: id, Name: "Item " + id, Price: decimal.NewFromInt(10), Category: "women"}
}

func TestAdd_IsIdempotent(t *testing.T) {
	var w Wishlist
	w, err := w.Add(saved("1"))
	require.NoError(t, err)
	changed := saved("1")
	changed.Name = "renamed"
	w, err = w.Add(changed)
	require.NoError(t, err)

	require.Equal(t, 1, w.Count())
	item, ok := w.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Item 1", item.Name)

	_, err = w.Add(Item{})
	assert.ErrorIs(t, err, ErrMissingProduct)
}

func TestRemove_KeepsOrderAndIsIdempotent(t *testing.T) {
	w := New([]Item{saved("1"), saved("2"), saved("3")})
	once := w.Remove("2")
	twice := once.Remove("2")

	assert.Equal(t, once.Items(), twice.Items())
	assert.Equal(t, []string{"1", "3"}, ids(twice))
	assert.Equal(t, 3, w.Count())
}

func TestToggle(t *testing.T) {
	var w Wishlist
	w, added, err := w.Toggle(saved("5"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, w.Contains("5"))

	w, added, err = w.Toggle(saved("5"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, w.Contains("5"))
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	w := New([]Item{saved("1"), saved("2"), saved("1"), {}})
	assert.Equal(t, []string{"1", "2"}, ids(w))
	assert.Zero(t, w.Clear().Count())
}

func ids(w Wishlist) []string {
	var out []string
	for _, item := range w.Items() {
		out = append(out, item.ProductID)
	}
	return out
}
