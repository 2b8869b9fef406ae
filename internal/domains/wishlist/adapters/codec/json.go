// Package codec encodes wishlist snapshots for the blob store.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

const SchemaVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported wishlist snapshot version")

type snapshotRecord struct {
	Version *int         `json:"version,omitempty"`
	Items   []itemRecord `json:"items"`
	State   *struct {
		Items []itemRecord `json:"items"`
	} `json:"state,omitempty"`
}

type itemRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Price         json.Number  `json:"price"`
	OriginalPrice *json.Number `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
	Category      string       `json:"category"`
}

// JSON is the wishlist snapshot codec. It shares the cart's layout rules.
type JSON struct{}

func (JSON) Encode(w domain.Wishlist) ([]byte, error) {
	version := SchemaVersion
	record := snapshotRecord{Version: &version, Items: make([]itemRecord, 0, w.Count())}
	for _, item := range w.Items() {
		r := itemRecord{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    json.Number(item.Price.String()),
			Image:    item.Image,
			Category: item.Category,
		}
		if item.OriginalPrice.Valid {
			original := json.Number(item.OriginalPrice.Decimal.String())
			r.OriginalPrice = &original
		}
		record.Items = append(record.Items, r)
	}
	return json.Marshal(record)
}

func (JSON) Decode(payload []byte) (domain.Wishlist, error) {
	var record snapshotRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Wishlist{}, err
	}
	records := record.Items
	switch {
	case record.State != nil:
		records = record.State.Items
	case record.Version == nil || *record.Version == SchemaVersion:
	default:
		return domain.Wishlist{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *record.Version)
	}

	items := make([]domain.Item, 0, len(records))
	for _, r := range records {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return domain.Wishlist{}, fmt.Errorf("item %s: price: %w", r.ID, err)
		}
		item := domain.Item{ProductID: r.ID, Name: r.Name, Price: price, Image: r.Image, Category: r.Category}
		if r.OriginalPrice != nil {
			original, err := decimal.NewFromString(r.OriginalPrice.String())
			if err != nil {
				return domain.Wishlist{}, fmt.Errorf("item %s: originalPrice: %w", r.ID, err)
			}
			item.OriginalPrice = decimal.NewNullDecimal(original)
		}
		items = append(items, item)
	}
	return domain.New(items), nil
}

var _ statestore.Codec[domain.Wishlist] = JSON{}
