// Package codec encodes cart snapshots for the blob store.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

// SchemaVersion is the layout version written by Encode.
const SchemaVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported cart snapshot version")

type snapshotRecord struct {
	Version *int          `json:"version,omitempty"`
	Items   []lineRecord  `json:"items"`
	State   *legacyRecord `json:"state,omitempty"`
}

// legacyRecord is the browser layout: {"state":{"items":[...]},"version":0}.
type legacyRecord struct {
	Items []lineRecord `json:"items"`
}

type lineRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Price         json.Number  `json:"price"`
	OriginalPrice *json.Number `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
	Size          string       `json:"size"`
	Color         string       `json:"color"`
	Quantity      int          `json:"quantity"`
}

// JSON is the cart snapshot codec.
type JSON struct{}

func (JSON) Encode(cart domain.Cart) ([]byte, error) {
	version := SchemaVersion
	record := snapshotRecord{Version: &version, Items: make([]lineRecord, 0, cart.Len())}
	for _, item := range cart.Items() {
		line := lineRecord{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    json.Number(item.Price.String()),
			Image:    item.Image,
			Size:     item.Size,
			Color:    item.Color,
			Quantity: item.Quantity,
		}
		if item.OriginalPrice.Valid {
			original := json.Number(item.OriginalPrice.Decimal.String())
			line.OriginalPrice = &original
		}
		record.Items = append(record.Items, line)
	}
	return json.Marshal(record)
}

func (JSON) Decode(payload []byte) (domain.Cart, error) {
	var record snapshotRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Cart{}, err
	}
	lines := record.Items
	switch {
	case record.State != nil:
		lines = record.State.Items
	case record.Version == nil || *record.Version == SchemaVersion:
	default:
		return domain.Cart{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *record.Version)
	}

	items := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		price, err := decimal.NewFromString(line.Price.String())
		if err != nil {
			return domain.Cart{}, fmt.Errorf("line %s: price: %w", line.ID, err)
		}
		item := domain.LineItem{
			ProductID: line.ID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     price,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		}
		if line.OriginalPrice != nil {
			original, err := decimal.NewFromString(line.OriginalPrice.String())
			if err != nil {
				return domain.Cart{}, fmt.Errorf("line %s: originalPrice: %w", line.ID, err)
			}
			item.OriginalPrice = decimal.NewNullDecimal(original)
		}
		items = append(items, item)
	}
	return domain.New(items), nil
}

var _ statestore.Codec[domain.Cart] = JSON{}
