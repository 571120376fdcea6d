package qr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"dinesync/internal/domain"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidPayload = errors.New("qr payload must carry restaurantId and tableId")

// Decode parses a scanned QR payload into a table binding. Accepted shapes:
// a URL (absolute or path-only) with restaurantId and tableId query
// parameters, or a JSON object with those two fields.
func Decode(payload string) (domain.TableBinding, error) {
	payload = strings.TrimSpace(payload)

	if strings.Contains(payload, "restaurantId") && strings.Contains(payload, "tableId") && !strings.HasPrefix(payload, "{") {
		raw := payload
		if !strings.HasPrefix(raw, "http") {
			raw = "http://qr.local" + raw
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			return domain.TableBinding{}, ErrInvalidPayload
		}
		binding := domain.TableBinding{
			RestaurantID: parsed.Query().Get("restaurantId"),
			TableID:      parsed.Query().Get("tableId"),
		}
		if binding.RestaurantID == "" || binding.TableID == "" {
			return domain.TableBinding{}, ErrInvalidPayload
		}
		return binding, nil
	}

	var binding domain.TableBinding
	if err := json.Unmarshal([]byte(payload), &binding); err != nil {
		return domain.TableBinding{}, ErrInvalidPayload
	}
	if binding.RestaurantID == "" || binding.TableID == "" {
		return domain.TableBinding{}, ErrInvalidPayload
	}
	return binding, nil
}

type Generator interface {
	Generate(restaurantID, tableID string) ([]byte, error)
}

type DefaultGenerator struct {
	BaseURL string
}

func (g DefaultGenerator) Generate(restaurantID, tableID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/menu?restaurantId=%s&tableId=%s",
		g.BaseURL, url.QueryEscape(restaurantID), url.QueryEscape(tableID))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
