// Package models holds the server-side record document.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
)

// Record is a field record as the server stores it: the document the
// client sent, verbatim, plus the columns needed to index it. CreatedAt and
// UpdatedAt are Unix milliseconds rendered as decimal strings.
type Record struct {
	ID        string          `db:"id"`
	Data      json.RawMessage `db:"data"`
	CreatedAt string          `db:"created_at"`
	UpdatedAt string          `db:"updated_at"`
}

type envelope struct {
	ID        string      `json:"id"`
	CreatedAt json.Number `json:"createdAt"`
	UpdatedAt json.Number `json:"updatedAt"`
}

// ParseRecord validates that body is a JSON object with a non-empty id and
// builds the stored form. Missing timestamps default to now.
func ParseRecord(body []byte, now time.Time) (*Record, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRecord, err)
	}
	if env.ID == "" {
		return nil, fmt.Errorf("%w: missing id", common.ErrInvalidRecord)
	}

	nowMs := strconv.FormatInt(now.UnixMilli(), 10)
	r := &Record{
		ID:        env.ID,
		Data:      json.RawMessage(body),
		CreatedAt: orDefault(env.CreatedAt, nowMs),
		UpdatedAt: orDefault(env.UpdatedAt, nowMs),
	}
	return r, nil
}

func orDefault(n json.Number, def string) string {
	if n == "" {
		return def
	}
	if _, err := n.Int64(); err != nil {
		if f, ferr := n.Float64(); ferr == nil {
			return strconv.FormatInt(int64(f), 10)
		}
		return def
	}
	return n.String()
}
