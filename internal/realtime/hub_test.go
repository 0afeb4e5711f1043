package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stitch-backend/internal/models"
)

func TestClientMatchesNoSubscriptions(t *testing.T) {
	c := &client{}
	assert.True(t, c.matches(Change{EventType: EventInsert, Table: "orders"}))
}

func TestClientMatchesTable(t *testing.T) {
	c := &client{subs: []subscription{{Table: "orders"}}}
	assert.True(t, c.matches(Change{EventType: EventUpdate, Table: "orders"}))
	assert.False(t, c.matches(Change{EventType: EventUpdate, Table: "quotes"}))
}

func TestClientMatchesFilter(t *testing.T) {
	c := &client{subs: []subscription{{Table: "orders", FilterCol: "buyer_id", FilterValue: "7"}}}

	mine := &models.Order{ID: 1, BuyerID: 7, Status: "sewing"}
	theirs := &models.Order{ID: 2, BuyerID: 9, Status: "cutting"}

	assert.True(t, c.matches(Change{EventType: EventUpdate, Table: "orders", New: mine}))
	assert.False(t, c.matches(Change{EventType: EventUpdate, Table: "orders", New: theirs}))
}

func TestClientMatchesOldRowOnDelete(t *testing.T) {
	c := &client{subs: []subscription{{Table: "quotes", FilterCol: "status", FilterValue: "pending"}}}
	old := &models.Quote{ID: 3, Status: "pending"}
	assert.True(t, c.matches(Change{EventType: EventDelete, Table: "quotes", Old: old}))
	assert.False(t, c.matches(Change{EventType: EventDelete, Table: "quotes"}))
}

func TestRowMatchesStringAndNumber(t *testing.T) {
	row := map[string]interface{}{"buyer_id": 7, "status": "sewing"}
	assert.True(t, rowMatches(row, "buyer_id", "7"))
	assert.True(t, rowMatches(row, "status", "sewing"))
	assert.False(t, rowMatches(row, "status", "cutting"))
	assert.False(t, rowMatches(row, "missing", "x"))
	assert.False(t, rowMatches(nil, "status", "sewing"))
}
