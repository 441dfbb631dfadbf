package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

func TestAllowanceModelRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := &allowance.Allowance{
		Entity:   types.NewEntity(now),
		Owner:    "alice",
		Spender:  "bob",
		Quantity: types.MustAsset("1.25 TKN"),
		Payer:    "alice",
	}

	raw, err := bson.Marshal(toAllowanceModel(a))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ID struct {
			Owner   string `bson:"owner"`
			Spender string `bson:"spender"`
			Code    string `bson:"code"`
		} `bson:"_id"`
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID.Owner != "alice" || doc.ID.Spender != "bob" || doc.ID.Code != "TKN" {
		t.Errorf("unexpected _id: %+v", doc.ID)
	}

	var m allowanceModel
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	got := fromAllowanceModel(&m)
	if got.Key() != a.Key() || got.Quantity != a.Quantity || got.Payer != a.Payer {
		t.Errorf("round trip: got %+v, want %+v", got, a)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at: got %v", got.CreatedAt)
	}
}

func TestModelsOmitBaseModel(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tkn := types.MustAsset("1.00 TKN")
	models := map[string]any{
		"stat": toStatModel(&currency.Stat{
			Entity: types.NewEntity(now), Supply: tkn, MaxSupply: tkn, Issuer: "alice", Payer: "alice",
		}),
		"balance": toBalanceModel(&balance.Balance{
			Entity: types.NewEntity(now), Owner: "bob", Balance: tkn, Payer: "alice",
		}),
		"allowance": toAllowanceModel(&allowance.Allowance{
			Entity: types.NewEntity(now), Owner: "alice", Spender: "bob", Quantity: tkn, Payer: "alice",
		}),
	}

	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(m)
			if err != nil {
				t.Fatal(err)
			}
			var doc bson.M
			if err := bson.Unmarshal(raw, &doc); err != nil {
				t.Fatal(err)
			}
			if _, ok := doc["basemodel"]; ok {
				t.Errorf("document carries basemodel: %v", doc)
			}
			if _, ok := doc["_id"]; !ok {
				t.Errorf("document has no _id: %v", doc)
			}
		})
	}
}
