// Package receipt describes committed ledger work: one Receipt per successful
// invocation, holding the actions that ran inside it.
package receipt

import (
	"time"

	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/types"
)

// ActionName names a ledger operation.
type ActionName string

const (
	ActionCreate       ActionName = "create"
	ActionIssue        ActionName = "issue"
	ActionRetire       ActionName = "retire"
	ActionTransfer     ActionName = "transfer"
	ActionOpen         ActionName = "open"
	ActionClose        ActionName = "close"
	ActionApprove      ActionName = "approve"
	ActionTransferFrom ActionName = "transferfrom"
)

// Action records one executed operation. Fields that do not apply to the
// operation are left empty.
type Action struct {
	ID id.ActionID `json:"id"`

	Name ActionName `json:"name"`

	// Authorizer is the account whose authority the action required.
	Authorizer types.Name `json:"authorizer"`

	// Inline is set for actions dispatched by another action, such as the
	// transfer that forwards freshly issued tokens.
	Inline bool `json:"inline,omitempty"`

	From     types.Name  `json:"from,omitempty"`
	To       types.Name  `json:"to,omitempty"`
	Owner    types.Name  `json:"owner,omitempty"`
	Spender  types.Name  `json:"spender,omitempty"`
	Issuer   types.Name  `json:"issuer,omitempty"`
	Payer    types.Name  `json:"payer,omitempty"`
	Quantity types.Asset `json:"quantity"`
	Memo     string      `json:"memo,omitempty"`

	// Recipients are the accounts notified of this action, in order.
	Recipients []types.Name `json:"recipients,omitempty"`
}

// Notify adds account to the recipients unless already present.
func (a *Action) Notify(account types.Name) {
	for _, r := range a.Recipients {
		if r == account {
			return
		}
	}
	a.Recipients = append(a.Recipients, account)
}

// Receipt is the record of one committed invocation.
type Receipt struct {
	ID          id.ReceiptID `json:"id"`
	Actions     []*Action    `json:"actions"`
	Changes     int          `json:"changes"`
	CommittedAt time.Time    `json:"committed_at"`
}

// Root returns the action the caller invoked.
func (r *Receipt) Root() *Action {
	if len(r.Actions) == 0 {
		return nil
	}
	return r.Actions[0]
}
