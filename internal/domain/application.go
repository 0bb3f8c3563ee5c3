package domain

// Application states. Accepted and rejected are terminal; a rejected
// application cannot be resubmitted, a new one must be created.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a user's request for a slot in a fair's category. It is
// created pending and moves to accepted only when the allocation engine
// admits it.
type Application struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FairID      int    `json:"fair_id"`
	Category    string `json:"category"`
	State       string `json:"state"`
}
