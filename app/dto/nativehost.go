package dto

// Wire messages exchanged with the browser extension over the native
// messaging channel. Field names follow the extension's camelCase.

type HostIncoming struct {
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

const (
	HostMsgActivity           = "activity"
	HostMsgRequestState       = "request_state"
	HostMsgUseDistractionTime = "use_distraction_time"
)

type HostStateReply struct {
	Type            string   `json:"type"` // "state"
	FocusActive     bool     `json:"focusActive"`
	BudgetRemaining int      `json:"budgetRemaining"`
	BlockedDomains  []string `json:"blockedDomains"`
}

type HostBudgetReply struct {
	Type      string `json:"type"` // "budget_updated"
	Remaining int    `json:"remaining"`
}

type HostBlockedReply struct {
	Type string `json:"type"` // "hard_blocked"
}
