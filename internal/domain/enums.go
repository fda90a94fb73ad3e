package domain

type PartyRole string

const (
	RoleNeeder   PartyRole = "needer"
	RoleProvider PartyRole = "provider"
)

// ValidPartyRoles is the canonical set of accepted role strings.
var ValidPartyRoles = map[string]bool{
	"needer": true, "provider": true,
}

type SmartjectStatus string

const (
	SmartjectOpen     SmartjectStatus = "open"
	SmartjectMatched  SmartjectStatus = "matched"
	SmartjectArchived SmartjectStatus = "archived"
)

type ProposalStatus string

const (
	ProposalDraft     ProposalStatus = "draft"
	ProposalSubmitted ProposalStatus = "submitted"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalWithdrawn ProposalStatus = "withdrawn"
)

type ContractStatus string

const (
	ContractPendingSignatures ContractStatus = "pending_signatures"
	ContractActive            ContractStatus = "active"
	ContractCompleted         ContractStatus = "completed"
	ContractCancelled         ContractStatus = "cancelled"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneInReview   MilestoneStatus = "submitted_for_review"
	MilestoneApproved   MilestoneStatus = "approved"
)

type MessageKind string

const (
	MessageComment      MessageKind = "comment"
	MessageCounterOffer MessageKind = "counter_offer"
)
