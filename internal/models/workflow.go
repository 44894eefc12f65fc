package models

// WorkflowStatus is the state of a bilateral request/response workflow.
// PENDING transitions to ACCEPTED or REJECTED; both are terminal.
type WorkflowStatus string

const (
	StatusPending  WorkflowStatus = "PENDING"
	StatusAccepted WorkflowStatus = "ACCEPTED"
	StatusRejected WorkflowStatus = "REJECTED"
)

// WorkflowDecision is the receiver's answer to a pending workflow.
type WorkflowDecision string

const (
	DecisionAccept WorkflowDecision = "ACCEPT"
	DecisionReject WorkflowDecision = "REJECT"
)
