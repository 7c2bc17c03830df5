package asset

import (
	internal "github.com/frahmantamala/asset-management/internal"
)

// Approval workflow statuses, used by deployments where departments submit
// assets for an admin decision.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Inventory workflow statuses, used by deployments where admins keep a
// direct catalog of physical inventory.
const (
	StatusAvailable   = "available"
	StatusInUse       = "in_use"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

var (
	ApprovalStatuses  = []string{StatusPending, StatusApproved, StatusRejected}
	InventoryStatuses = []string{StatusAvailable, StatusInUse, StatusMaintenance, StatusRetired}
)

type WorkflowKind string

const (
	WorkflowApproval  WorkflowKind = internal.WorkflowApproval
	WorkflowInventory WorkflowKind = internal.WorkflowInventory
)

// Workflow governs the status vocabulary and legal transitions for one
// deployment. A deployment runs exactly one workflow; the two vocabularies
// are never mixed within a store.
type Workflow struct {
	kind            WorkflowKind
	retiredTerminal bool
}

// NewWorkflow builds the deployment workflow. retiredTerminal hardens the
// inventory vocabulary so retired assets stop moving; the source system did
// not enforce this, so it stays configurable and defaults off.
func NewWorkflow(kind WorkflowKind, retiredTerminal bool) *Workflow {
	return &Workflow{kind: kind, retiredTerminal: retiredTerminal}
}

func (w *Workflow) Kind() WorkflowKind {
	return w.kind
}

func (w *Workflow) Statuses() []string {
	if w.kind == WorkflowApproval {
		return ApprovalStatuses
	}
	return InventoryStatuses
}

// Initial is the status a newly created asset receives when the caller
// leaves it to the workflow.
func (w *Workflow) Initial() string {
	if w.kind == WorkflowApproval {
		return StatusPending
	}
	return StatusAvailable
}

func (w *Workflow) IsValidStatus(status string) bool {
	for _, s := range w.Statuses() {
		if status == s {
			return true
		}
	}
	return false
}

// ValidateInitial checks the status submitted at creation time. Approval
// deployments always start pending; inventory deployments accept any valid
// status.
func (w *Workflow) ValidateInitial(status string) *internal.AppError {
	if !w.IsValidStatus(status) {
		return internal.NewInvalidEnumError("status", w.Statuses()...)
	}
	if w.kind == WorkflowApproval && status != StatusPending {
		return internal.NewInvalidTransitionError("(new)", status)
	}
	return nil
}

// CanTransition reports whether from -> to is a legal move. The approval
// graph is pending -> approved|rejected with both targets terminal. The
// inventory graph is intentionally permissive: it mirrors physical reality
// reported by an administrator, not a guarded business process.
func (w *Workflow) CanTransition(from, to string) bool {
	if !w.IsValidStatus(from) || !w.IsValidStatus(to) {
		return false
	}
	if w.kind == WorkflowApproval {
		return from == StatusPending && (to == StatusApproved || to == StatusRejected)
	}
	if w.retiredTerminal && from == StatusRetired && to != StatusRetired {
		return false
	}
	return true
}

// Transition applies a status change in place, refreshing UpdatedAt.
func (w *Workflow) Transition(a *Asset, to string) *internal.AppError {
	if !w.IsValidStatus(to) {
		return internal.NewInvalidEnumError("status", w.Statuses()...)
	}
	if !w.CanTransition(a.Status, to) {
		return internal.NewInvalidTransitionError(a.Status, to)
	}
	a.Status = to
	a.Touch()
	return nil
}
