// Package access holds the capability checks evaluated before any
// workflow operation runs. The rules are pure functions over the
// acting user and the record being touched, so they can be tested
// without a store.
package access

import "sainath-backend/internal/domain"

// RequireApproved gates every workflow operation. Pending accounts can
// authenticate but cannot act.
func RequireApproved(actor *domain.User) error {
	if actor == nil {
		return domain.ErrPermissionDenied
	}
	if !actor.IsApproved() {
		return domain.ErrAccountPending
	}
	return nil
}

// CanManageInventory covers event creation, item creation and all
// stock mutations outside order verification.
func CanManageInventory(actor *domain.User) bool {
	return actor != nil && actor.IsHost()
}

// CanVerify covers order and expense verification and order rejection.
func CanVerify(actor *domain.User) bool {
	return actor != nil && actor.IsHost()
}

// CanRecordConsumption covers the host-side direct sale entry.
func CanRecordConsumption(actor *domain.User) bool {
	return actor != nil && actor.IsHost()
}

// CanApproveMembers covers the pending-member approval workflow.
func CanApproveMembers(actor *domain.User) bool {
	return actor != nil && actor.IsHost()
}

// CanEditOrder allows the owning member to modify their own order.
// Editing a verified order is permitted; the workflow engine resets it
// to unverified so the host re-checks the changed quantity.
func CanEditOrder(actor *domain.User, order *domain.Order) bool {
	return actor != nil && order != nil && actor.ID == order.MemberID
}

// CanDeleteOrder mirrors CanEditOrder ownership. Deleting a verified
// order is blocked by the workflow engine so that the caller gets a
// precise error.
func CanDeleteOrder(actor *domain.User, order *domain.Order) bool {
	return actor != nil && order != nil && actor.ID == order.MemberID
}

// CanUpdatePayment allows the host, or the owning member, to change an
// order's payment status at any verification state.
func CanUpdatePayment(actor *domain.User, order *domain.Order) bool {
	if actor == nil || order == nil {
		return false
	}
	return actor.IsHost() || actor.ID == order.MemberID
}

// CanReadOrder: the host sees every order, a member sees only their own.
func CanReadOrder(actor *domain.User, order *domain.Order) bool {
	if actor == nil || order == nil {
		return false
	}
	return actor.IsHost() || actor.ID == order.MemberID
}

// CanModifyExpense allows the host, or the member who logged the
// expense, to edit or delete it.
func CanModifyExpense(actor *domain.User, expense *domain.Expense) bool {
	if actor == nil || expense == nil {
		return false
	}
	return actor.IsHost() || actor.ID == expense.AddedByID
}

// CanModifyNote allows only the owning member (or the host) to edit or
// delete a note.
func CanModifyNote(actor *domain.User, note *domain.Note) bool {
	if actor == nil || note == nil {
		return false
	}
	return actor.IsHost() || actor.ID == note.MemberID
}

// CanDeleteFile allows the uploader or the host to remove a stored
// document.
func CanDeleteFile(actor *domain.User, file *domain.StoredFile) bool {
	if actor == nil || file == nil {
		return false
	}
	return actor.IsHost() || actor.ID == file.UploadedByID
}

// IsAutoVerified is the expense-creation policy: host expenses are
// trusted and verified on creation, member expenses start pending.
func IsAutoVerified(role domain.Role) bool {
	return role == domain.RoleHost
}
