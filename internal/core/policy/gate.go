// Package policy is the authorization gate shared by every resource service.
//
// Decide is a pure function of the caller identity, the requested action and
// the ownership facts of the target record. It never touches a store; callers
// load the target first and describe it with a Target.
package policy

import (
	"fmt"

	"github.com/salon/booking-api/internal/core/domain"
)

// Action names an operation on a resource.
type Action string

const (
	BookingCreate  Action = "booking.create"
	BookingRead    Action = "booking.read"
	BookingListOwn Action = "booking.list_own"
	BookingListAll Action = "booking.list_all"
	BookingUpdate  Action = "booking.update"
	BookingCancel  Action = "booking.cancel"

	// BookingStatusChange covers status moves other than cancellation.
	BookingStatusChange Action = "booking.status_change"

	ReviewListPublic Action = "review.list_public"
	ReviewListAll    Action = "review.list_all"
	ReviewCreate     Action = "review.create"
	ReviewModerate   Action = "review.moderate"
	ReviewWithdraw   Action = "review.withdraw"

	FeedbackSubmit Action = "feedback.submit"
	FeedbackList   Action = "feedback.list"
	FeedbackUpdate Action = "feedback.update"

	ServiceRead   Action = "service.read"
	ServiceManage Action = "service.manage"

	ProfileRead       Action = "profile.read"
	UserRead          Action = "user.read"
	UserList          Action = "user.list"
	UserCreate        Action = "user.create"
	UserUpdateProfile Action = "user.update_profile"
	UserUpdateAccount Action = "user.update_account"
	UserDelete        Action = "user.delete"

	ScheduleRead   Action = "schedule.read"
	ScheduleManage Action = "schedule.manage"
)

// Reason explains a decision; it is safe to log and to expose.
type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonAdmin           Reason = "admin"
	ReasonOwner           Reason = "owner"
	ReasonAssignee        Reason = "assignee"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonAdminOnly       Reason = "admin_only"
	ReasonNotOwner        Reason = "not_owner"
	ReasonUnknownRole     Reason = "unknown_role"
	ReasonUnknownAction   Reason = "unknown_action"
)

// Target describes the record an action applies to. Nil fields mean the
// record has no such party (e.g. an anonymous booking has no owner).
type Target struct {
	OwnerID    *int64
	AssigneeID *int64
}

// Owner is a shorthand for a target owned by id.
func Owner(id int64) Target {
	return Target{OwnerID: &id}
}

func (t Target) ownedBy(userID int64) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

func (t Target) assignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Err converts a denial into the domain error the HTTP layer maps to a
// status code. It returns nil for allowed decisions.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	default:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
	}
}

func allow(r Reason) Decision { return Decision{Allowed: true, Reason: r} }
func deny(r Reason) Decision  { return Decision{Allowed: false, Reason: r} }

type rule func(caller *domain.Identity, target Target) Decision

var rules = map[Action]rule{
	BookingCreate:  anyone,
	BookingRead:    ownerAssigneeOrAdmin,
	BookingListOwn: authenticated,
	BookingListAll: adminOnly,
	BookingUpdate:  ownerOrAdmin,
	BookingCancel:  ownerOrAdmin,

	BookingStatusChange: assigneeOrAdmin,

	ReviewListPublic: anyone,
	ReviewListAll:    adminOnly,
	ReviewCreate:     authenticated,
	ReviewModerate:   adminOnly,
	ReviewWithdraw:   ownerOrAdmin,

	FeedbackSubmit: anyone,
	FeedbackList:   adminOnly,
	FeedbackUpdate: adminOnly,

	ServiceRead:   anyone,
	ServiceManage: adminOnly,

	ProfileRead:       authenticated,
	UserRead:          ownerOrAdmin,
	UserList:          adminOnly,
	UserCreate:        adminOnly,
	UserUpdateProfile: ownerOrAdmin,
	UserUpdateAccount: adminOnly,
	UserDelete:        adminOnly,

	ScheduleRead:   anyone,
	ScheduleManage: employeeSelfOrAdmin,
}

// Decide reports whether caller (nil for anonymous) may perform action on
// target. Unknown actions are denied.
func Decide(caller *domain.Identity, action Action, target Target) Decision {
	r, ok := rules[action]
	if !ok {
		return deny(ReasonUnknownAction)
	}
	return r(caller, target)
}

func anyone(_ *domain.Identity, _ Target) Decision {
	return allow(ReasonPublic)
}

func authenticated(caller *domain.Identity, _ Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleEmployee, domain.RoleClient:
		return allow(ReasonAuthenticated)
	default:
		return deny(ReasonUnknownRole)
	}
}

func adminOnly(caller *domain.Identity, _ Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return allow(ReasonAdmin)
	case domain.RoleEmployee, domain.RoleClient:
		return deny(ReasonAdminOnly)
	default:
		return deny(ReasonUnknownRole)
	}
}

func ownerOrAdmin(caller *domain.Identity, target Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return allow(ReasonAdmin)
	case domain.RoleEmployee, domain.RoleClient:
		if target.ownedBy(caller.UserID) {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner)
	default:
		return deny(ReasonUnknownRole)
	}
}

func ownerAssigneeOrAdmin(caller *domain.Identity, target Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return allow(ReasonAdmin)
	case domain.RoleEmployee:
		if target.assignedTo(caller.UserID) {
			return allow(ReasonAssignee)
		}
		if target.ownedBy(caller.UserID) {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner)
	case domain.RoleClient:
		if target.ownedBy(caller.UserID) {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner)
	default:
		return deny(ReasonUnknownRole)
	}
}

// assigneeOrAdmin lets the employee a record is assigned to act on it;
// clients never can.
func assigneeOrAdmin(caller *domain.Identity, target Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return allow(ReasonAdmin)
	case domain.RoleEmployee:
		if target.assignedTo(caller.UserID) {
			return allow(ReasonAssignee)
		}
		return deny(ReasonNotOwner)
	case domain.RoleClient:
		return deny(ReasonAdminOnly)
	default:
		return deny(ReasonUnknownRole)
	}
}

// employeeSelfOrAdmin lets employees manage records they own (their own
// schedule); clients never can.
func employeeSelfOrAdmin(caller *domain.Identity, target Target) Decision {
	if caller == nil {
		return deny(ReasonUnauthenticated)
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return allow(ReasonAdmin)
	case domain.RoleEmployee:
		if target.ownedBy(caller.UserID) {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner)
	case domain.RoleClient:
		return deny(ReasonAdminOnly)
	default:
		return deny(ReasonUnknownRole)
	}
}
