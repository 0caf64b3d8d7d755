// Package authz holds the resource/action permission table. Decisions
// are pure functions of (resource, action, actor); the actor always
// arrives as a parameter, never from ambient request state.
package authz

import "storefront/internal/domain"

type Resource string

const (
	Products   Resource = "products"
	Categories Resource = "categories"
	Users      Resource = "users"
	Orders     Resource = "orders"
)

type Action string

const (
	List     Action = "list"
	Retrieve Action = "retrieve"
	Create   Action = "create"
	Update   Action = "update"
	Delete   Action = "delete"
)

type level int

const (
	public level = iota
	authenticated
	adminOnly
)

// rules is the full permission matrix. Product writes are admin-only,
// categories require a login for everything, user registration and
// reads are public while user mutations require a login, and orders
// are login-only with visibility scoped to the owner (see OwnsOrder).
var rules = map[Resource]map[Action]level{
	Products: {
		List:     public,
		Retrieve: public,
		Create:   adminOnly,
		Update:   adminOnly,
		Delete:   adminOnly,
	},
	Categories: {
		List:     authenticated,
		Retrieve: authenticated,
		Create:   authenticated,
		Update:   authenticated,
		Delete:   authenticated,
	},
	Users: {
		List:     public,
		Retrieve: public,
		Create:   public,
		Update:   authenticated,
		Delete:   authenticated,
	},
	Orders: {
		List:     authenticated,
		Retrieve: authenticated,
		Create:   authenticated,
		Update:   authenticated,
		Delete:   authenticated,
	},
}

// Authorize gates an action. It returns ErrUnauthorized when the action
// needs a login the actor does not have, and ErrForbidden when the
// actor is known but lacks the required role. Unknown resource/action
// pairs deny.
func Authorize(res Resource, act Action, actor domain.Actor) error {
	acts, ok := rules[res]
	if !ok {
		return domain.ErrForbidden
	}
	lv, ok := acts[act]
	if !ok {
		return domain.ErrForbidden
	}
	switch lv {
	case public:
		return nil
	case authenticated:
		if !actor.Authenticated {
			return domain.ErrUnauthorized
		}
		return nil
	default: // adminOnly
		if !actor.Authenticated {
			return domain.ErrUnauthorized
		}
		if !actor.Admin {
			return domain.ErrForbidden
		}
		return nil
	}
}

// OwnsOrder reports whether the actor may see the given order. Admins
// see everything; everyone else only their own.
func OwnsOrder(actor domain.Actor, o domain.Order) bool {
	if actor.Admin {
		return true
	}
	return actor.Authenticated && actor.ID == o.UserID
}

// OwnsUser reports whether the actor may mutate the given user record.
func OwnsUser(actor domain.Actor, userID string) bool {
	if actor.Admin {
		return true
	}
	return actor.Authenticated && actor.ID == userID
}
