package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/authz"
	"storefront/internal/domain"
)

var (
	anon  = domain.Anonymous
	user  = domain.Actor{ID: "u-1", Authenticated: true}
	admin = domain.Actor{ID: "u-root", Authenticated: true, Admin: true}
)

func TestPermissionMatrix(t *testing.T) {
	cases := []struct {
		name  string
		res   authz.Resource
		act   authz.Action
		actor domain.Actor
		want  error
	}{
		{"product list is public", authz.Products, authz.List, anon, nil},
		{"product retrieve is public", authz.Products, authz.Retrieve, anon, nil},
		{"product create needs a login", authz.Products, authz.Create, anon, domain.ErrUnauthorized},
		{"product create needs admin", authz.Products, authz.Create, user, domain.ErrForbidden},
		{"product create allowed for admin", authz.Products, authz.Create, admin, nil},
		{"product update needs admin", authz.Products, authz.Update, user, domain.ErrForbidden},
		{"product delete needs admin", authz.Products, authz.Delete, user, domain.ErrForbidden},

		{"category list needs a login", authz.Categories, authz.List, anon, domain.ErrUnauthorized},
		{"category list allowed for users", authz.Categories, authz.List, user, nil},
		{"category create allowed for users", authz.Categories, authz.Create, user, nil},
		{"category delete needs a login", authz.Categories, authz.Delete, anon, domain.ErrUnauthorized},

		{"user list is public", authz.Users, authz.List, anon, nil},
		{"registration is public", authz.Users, authz.Create, anon, nil},
		{"user update needs a login", authz.Users, authz.Update, anon, domain.ErrUnauthorized},
		{"user delete needs a login", authz.Users, authz.Delete, anon, domain.ErrUnauthorized},

		{"order list needs a login", authz.Orders, authz.List, anon, domain.ErrUnauthorized},
		{"order list allowed for users", authz.Orders, authz.List, user, nil},
		{"order create needs a login", authz.Orders, authz.Create, anon, domain.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := authz.Authorize(tc.res, tc.act, tc.actor)
			if tc.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}

func TestUnknownResourceOrActionDenies(t *testing.T) {
	assert.ErrorIs(t, authz.Authorize("widgets", authz.List, admin), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Authorize(authz.Products, "publish", admin), domain.ErrForbidden)
}

func TestOwnsOrder(t *testing.T) {
	mine := domain.Order{ID: "o-1", UserID: "u-1"}
	theirs := domain.Order{ID: "o-2", UserID: "u-2"}

	assert.True(t, authz.OwnsOrder(user, mine))
	assert.False(t, authz.OwnsOrder(user, theirs))
	assert.False(t, authz.OwnsOrder(anon, mine))
	assert.True(t, authz.OwnsOrder(admin, theirs))
}

func TestOwnsUser(t *testing.T) {
	assert.True(t, authz.OwnsUser(user, "u-1"))
	assert.False(t, authz.OwnsUser(user, "u-2"))
	assert.True(t, authz.OwnsUser(admin, "u-2"))
	assert.False(t, authz.OwnsUser(anon, "u-1"))
}
