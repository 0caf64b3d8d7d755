package domain

type User struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Hash     string `db:"password_hash" json:"-"`
	Role     string `db:"role" json:"role"`
}

// Actor is the identity behind a request, or the lack of one. It is
// passed explicitly into every service call; nothing reads identity
// from ambient state.
type Actor struct {
	ID            string
	Authenticated bool
	Admin         bool
}

// Anonymous is the actor for requests with no session.
var Anonymous = Actor{}

// ActorFor builds an Actor from a stored user record.
func ActorFor(u *User) Actor {
	if u == nil {
		return Anonymous
	}
	return Actor{ID: u.ID, Authenticated: true, Admin: u.Role == "ADMIN"}
}
