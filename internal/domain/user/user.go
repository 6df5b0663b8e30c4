package user

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Tel    string `json:"tel"`
	Avatar string `json:"avatar"`
}

// Session is the authenticated identity returned by the backend. The user
// summary is only populated when the session was created in this process.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
