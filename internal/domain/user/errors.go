package user

import "errors"

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrAvatarRequired = errors.New("an avatar photo is required")
)
