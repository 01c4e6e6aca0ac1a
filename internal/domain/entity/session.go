package entity

// Profile is the companion user blob persisted alongside the encrypted
// credential. Only the subject identifier from the token claims is kept;
// everything else about the user lives behind the upstream API.
type Profile struct {
	ID string `json:"id"`
}
