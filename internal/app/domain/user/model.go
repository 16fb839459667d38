// Package user holds the profile model stored for each account.
package user

// Profile is the mutable user document kept in the document store. The
// account password never lives here; it only passes through the auth
// provider at registration and sign-in.
type Profile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
}

// Record pairs a profile with its document id.
type Record struct {
	ID      string  `json:"id"`
	Profile Profile `json:"profile"`
}
