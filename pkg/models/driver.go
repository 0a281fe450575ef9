package models

type Driver struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LicenseNumber string `json:"license_number"`
	PasswordHash  string `json:"-"`

	// Cars is only populated on detail reads.
	Cars []*Car `json:"cars,omitempty"`
}

func (d *Driver) String() string {
	return d.Username + " (" + d.FirstName + " " + d.LastName + ")"
}
