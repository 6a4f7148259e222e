package model

// Vehicle is a roster entry for one truck. AuthorizedDrivers lists the
// drivers allowed to operate it; a single entry enables driver
// auto-selection on assignment.
type Vehicle struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Active            bool     `json:"active"`
	AuthorizedDrivers []string `json:"authorized_drivers"`
}

// SoleDriver returns the only authorized driver, or "" when the vehicle
// has zero or several.
func (v Vehicle) SoleDriver() string {
	if len(v.AuthorizedDrivers) == 1 {
		return v.AuthorizedDrivers[0]
	}
	return ""
}

// Driver is a roster entry for one driver.
type Driver struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
