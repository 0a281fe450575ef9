package models

type Car struct {
	ID             int64         `json:"id"`
	Model          string        `json:"model"`
	ManufacturerID int64         `json:"manufacturer_id"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`

	// DriverIDs is the membership written on create/update.
	DriverIDs []int64 `json:"driver_ids,omitempty"`
	// Drivers is only populated on detail reads.
	Drivers []*Driver `json:"drivers,omitempty"`
}

func (c *Car) String() string {
	return c.Model
}

func (c *Car) HasDriver(driverID int64) bool {
	for _, d := range c.Drivers {
		if d.ID == driverID {
			return true
		}
	}
	for _, id := range c.DriverIDs {
		if id == driverID {
			return true
		}
	}
	return false
}
