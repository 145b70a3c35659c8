// Package model defines the records read from the billing schema. All of them
// are read-only views: this system never writes to pkg_user, pkg_cdr or
// pkg_trunk. JSON tags match the field names the legacy bot-api emitted so
// existing consumers keep working.
package model

import "time"

// CustomerUserType is the pkg_user.id_user_type discriminator for customers.
const CustomerUserType = 3

// User mirrors the pkg_user columns the bot needs for authentication.
//
// Password holds the stored credential digest (a single unsalted SHA-1 hex
// string, imposed by the billing store). It must be blanked before a User
// leaves the auth boundary.
type User struct {
	ID         int64   `json:"id"`           // pkg_user.id
	Username   string  `json:"username"`     // pkg_user.username
	Password   string  `json:"-"`            // pkg_user.password (SHA-1 hex digest)
	FirstName  string  `json:"firstname"`    // pkg_user.firstname
	LastName   string  `json:"lastname"`     // pkg_user.lastname
	Email      string  `json:"email"`        // pkg_user.email
	UserTypeID int     `json:"id_user_type"` // pkg_user.id_user_type
	Credit     float64 `json:"credit"`       // pkg_user.credit
	Active     int     `json:"active"`       // pkg_user.active (1 = enabled)
}

// Call mirrors one CDR row from pkg_cdr.
type Call struct {
	ID               int64     `json:"id"`               // pkg_cdr.id
	StartTime        time.Time `json:"starttime"`        // pkg_cdr.starttime
	CallerID         string    `json:"callerid"`         // pkg_cdr.callerid
	Destination      string    `json:"dst"`              // pkg_cdr.dst
	SessionTime      int       `json:"sessiontime"`      // pkg_cdr.sessiontime (seconds)
	BuyCost          float64   `json:"buycost"`          // pkg_cdr.buycost
	TerminateCauseID int       `json:"terminatecauseid"` // pkg_cdr.terminatecauseid
	Trunk            string    `json:"trunk"`            // pkg_cdr.trunk
}

// Customer is a pkg_user row filtered to the customer user type.
type Customer struct {
	ID           int64     `json:"id"`           // pkg_user.id
	Username     string    `json:"username"`     // pkg_user.username
	FirstName    string    `json:"firstname"`    // pkg_user.firstname
	LastName     string    `json:"lastname"`     // pkg_user.lastname
	Email        string    `json:"email"`        // pkg_user.email
	Phone        string    `json:"phone1"`       // pkg_user.phone1
	Credit       float64   `json:"credit"`       // pkg_user.credit
	Active       int       `json:"active"`       // pkg_user.active
	CreationDate time.Time `json:"creationdate"` // pkg_user.creationdate
}

// DashboardStats is the derived aggregate shown on the dashboard. It is
// recomputed in full on every request; nothing is cached.
type DashboardStats struct {
	TotalCalls      int     `json:"totalCalls"`      // calls started today
	TotalDuration   int     `json:"totalDuration"`   // minutes of talk time today
	ActiveCustomers int     `json:"activeCustomers"` // customer accounts with active=1
	RevenueToday    float64 `json:"revenueToday"`    // SUM(buycost) for today
	ActiveTrunks    int     `json:"activeTrunks"`    // trunks with status=1
}

// CallFilter narrows a CDR search. Zero-valued fields are omitted from the
// query entirely; substring fields use contains matching and the dates are
// inclusive bounds on DATE(starttime), formatted YYYY-MM-DD.
type CallFilter struct {
	CallerID    string
	Destination string
	DateFrom    string
	DateTo      string
}
