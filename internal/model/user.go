package model

// Role gates which views a user can reach
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleSeller Role = "Vendeur"
)

// View identifies a navigable screen of the application
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewPOS          View = "pos"
	ViewInventory    View = "inventory"
	ViewTransactions View = "transactions"
	ViewReports      View = "reports"
	ViewBackup       View = "backup"
)

// User is one of the pre-defined accounts offered by the login picker
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Users are the static accounts. They are not created or edited at runtime.
var Users = []User{
	{ID: 1, Name: "Compte Administrateur", Role: RoleAdmin},
	{ID: 2, Name: "Compte Vendeur", Role: RoleSeller},
}

var navigation = []struct {
	view  View
	roles []Role
}{
	{ViewDashboard, []Role{RoleAdmin, RoleSeller}},
	{ViewPOS, []Role{RoleAdmin, RoleSeller}},
	{ViewInventory, []Role{RoleAdmin}},
	{ViewTransactions, []Role{RoleAdmin, RoleSeller}},
	{ViewReports, []Role{RoleAdmin, RoleSeller}},
	{ViewBackup, []Role{RoleAdmin}},
}

// FindUser returns the static user with the given id
func FindUser(id int) (User, bool) {
	for _, u := range Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// NavigationFor returns the views available to role, in menu order
func NavigationFor(role Role) []View {
	views := make([]View, 0, len(navigation))
	for _, item := range navigation {
		for _, r := range item.roles {
			if r == role {
				views = append(views, item.view)
				break
			}
		}
	}
	return views
}

// CanAccess reports whether role may open view
func CanAccess(role Role, view View) bool {
	for _, v := range NavigationFor(role) {
		if v == view {
			return true
		}
	}
	return false
}
