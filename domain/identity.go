package domain

// Role is the access role derived from an Identity.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleVisitor  Role = "visitor"
)

// Identity is either an Employee (ID and Name set) or a Visitor (Name optional).
type Identity struct {
	role       Role
	EmployeeID string
	Name       string
}

// Employee returns an Identity for a recognised employee.
func Employee(id, name string) Identity {
	return Identity{role: RoleEmployee, EmployeeID: id, Name: name}
}

// Visitor returns an Identity for an unrecognised person. name may be empty.
func Visitor(name string) Identity {
	return Identity{role: RoleVisitor, Name: name}
}

// Role reports the caller role. The zero Identity is a visitor.
func (i Identity) Role() Role {
	if i.role == RoleEmployee {
		return RoleEmployee
	}
	return RoleVisitor
}

// IsEmployee reports whether the identity is an employee.
func (i Identity) IsEmployee() bool {
	return i.Role() == RoleEmployee
}

// DisplayName returns the name to address the person with.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return "Visitor"
}
