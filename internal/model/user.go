package model

// Role is the access role of an application user.
type Role string

const (
	RoleAdminPusat    Role = "AdminPusat"
	RoleAreaManager   Role = "AreaManager"
	RoleOutletManager Role = "OutletManager"
	RoleKasir         Role = "Kasir"
	RoleHR            Role = "HR"
	RoleGudang        Role = "Gudang"
	RoleFinance       Role = "Finance"
)

var allRoles = []Role{
	RoleAdminPusat,
	RoleAreaManager,
	RoleOutletManager,
	RoleKasir,
	RoleHR,
	RoleGudang,
	RoleFinance,
}

// AllRoles returns the role enumeration.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r Role) IsValid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsOutletScoped reports whether users with this role work at a single outlet.
func (r Role) IsOutletScoped() bool {
	return r == RoleOutletManager || r == RoleKasir
}

// User is an application account. OutletID is nil for network-wide roles.
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role     Role   `gorm:"type:varchar(20);not null" json:"role"`
	OutletID *uint  `gorm:"index" json:"outlet_id"`
}

func (User) TableName() string { return string(TableUsers) }

type UserUpdate struct {
	Name     *string
	Role     *Role
	OutletID **uint
}

func (u UserUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Role != nil {
		f["role"] = *u.Role
	}
	if u.OutletID != nil {
		f["outlet_id"] = *u.OutletID
	}
	return f
}
