package shared

// Module identifies one business record collection type
type Module string

const (
	ModuleVendors   Module = "vendors"
	ModuleLeads     Module = "leads"
	ModuleStaff     Module = "staff"
	ModuleDialer    Module = "dialer"
	ModuleEnquiries Module = "enquiries"
)

// AllModules lists every known module in registration order
func AllModules() []Module {
	return []Module{ModuleVendors, ModuleLeads, ModuleStaff, ModuleDialer, ModuleEnquiries}
}

// Valid reports whether m names a known module
func (m Module) Valid() bool {
	switch m {
	case ModuleVendors, ModuleLeads, ModuleStaff, ModuleDialer, ModuleEnquiries:
		return true
	}
	return false
}

// String returns the module name
func (m Module) String() string {
	return string(m)
}
