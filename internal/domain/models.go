package domain

// ==================== SOURCE ENTITIES ====================

// Role represents the roles table
type Role struct {
	ID         int64   `json:"role_id" db:"role_id" csv:"role_id"`
	Title      string  `json:"title" db:"title" csv:"title"`
	Level      string  `json:"level" db:"level" csv:"level"`
	BaseSalary float64 `json:"base_salary" db:"base_salary" csv:"base_salary"`
}

// Department represents the departments table
type Department struct {
	ID       int64  `json:"department_id" db:"department_id" csv:"department_id"`
	Name     string `json:"name" db:"name" csv:"name"`
	Location string `json:"location" db:"location" csv:"location"`
}

// Employee represents the employees table
type Employee struct {
	ID           int64  `json:"employee_id" db:"employee_id" csv:"employee_id"`
	Name         string `json:"name" db:"name" csv:"name"`
	Age          int    `json:"age" db:"age" csv:"age"`
	HireDate     string `json:"hire_date" db:"hire_date" csv:"hire_date"`
	RoleID       int64  `json:"role_id" db:"role_id" csv:"role_id"`
	DepartmentID int64  `json:"department_id" db:"department_id" csv:"department_id"`
}

// SalaryRecord represents the salary_history table, keyed by (employee_id, month)
type SalaryRecord struct {
	EmployeeID     int64   `json:"employee_id" db:"employee_id" csv:"employee_id"`
	Month          string  `json:"month" db:"month" csv:"month"`
	SalaryReceived float64 `json:"salary_received" db:"salary_received" csv:"salary_received"`
}

// Dependent represents the dependents table, keyed by (employee_id, dependent_name)
type Dependent struct {
	EmployeeID       int64  `json:"employee_id" db:"employee_id" csv:"employee_id"`
	DependentName    string `json:"dependent_name" db:"dependent_name" csv:"dependent_name"`
	BirthDate        string `json:"birth_date" db:"birth_date" csv:"birth_date"`
	RelationshipKind string `json:"relationship_kind" db:"relationship_kind" csv:"relationship_kind"`
}

// Project represents the projects table. EndDate is empty for running projects.
type Project struct {
	ID               int64   `json:"project_id" db:"project_id" csv:"project_id"`
	Name             string  `json:"name" db:"name" csv:"name"`
	Description      string  `json:"description" db:"description" csv:"description"`
	StartDate        string  `json:"start_date" db:"start_date" csv:"start_date"`
	EndDate          string  `json:"end_date" db:"end_date" csv:"end_date"`
	OwningEmployeeID int64   `json:"owning_employee_id" db:"owning_employee_id" csv:"owning_employee_id"`
	Cost             float64 `json:"cost" db:"cost" csv:"cost"`
	Status           string  `json:"status" db:"status" csv:"status"`
	Category         string  `json:"category" db:"category" csv:"category"`
}

// ProjectResource represents the project_resources table
type ProjectResource struct {
	ID           int64   `json:"resource_id" db:"resource_id" csv:"resource_id"`
	ProjectID    int64   `json:"project_id" db:"project_id" csv:"project_id"`
	Description  string  `json:"description" db:"description" csv:"description"`
	ResourceKind string  `json:"resource_kind" db:"resource_kind" csv:"resource_kind"`
	Quantity     int64   `json:"quantity" db:"quantity" csv:"quantity"`
	UsageDate    string  `json:"usage_date" db:"usage_date" csv:"usage_date"`
	UnitCost     float64 `json:"unit_cost" db:"unit_cost" csv:"unit_cost"`
	TotalCost    float64 `json:"total_cost" db:"total_cost" csv:"total_cost"`
}

// ==================== REPORT ROWS ====================

// ResourceUsage is one row of the top resources report
type ResourceUsage struct {
	Resource      string `json:"resource"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DepartmentCost is one row of the completed project cost report
type DepartmentCost struct {
	Department string  `json:"department"`
	TotalCost  float64 `json:"total_cost"`
}

// ProjectDependents is the row returned by the most dependents report
type ProjectDependents struct {
	Project        string `json:"project"`
	DependentCount int64  `json:"dependent_count"`
}
