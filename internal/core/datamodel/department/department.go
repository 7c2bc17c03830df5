package department

import "time"

type Department struct {
	DepartmentID   string    `gorm:"column:department_id;primaryKey"`
	DepartmentName string    `gorm:"column:department_name;not null"`
	SectionName    string    `gorm:"column:section_name;not null"`
	EmployeeLevel  string    `gorm:"column:employee_level;not null"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
