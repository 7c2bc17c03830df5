package asset

import "time"

// Asset is the persistence shape for one tracked item or employee record.
// AssetID is the caller-supplied primary key; it never changes after
// creation.
type Asset struct {
	AssetID             string     `gorm:"column:asset_id;primaryKey"`
	AssetType           string     `gorm:"column:asset_type;not null"`
	AssetName           string     `gorm:"column:asset_name;not null"`
	Status              string     `gorm:"column:status;not null"`
	AssignedTo          *string    `gorm:"column:assigned_to"`
	Location            string     `gorm:"column:location"`
	PurchaseDate        *time.Time `gorm:"column:purchase_date"`
	LastMaintenance     *time.Time `gorm:"column:last_maintenance"`
	NextMaintenance     *time.Time `gorm:"column:next_maintenance"`
	Condition           string     `gorm:"column:condition"`
	Notes               string     `gorm:"column:notes"`
	CertificateDocument string     `gorm:"column:certificate_document"`
	EmployeeName        string     `gorm:"column:employee_name"`
	EmployeeID          string     `gorm:"column:employee_id"`
	Section             string     `gorm:"column:section"`
	EmployeeLevel       string     `gorm:"column:employee_level"`
	IDDocument          string     `gorm:"column:id_document"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
