package asset

import (
	"time"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
)

// Asset represents one tracked item or one employee-type record. Exactly
// one of the physical or employee field sets is populated, per AssetType.
type Asset struct {
	AssetID    string  `json:"assetId"`
	AssetType  string  `json:"assetType"`
	AssetName  string  `json:"assetName"`
	Status     string  `json:"status"`
	AssignedTo *string `json:"assignedTo,omitempty"`

	// Physical-asset fields (assetType != employee).
	Location            string     `json:"location,omitempty"`
	PurchaseDate        *time.Time `json:"purchaseDate,omitempty"`
	LastMaintenance     *time.Time `json:"lastMaintenance,omitempty"`
	NextMaintenance     *time.Time `json:"nextMaintenance,omitempty"`
	Condition           string     `json:"condition,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CertificateDocument string     `json:"certificateDocument,omitempty"`

	// Employee-type fields (assetType == employee).
	EmployeeName  string `json:"employeeName,omitempty"`
	EmployeeID    string `json:"employeeId,omitempty"`
	Section       string `json:"section,omitempty"`
	EmployeeLevel string `json:"employeeLevel,omitempty"`
	IDDocument    string `json:"idDocument,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	TypeSystem   = "system"
	TypeTable    = "table"
	TypeChair    = "chair"
	TypeEmployee = "employee"
)

var Types = []string{TypeSystem, TypeTable, TypeChair, TypeEmployee}

const (
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
)

var Conditions = []string{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}

const (
	LevelSC   = "SC"
	LevelOS   = "OS"
	LevelHead = "Head"
)

var EmployeeLevels = []string{LevelSC, LevelOS, LevelHead}

func IsKnownType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

func (a *Asset) IsEmployee() bool {
	return a.AssetType == TypeEmployee
}

// Touch refreshes the mutation timestamp; every update path calls it.
func (a *Asset) Touch() {
	a.UpdatedAt = time.Now()
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		AssetID:             a.AssetID,
		AssetType:           a.AssetType,
		AssetName:           a.AssetName,
		Status:              a.Status,
		AssignedTo:          a.AssignedTo,
		Location:            a.Location,
		PurchaseDate:        a.PurchaseDate,
		LastMaintenance:     a.LastMaintenance,
		NextMaintenance:     a.NextMaintenance,
		Condition:           a.Condition,
		Notes:               a.Notes,
		CertificateDocument: a.CertificateDocument,
		EmployeeName:        a.EmployeeName,
		EmployeeID:          a.EmployeeID,
		Section:             a.Section,
		EmployeeLevel:       a.EmployeeLevel,
		IDDocument:          a.IDDocument,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	return &Asset{
		AssetID:             a.AssetID,
		AssetType:           a.AssetType,
		AssetName:           a.AssetName,
		Status:              a.Status,
		AssignedTo:          a.AssignedTo,
		Location:            a.Location,
		PurchaseDate:        a.PurchaseDate,
		LastMaintenance:     a.LastMaintenance,
		NextMaintenance:     a.NextMaintenance,
		Condition:           a.Condition,
		Notes:               a.Notes,
		CertificateDocument: a.CertificateDocument,
		EmployeeName:        a.EmployeeName,
		EmployeeID:          a.EmployeeID,
		Section:             a.Section,
		EmployeeLevel:       a.EmployeeLevel,
		IDDocument:          a.IDDocument,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*assetDatamodel.Asset) []*Asset {
	result := make([]*Asset, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
