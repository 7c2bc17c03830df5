package asset

import "time"

// SubmissionDTO is the request payload for creating an asset. Field names
// follow the public API contract (camelCase keys).
type SubmissionDTO struct {
	AssetID    string  `json:"assetId"`
	AssetType  string  `json:"assetType"`
	AssetName  string  `json:"assetName"`
	Status     string  `json:"status"`
	AssignedTo *string `json:"assignedTo,omitempty"`

	Location            string     `json:"location,omitempty"`
	PurchaseDate        *time.Time `json:"purchaseDate,omitempty"`
	LastMaintenance     *time.Time `json:"lastMaintenance,omitempty"`
	NextMaintenance     *time.Time `json:"nextMaintenance,omitempty"`
	Condition           string     `json:"condition,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CertificateDocument string     `json:"certificateDocument,omitempty"`

	EmployeeName  string `json:"employeeName,omitempty"`
	EmployeeID    string `json:"employeeId,omitempty"`
	Section       string `json:"section,omitempty"`
	EmployeeLevel string `json:"employeeLevel,omitempty"`
	IDDocument    string `json:"idDocument,omitempty"`
}

// ToAsset builds the domain record from a validated submission. Timestamps
// are populated by the store on create.
func (dto SubmissionDTO) ToAsset() *Asset {
	now := time.Now()
	return &Asset{
		AssetID:             dto.AssetID,
		AssetType:           dto.AssetType,
		AssetName:           dto.AssetName,
		Status:              dto.Status,
		AssignedTo:          dto.AssignedTo,
		Location:            dto.Location,
		PurchaseDate:        dto.PurchaseDate,
		LastMaintenance:     dto.LastMaintenance,
		NextMaintenance:     dto.NextMaintenance,
		Condition:           dto.Condition,
		Notes:               dto.Notes,
		CertificateDocument: dto.CertificateDocument,
		EmployeeName:        dto.EmployeeName,
		EmployeeID:          dto.EmployeeID,
		Section:             dto.Section,
		EmployeeLevel:       dto.EmployeeLevel,
		IDDocument:          dto.IDDocument,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// UpdateDTO carries a partial update; nil pointers leave the stored value
// untouched. AssetID and AssetType are immutable and have no update fields.
type UpdateDTO struct {
	AssetName  *string `json:"assetName,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`

	Location            *string    `json:"location,omitempty"`
	PurchaseDate        *time.Time `json:"purchaseDate,omitempty"`
	LastMaintenance     *time.Time `json:"lastMaintenance,omitempty"`
	NextMaintenance     *time.Time `json:"nextMaintenance,omitempty"`
	Condition           *string    `json:"condition,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CertificateDocument *string    `json:"certificateDocument,omitempty"`

	EmployeeName  *string `json:"employeeName,omitempty"`
	EmployeeID    *string `json:"employeeId,omitempty"`
	Section       *string `json:"section,omitempty"`
	EmployeeLevel *string `json:"employeeLevel,omitempty"`
	IDDocument    *string `json:"idDocument,omitempty"`
}

// Apply merges the partial update into the record.
func (dto UpdateDTO) Apply(a *Asset) {
	if dto.AssetName != nil {
		a.AssetName = *dto.AssetName
	}
	if dto.AssignedTo != nil {
		a.AssignedTo = dto.AssignedTo
	}
	if dto.Location != nil {
		a.Location = *dto.Location
	}
	if dto.PurchaseDate != nil {
		a.PurchaseDate = dto.PurchaseDate
	}
	if dto.LastMaintenance != nil {
		a.LastMaintenance = dto.LastMaintenance
	}
	if dto.NextMaintenance != nil {
		a.NextMaintenance = dto.NextMaintenance
	}
	if dto.Condition != nil {
		a.Condition = *dto.Condition
	}
	if dto.Notes != nil {
		a.Notes = *dto.Notes
	}
	if dto.CertificateDocument != nil {
		a.CertificateDocument = *dto.CertificateDocument
	}
	if dto.EmployeeName != nil {
		a.EmployeeName = *dto.EmployeeName
	}
	if dto.EmployeeID != nil {
		a.EmployeeID = *dto.EmployeeID
	}
	if dto.Section != nil {
		a.Section = *dto.Section
	}
	if dto.EmployeeLevel != nil {
		a.EmployeeLevel = *dto.EmployeeLevel
	}
	if dto.IDDocument != nil {
		a.IDDocument = *dto.IDDocument
	}
}

// UpdateStatusDTO is the request payload for admin status transitions.
type UpdateStatusDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
