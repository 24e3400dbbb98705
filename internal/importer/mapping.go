package importer

import (
	"strings"

	"asset-scan/internal/asset"
)

// RowPayload is the body of PUT /api/assets/update-by-registration/{reg}.
// Columns missing from the sheet are left out of the body.
type RowPayload struct {
	SerialNo            string `json:"serial_no,omitempty"`
	RegistrationNumber  string `json:"registration_number,omitempty"`
	AssetName           string `json:"asset_name,omitempty"`
	Category            string `json:"category,omitempty"`
	Institute           string `json:"institute,omitempty"`
	Department          string `json:"department,omitempty"`
	Status              string `json:"status,omitempty"`
	SizeLxWxH           string `json:"size_lxwxh,omitempty"`
	CompanyModel        string `json:"company_model,omitempty"`
	ITSerialNo          string `json:"it_serial_no,omitempty"`
	DeadStockNo         string `json:"dead_stock_no,omitempty"`
	BillNo              string `json:"bill_no,omitempty"`
	VendorName          string `json:"vendor_name,omitempty"`
	PurchaseDate        string `json:"purchase_date,omitempty"`
	RatePerUnit         string `json:"rate_per_unit,omitempty"`
	PONo                string `json:"po_no,omitempty"`
	RoomNo              string `json:"room_no,omitempty"`
	BuildingName        string `json:"building_name,omitempty"`
	Desc                string `json:"desc,omitempty"`
	AssignedType        string `json:"assigned_type,omitempty"`
	AssignedFacultyName string `json:"assigned_faculty_name,omitempty"`
	EmployeeCode        string `json:"employee_code,omitempty"`
	AssignDate          string `json:"assign_date,omitempty"`
	Remarks             string `json:"remarks,omitempty"`
	VerificationDate    string `json:"verification_date,omitempty"`
	Verified            bool   `json:"verified"`
	VerifiedBy          string `json:"verified_by"`
}

// MapRow converts a validated row into its update body.
func MapRow(row Row, today string) RowPayload {
	var rawVerified any
	if v, ok := row.Cells[ColVerified]; ok {
		rawVerified = v
	}
	verifiedBy := row.Get(ColVerifiedBy)
	verified := asset.NormalizeVerified(rawVerified, verifiedBy)

	p := RowPayload{
		SerialNo:            row.Get(ColSerialNo),
		RegistrationNumber:  row.Get(ColRegistrationNo),
		AssetName:           row.Get(ColAssetName),
		Category:            row.Get(ColCategory),
		Institute:           row.Get(ColInstitute),
		Department:          row.Get(ColDepartment),
		Status:              row.Get(ColStatus),
		SizeLxWxH:           row.Get(ColSize),
		CompanyModel:        row.Get(ColCompanyModel),
		ITSerialNo:          row.Get(ColITSerialNo),
		DeadStockNo:         row.Get(ColDeadStockNo),
		BillNo:              row.Get(ColBillNo),
		VendorName:          row.Get(ColVendorName),
		PurchaseDate:        row.Get(ColPurchaseDate),
		RatePerUnit:         row.Get(ColRatePerUnit),
		PONo:                row.Get(ColPONo),
		RoomNo:              row.Get(ColRoomNo),
		BuildingName:        row.Get(ColBuildingName),
		Desc:                row.Get(ColDescription),
		AssignedType:        row.Get(ColAssignedType),
		AssignedFacultyName: row.Get(ColFacultyName),
		EmployeeCode:        row.Get(ColEmployeeCode),
		AssignDate:          row.Get(ColAssignDate),
		Remarks:             row.Get(ColRemarks),
		VerificationDate:    row.Get(ColVerificationDate),
		Verified:            verified,
		VerifiedBy:          verifiedBy,
	}
	if verified && strings.TrimSpace(p.VerificationDate) == "" {
		p.VerificationDate = today
	}
	return p
}
