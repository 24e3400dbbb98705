package asset

import "strings"

// Payload is the body of PUT /api/assets/{id}.
type Payload struct {
	Institute           string `json:"institute"`
	Department          string `json:"department"`
	AssetName           string `json:"asset_name"`
	Category            string `json:"category"`
	Status              string `json:"status"`
	SizeLxWxH           string `json:"size_lxwxh"`
	CompanyModel        string `json:"company_model"`
	ITSerialNo          string `json:"it_serial_no"`
	DeadStockNo         string `json:"dead_stock_no"`
	BillNo              string `json:"bill_no"`
	VendorName          string `json:"vendor_name"`
	PurchaseDate        string `json:"purchase_date"`
	RatePerUnit         string `json:"rate_per_unit"`
	PONo                string `json:"po_no"`
	RoomNo              string `json:"room_no"`
	BuildingName        string `json:"building_name"`
	Desc                string `json:"desc"`
	AssignedType        string `json:"assigned_type"`
	AssignedFacultyName string `json:"assigned_faculty_name"`
	EmployeeCode        string `json:"employee_code"`
	AssignDate          string `json:"assign_date"`
	Remarks             string `json:"remarks"`
	Location            string `json:"location"`
	Verified            bool   `json:"verified"`
	VerificationDate    string `json:"verification_date"`
	VerifiedBy          string `json:"verified_by"`
}

// Payload assembles the update body. A verified asset without a verification
// date is stamped with today.
func (f Form) Payload(today string) Payload {
	p := Payload{
		Institute:        f.Institute,
		Department:       f.Department,
		AssetName:        f.AssetName,
		Category:         f.Category,
		Status:           f.Status,
		SizeLxWxH:        f.SizeLxWxH,
		CompanyModel:     f.CompanyModel,
		ITSerialNo:       f.ITSerialNo,
		DeadStockNo:      f.DeadStockNo,
		BillNo:           f.BillNo,
		VendorName:       f.VendorName,
		PurchaseDate:     f.PurchaseDate,
		RatePerUnit:      f.RatePerUnit,
		PONo:             f.PONo,
		RoomNo:           f.RoomNo,
		BuildingName:     f.BuildingName,
		Desc:             f.Desc,
		AssignedType:     f.AssignedType,
		AssignDate:       f.AssignDate,
		Remarks:          f.Remarks,
		Location:         f.Location,
		Verified:         f.Verified,
		VerificationDate: f.VerificationDate,
		VerifiedBy:       f.VerifiedBy,
	}
	if f.NeedsFaculty() {
		p.AssignedFacultyName = f.AssignedFacultyName
		p.EmployeeCode = f.EmployeeCode
	}
	if f.Verified && strings.TrimSpace(p.VerificationDate) == "" {
		p.VerificationDate = today
	}
	return p
}

// Validate returns one message per missing required field, in form order.
func (f Form) Validate() []string {
	var errs []string
	required := []struct {
		label, value string
	}{
		{"Institute", f.Institute},
		{"Department", f.Department},
		{"Status", f.Status},
		{"Date of Purchase", f.PurchaseDate},
		{"Room No. / Location (short)", f.RoomNo},
		{"Assigned Type", f.AssignedType},
		{"Assign Date", f.AssignDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, r.label+" is required.")
		}
	}
	if f.NeedsFaculty() {
		if strings.TrimSpace(f.AssignedFacultyName) == "" {
			errs = append(errs, "Assigned To (Employee Name) is required for individual assignment.")
		}
		if strings.TrimSpace(f.EmployeeCode) == "" {
			errs = append(errs, "Assigned To (Employee Code) is required for individual assignment.")
		}
	}
	return errs
}
