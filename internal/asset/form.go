package asset

import (
	"strings"

	"github.com/pkg/errors"
)

// Document is read access to a fetched asset record.
type Document interface {
	String(field string) string
	Value(field string) any
}

// Form is the editable mirror of one asset record. It is seeded from the backend
// record and never stored anywhere but the page that carries it.
type Form struct {
	Institute           string `form:"institute" json:"institute"`
	Department          string `form:"department" json:"department"`
	AssetName           string `form:"asset_name" json:"asset_name"`
	Category            string `form:"category" json:"category"`
	Status              string `form:"status" json:"status"`
	SizeLxWxH           string `form:"size_lxwxh" json:"size_lxwxh"`
	CompanyModel        string `form:"company_model" json:"company_model"`
	ITSerialNo          string `form:"it_serial_no" json:"it_serial_no"`
	DeadStockNo         string `form:"dead_stock_no" json:"dead_stock_no"`
	BillNo              string `form:"bill_no" json:"bill_no"`
	VendorName          string `form:"vendor_name" json:"vendor_name"`
	PurchaseDate        string `form:"purchase_date" json:"purchase_date"`
	RatePerUnit         string `form:"rate_per_unit" json:"rate_per_unit"`
	PONo                string `form:"po_no" json:"po_no"`
	RoomNo              string `form:"room_no" json:"room_no"`
	BuildingName        string `form:"building_name" json:"building_name"`
	Desc                string `form:"desc" json:"desc"`
	AssignedType        string `form:"assigned_type" json:"assigned_type"`
	AssignedFacultyName string `form:"assigned_faculty_name" json:"assigned_faculty_name"`
	EmployeeCode        string `form:"employee_code" json:"employee_code"`
	AssignDate          string `form:"assign_date" json:"assign_date"`
	Remarks             string `form:"remarks" json:"remarks"`
	Location            string `form:"location" json:"location"`
	VerificationDate    string `form:"verification_date" json:"verification_date"`
	Verified            bool   `form:"verified" json:"verified"`
	VerifiedBy          string `form:"verified_by" json:"verified_by"`
}

// NewForm is the empty form shown before anything is scanned.
func NewForm() Form {
	return Form{
		Status:       StatusActive,
		AssignedType: string(AssignedGeneral),
	}
}

// FromRecord hydrates a form from a fetched record.
func FromRecord(doc Document) Form {
	assigned := strings.ToLower(doc.String("assigned_type"))
	if assigned == "" {
		assigned = string(AssignedGeneral)
	}
	status := doc.String("status")
	if status == "" {
		status = StatusActive
	}

	f := Form{
		Institute:        doc.String("institute"),
		Department:       doc.String("department"),
		AssetName:        doc.String("asset_name"),
		Category:         doc.String("category"),
		Status:           status,
		SizeLxWxH:        doc.String("size_lxwxh"),
		CompanyModel:     doc.String("company_model"),
		ITSerialNo:       doc.String("it_serial_no"),
		DeadStockNo:      doc.String("dead_stock_no"),
		BillNo:           doc.String("bill_no"),
		VendorName:       doc.String("vendor_name"),
		PurchaseDate:     doc.String("purchase_date"),
		RatePerUnit:      doc.String("rate_per_unit"),
		PONo:             doc.String("po_no"),
		RoomNo:           doc.String("room_no"),
		BuildingName:     doc.String("building_name"),
		Desc:             doc.String("desc"),
		AssignedType:     assigned,
		AssignDate:       doc.String("assign_date"),
		Remarks:          doc.String("remarks"),
		Location:         doc.String("location"),
		VerificationDate: doc.String("verification_date"),
		VerifiedBy:       doc.String("verified_by"),
	}
	if AssignedType(assigned) == AssignedIndividual {
		f.AssignedFacultyName = doc.String("assigned_faculty_name")
		f.EmployeeCode = doc.String("employee_code")
	}
	f.Verified = NormalizeVerified(doc.Value("verified"), f.VerifiedBy)
	return f
}

// NeedsFaculty reports whether faculty name and employee code apply.
func (f Form) NeedsFaculty() bool {
	return AssignedType(f.AssignedType) == AssignedIndividual
}

// Normalize applies the input rules: rate keeps digits and dots only, and a
// general assignment carries no faculty name or employee code.
func (f *Form) Normalize() {
	f.RatePerUnit = digitsAndDots(f.RatePerUnit)
	if AssignedType(f.AssignedType) == AssignedGeneral {
		f.AssignedFacultyName = ""
		f.EmployeeCode = ""
	}
}

// Set changes one field by its wire name, applying the same input rules as Normalize.
func (f *Form) Set(field, value string) error {
	switch field {
	case "verified":
		f.Verified = NormalizeVerified(value, nil)
		return nil
	case "assigned_type":
		f.AssignedType = value
		f.Normalize()
		return nil
	case "rate_per_unit":
		f.RatePerUnit = digitsAndDots(value)
		return nil
	}
	p, ok := f.fields()[field]
	if !ok {
		return errors.Errorf("unknown field %q", field)
	}
	*p = value
	return nil
}

func (f *Form) fields() map[string]*string {
	return map[string]*string{
		"institute":             &f.Institute,
		"department":            &f.Department,
		"asset_name":            &f.AssetName,
		"category":              &f.Category,
		"status":                &f.Status,
		"size_lxwxh":            &f.SizeLxWxH,
		"company_model":         &f.CompanyModel,
		"it_serial_no":          &f.ITSerialNo,
		"dead_stock_no":         &f.DeadStockNo,
		"bill_no":               &f.BillNo,
		"vendor_name":           &f.VendorName,
		"purchase_date":         &f.PurchaseDate,
		"po_no":                 &f.PONo,
		"room_no":               &f.RoomNo,
		"building_name":         &f.BuildingName,
		"desc":                  &f.Desc,
		"assigned_faculty_name": &f.AssignedFacultyName,
		"employee_code":         &f.EmployeeCode,
		"assign_date":           &f.AssignDate,
		"remarks":               &f.Remarks,
		"location":              &f.Location,
		"verification_date":     &f.VerificationDate,
		"verified_by":           &f.VerifiedBy,
	}
}

func digitsAndDots(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
}
