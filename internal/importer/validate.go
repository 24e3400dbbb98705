package importer

import (
	"fmt"
	"strings"

	"asset-scan/internal/asset"
)

// Sheet column headers.
const (
	ColSerialNo         = "Serial No"
	ColRegistrationNo   = "Registration No"
	ColAssetName        = "Asset Name"
	ColCategory         = "Category"
	ColInstitute        = "Institute"
	ColDepartment       = "Department"
	ColStatus           = "Status"
	ColSize             = "Design Specifications (LxWxH)"
	ColCompanyModel     = "Company / Model / Model No."
	ColITSerialNo       = "Serial No. (IT Asset)"
	ColDeadStockNo      = "Dead Stock / Asset / Stock No."
	ColBillNo           = "Bill No"
	ColVendorName       = "Vendor Name"
	ColPurchaseDate     = "Date of Purchase"
	ColRatePerUnit      = "Rate per Unit (Rs.)"
	ColPONo             = "Purchase Order (PO) No."
	ColRoomNo           = "Room No. / Location (short)"
	ColBuildingName     = "Name of Building"
	ColDescription      = "Description"
	ColAssignedType     = "Assigned Type"
	ColFacultyName      = "Assigned Faculty Name"
	ColEmployeeCode     = "Employee Code"
	ColAssignDate       = "Assign Date"
	ColRemarks          = "Remarks"
	ColVerificationDate = "Verification Date"
	ColVerified         = "Verified"
	ColVerifiedBy       = "Verified By"
)

var RequiredColumns = []string{
	ColSerialNo,
	ColRegistrationNo,
	ColAssetName,
	ColCategory,
	ColInstitute,
	ColStatus,
	ColPurchaseDate,
	ColRoomNo,
	ColAssignedType,
	ColAssignDate,
}

// MaxReported is how many validation messages Summarize spells out.
const MaxReported = 10

// Validate checks every row and returns all violations in row order.
func Validate(rows []Row) []string {
	var errs []string
	for _, row := range rows {
		errs = append(errs, validateRow(row)...)
	}
	return errs
}

func validateRow(row Row) []string {
	var errs []string
	n := row.Number

	for _, col := range RequiredColumns {
		if !row.Has(col) {
			errs = append(errs, fmt.Sprintf("Row %d: '%s' is required but blank.", n, col))
		}
	}

	raw := row.Get(ColAssignedType)
	if strings.TrimSpace(raw) == "" {
		// reported by the required column check
		return errs
	}
	at, ok := asset.ParseAssignedType(raw)
	if !ok {
		return append(errs, fmt.Sprintf("Row %d: Unknown 'Assigned Type' value '%s'. Expected 'general' or 'individual'.", n, raw))
	}

	switch at {
	case asset.AssignedGeneral:
		if row.Has(ColFacultyName) {
			errs = append(errs, fmt.Sprintf("Row %d: Assigned Type is 'general' but '%s' must be blank.", n, ColFacultyName))
		}
		if row.Has(ColEmployeeCode) {
			errs = append(errs, fmt.Sprintf("Row %d: Assigned Type is 'general' but '%s' must be blank.", n, ColEmployeeCode))
		}
	case asset.AssignedIndividual:
		if !row.Has(ColFacultyName) {
			errs = append(errs, fmt.Sprintf("Row %d: Assigned Type is 'individual' but '%s' is blank.", n, ColFacultyName))
		}
		if !row.Has(ColEmployeeCode) {
			errs = append(errs, fmt.Sprintf("Row %d: Assigned Type is 'individual' but '%s' is blank.", n, ColEmployeeCode))
		}
	}
	return errs
}

// Summarize renders the violations the way they are shown to the user: the first
// MaxReported joined by spaces, followed by a count of the rest.
func Summarize(errs []string) string {
	shown := errs
	more := ""
	if len(errs) > MaxReported {
		shown = errs[:MaxReported]
		more = fmt.Sprintf(" (and %d more)", len(errs)-MaxReported)
	}
	return "Excel validation failed: " + strings.Join(shown, " ") + more
}
