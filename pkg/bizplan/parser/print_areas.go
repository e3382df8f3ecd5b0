package parser

import (
	"strings"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas returns the user-defined print areas of a workbook keyed
// by sheet name.
func ExtractPrintAreas(f *excelize.File) map[string][]models.Region {
	result := make(map[string][]models.Region)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses 'Sheet Name'!$A$1:$D$10[,...].
func parsePrintAreaReference(ref string) (string, []models.Region) {
	var (
		sheetName string
		areas     []models.Region
	)

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		if sheetName == "" {
			sheetName = strings.Trim(part[:idx], "'")
		}
		if area, err := ParseRange(part[idx+1:]); err == nil {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}
