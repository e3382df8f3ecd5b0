package templates

import (
	"strings"

	"github.com/google/uuid"
)

// FileName builds the default document file name for a company. Names that
// leave nothing usable after dropping path-unsafe characters fall back to a
// random identifier.
func FileName(company string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) || r < ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(company))
	if name == "" {
		name = uuid.NewString()
	}
	return "사업계획서_" + name + ".docx"
}
