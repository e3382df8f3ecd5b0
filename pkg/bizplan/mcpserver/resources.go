package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

const (
	templateScheme = "template://"
	charsGuideURI  = "guide://special-chars"
)

// Sample company used when rendering template resources.
var exampleCompany = models.CompanyInfo{Name: "예시 회사"}

var templateNames = map[templates.Kind]string{
	templates.Basic:      "기본 사업계획서 템플릿",
	templates.Government: "정부지원사업 템플릿",
	templates.VC:         "VC 투자 템플릿",
}

func templateResource(k templates.Kind) mcp.Resource {
	return mcp.NewResource(templateScheme+string(k), templateNames[k],
		mcp.WithResourceDescription(fmt.Sprintf("%s 사업계획서 구조", k)),
		mcp.WithMIMEType("application/json"),
	)
}

func (s *Server) handleTemplate(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	kind, err := templates.ParseKind(strings.TrimPrefix(uri, templateScheme))
	if err != nil {
		return nil, err
	}
	tpl, err := templates.New(kind, exampleCompany)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(body)},
	}, nil
}

func charsGuideResource() mcp.Resource {
	return mcp.NewResource(charsGuideURI, "특수문자 변환 가이드",
		mcp.WithResourceDescription("자동 변환되는 특수문자 목록"),
		mcp.WithMIMEType("text/plain"),
	)
}

func (s *Server) handleCharsGuide(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: charsGuideURI, MIMEType: "text/plain", Text: s.charsGuide()},
	}, nil
}

// charsGuide lists every substitution of the active character map.
func (s *Server) charsGuide() string {
	entries := s.normalizer.CharMap().Entries()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("특수문자 자동 변환 목록:\n\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s → %s\n", k, entries[k])
	}
	return b.String()
}
