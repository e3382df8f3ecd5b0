// Package templates provides the built-in business-plan document templates
// and loads custom ones from YAML.
package templates

import (
	"errors"
	"fmt"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Kind names a built-in template.
type Kind string

const (
	Basic      Kind = "basic"
	VC         Kind = "vc"
	Government Kind = "government"
)

// ErrUnknownTemplate is returned for a template kind that is not built in.
var ErrUnknownTemplate = errors.New("unknown template")

// Kinds lists the built-in template kinds in display order.
func Kinds() []Kind {
	return []Kind{Basic, Government, VC}
}

// ParseKind resolves a template name. An empty name selects Basic.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case "", Basic:
		return Basic, nil
	case VC:
		return VC, nil
	case Government:
		return Government, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
}

// New builds the built-in template of the given kind for a company.
func New(kind Kind, company models.CompanyInfo) (*models.Template, error) {
	switch kind {
	case Basic:
		return NewBasic(company), nil
	case VC:
		return NewVC(company), nil
	case Government:
		return NewGovernment(company), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, kind)
	}
}

// NewBasic returns the general-purpose business plan.
func NewBasic(company models.CompanyInfo) *models.Template {
	return &models.Template{
		ID:          string(Basic),
		Title:       "사업계획서",
		Subtitle:    company.Name,
		CompanyInfo: company,
		Sections: []models.Section{
			{Title: "1. 사업 개요", Content: "사업의 목적과 비전을 설명합니다."},
			{Title: "2. 시장 분석", Content: "대상 시장과 경쟁 환경을 분석합니다."},
			{Title: "3. 제품/서비스", Content: "제공할 제품이나 서비스를 설명합니다."},
			{Title: "4. 마케팅 전략", Content: "마케팅 및 영업 전략을 설명합니다."},
			{Title: "5. 재무 계획", Content: "재무 계획과 투자 계획을 설명합니다."},
		},
	}
}

// NewVC returns the investor pitch layout.
func NewVC(company models.CompanyInfo) *models.Template {
	return &models.Template{
		ID:          string(VC),
		Title:       "투자제안서",
		Subtitle:    company.Name + " 투자 계획",
		CompanyInfo: company,
		Sections: []models.Section{
			{Title: "Executive Summary", Content: "사업 요약 및 투자 포인트"},
			{Title: "Problem & Solution", Content: "해결하고자 하는 문제와 솔루션"},
			{Title: "Market Opportunity", Content: "시장 기회와 규모"},
			{Title: "Product & Technology", Content: "제품 및 기술적 우위"},
			{Title: "Business Model", Content: "수익 모델과 비즈니스 구조"},
			{Title: "Go-to-Market Strategy", Content: "시장 진출 전략"},
			{Title: "Financial Projections", Content: "재무 전망 및 투자 계획"},
			{Title: "Team", Content: "팀 소개 및 역량"},
		},
	}
}

// NewGovernment returns the layout used for government support programs.
func NewGovernment(company models.CompanyInfo) *models.Template {
	return &models.Template{
		ID:          string(Government),
		Title:       "사업계획서",
		Subtitle:    "정부지원사업 신청용",
		CompanyInfo: company,
		Sections: []models.Section{
			{
				Title: "1. 사업 개요",
				Subsections: []models.Section{
					{Title: "1-1. 사업의 배경 및 필요성"},
					{Title: "1-2. 사업의 목표"},
					{Title: "1-3. 사업의 내용"},
				},
			},
			{
				Title: "2. 기술개발 계획",
				Subsections: []models.Section{
					{Title: "2-1. 기술개발 목표"},
					{Title: "2-2. 기술개발 내용 및 방법"},
					{Title: "2-3. 기대효과"},
				},
			},
			{Title: "3. 시장분석 및 사업화 계획", Content: "시장 현황 분석 및 사업화 전략"},
			{Title: "4. 연구개발 추진체계", Content: "연구개발 조직 및 역할"},
			{Title: "5. 소요예산 및 조달계획", Content: "예산 계획 및 자금 조달 방안"},
		},
	}
}

// TableDocument wraps a single extracted table in a minimal document.
func TableDocument(t *models.Table) *models.Template {
	title := "데이터 테이블"
	if t != nil && t.Title != "" {
		title = t.Title
	}
	return &models.Template{
		Title:       title,
		CompanyInfo: models.CompanyInfo{Name: "데이터 분석"},
		Sections: []models.Section{
			{Title: "데이터 테이블", Table: t},
		},
	}
}

// AppendTable adds a titled data section holding t to the end of tpl.
// A nil table leaves the template unchanged.
func AppendTable(tpl *models.Template, title string, t *models.Table) {
	if tpl == nil || t == nil {
		return
	}
	tpl.Sections = append(tpl.Sections, models.Section{Title: title, Table: t})
}
