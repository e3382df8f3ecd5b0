package templates

import (
	"fmt"
	"strings"
)

// Audience selects the markdown outline produced by Outline.
type Audience string

const (
	AudienceGovernment Audience = "government"
	AudienceVC         Audience = "vc"
	AudienceBank       Audience = "bank"
)

// Outline renders a markdown business-plan draft for the audience. Unknown
// audiences get the government outline. Each key point becomes a bullet.
func Outline(audience Audience, company, business string, keyPoints []string) string {
	points := bullets(keyPoints)
	switch audience {
	case AudienceVC:
		return fmt.Sprintf(vcOutline, company, company, business, business, points)
	case AudienceBank:
		return fmt.Sprintf(bankOutline, company, company, business, points)
	default:
		return fmt.Sprintf(governmentOutline, company, company, business, points)
	}
}

func bullets(points []string) string {
	lines := make([]string, 0, len(points))
	for _, p := range points {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, "- "+p)
		}
	}
	return strings.Join(lines, "\n")
}

const governmentOutline = `# %s 사업계획서 (정부지원사업용)

## 1. 사업 개요
%s은(는) %s 분야의 혁신적인 기업입니다.

### 1.1 사업의 배경 및 필요성
- 정부 정책 방향과 일치
- 사회적 문제 해결에 기여
%s

### 1.2 사업 목표
- 기술 혁신을 통한 산업 발전
- 일자리 창출 및 지역 경제 활성화

## 2. 기술개발 계획
- 핵심 기술 개발 로드맵
- 특허 및 지적재산권 확보 전략

## 3. 시장분석 및 사업화
- 목표 시장 규모 및 성장성
- 사업화 전략 및 수익 모델`

const vcOutline = `# %s Investment Deck

## Executive Summary
%s is disrupting the %s industry.

## Problem & Solution
### Problem
- Market inefficiencies in %s
%s

### Solution
- Innovative approach using cutting-edge technology
- Scalable business model

## Market Opportunity
- TAM: $X billion
- SAM: $Y billion
- SOM: $Z million

## Business Model
- SaaS subscription model
- B2B2C marketplace approach`

const bankOutline = `# %s 사업계획서 (대출용)

## 1. 회사 개요
- 회사명: %s
- 사업 분야: %s
- 설립 연도: 2024년

## 2. 사업 현황
- 안정적인 매출 구조
- 검증된 비즈니스 모델
%s

## 3. 재무 현황
- 최근 3년 매출 성장률
- 부채 비율 및 유동성

## 4. 대출 상환 계획
- 예상 현금 흐름
- 담보 제공 계획`
