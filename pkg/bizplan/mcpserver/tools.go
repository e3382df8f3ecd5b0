package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/bizplan-go/pkg/bizplan"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/imaging"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Title of the section that carries the extracted table.
const dataSectionTitle = "데이터 분석"

func convertTool() mcp.Tool {
	return mcp.NewTool("convert_excel_to_docx",
		mcp.WithDescription("Excel 데이터를 DOCX 문서로 변환 (한글 특수문자 자동 처리)"),
		mcp.WithString("excelPath", mcp.Required(), mcp.Description("Excel 파일 경로")),
		mcp.WithString("templateType", mcp.Required(),
			mcp.Enum(string(templates.Basic), string(templates.Government), string(templates.VC)),
			mcp.Description("사업계획서 템플릿 유형")),
		mcp.WithString("outputPath", mcp.Description("출력 DOCX 파일 경로")),
		mcp.WithObject("companyInfo", mcp.Required(),
			mcp.Description("회사 정보 (name 필수; ceo, address, phone, email 선택)"),
			mcp.Properties(map[string]any{
				"name":    map[string]any{"type": "string"},
				"ceo":     map[string]any{"type": "string"},
				"address": map[string]any{"type": "string"},
				"phone":   map[string]any{"type": "string"},
				"email":   map[string]any{"type": "string"},
			})),
	)
}

func (s *Server) handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	excelPath, err := req.RequireString("excelPath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := templates.ParseKind(req.GetString("templateType", ""))
	if err != nil {
		return errorResult(err), nil
	}
	company, err := companyInfo(req.GetArguments()["companyInfo"])
	if err != nil {
		return errorResult(err), nil
	}

	res, err := bizplan.Extract(excelPath, bizplan.DefaultOptions())
	if err != nil {
		return errorResult(fmt.Errorf("Excel 처리 실패: %w", err)), nil
	}

	tpl, err := templates.New(kind, company)
	if err != nil {
		return errorResult(err), nil
	}
	templates.AppendTable(tpl, dataSectionTitle, res.Table)

	out := req.GetString("outputPath", "")
	if out == "" {
		out = s.cfg.OutputPath(templates.FileName(company.Name))
	}
	gen, err := s.generator(true).GenerateFile(out, tpl)
	if err != nil {
		return errorResult(fmt.Errorf("문서 생성 실패: %w", err)), nil
	}

	log.Info().Str("file", gen.FilePath).Int("tables", gen.TableCount).Msg("document generated")
	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ 문서 생성 완료!\n\n📄 파일: %s\n📊 테이블: %d개\n⏱️ 처리 시간: %dms",
		gen.FilePath, gen.TableCount, gen.ProcessingTime.Milliseconds())), nil
}

// companyInfo decodes the companyInfo tool argument.
func companyInfo(arg any) (models.CompanyInfo, error) {
	var info models.CompanyInfo
	if arg == nil {
		return info, errors.New("companyInfo is required")
	}
	raw, err := json.Marshal(arg)
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return info, fmt.Errorf("companyInfo: %w", err)
	}
	if strings.TrimSpace(info.Name) == "" {
		return info, errors.New("companyInfo.name is required")
	}
	return info, nil
}

func specialCharsTool() mcp.Tool {
	return mcp.NewTool("process_special_chars",
		mcp.WithDescription("한글 특수문자 변환 (㈜→(주), ①→(1) 등)"),
		mcp.WithString("text", mcp.Required(), mcp.Description("변환할 텍스트")),
	)
}

func (s *Server) handleSpecialChars(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	converted, n := s.normalizer.ConvertSpecialChars(text)
	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ 특수문자 변환 완료 (%d개)\n\n원본:\n%s\n\n변환:\n%s", n, text, converted)), nil
}

func optimizeImageTool() mcp.Tool {
	return mcp.NewTool("optimize_image",
		mcp.WithDescription("문서용 이미지 최적화"),
		mcp.WithString("imagePath", mcp.Required(), mcp.Description("이미지 파일 경로")),
		mcp.WithNumber("maxWidth", mcp.Description("최대 너비 (픽셀)"), mcp.DefaultNumber(imaging.DefaultMaxWidth)),
		mcp.WithNumber("quality", mcp.Description("품질 (1-100)"), mcp.DefaultNumber(imaging.DefaultQuality)),
	)
}

func (s *Server) handleOptimizeImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("imagePath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := imaging.DocumentOptions()
	opts.MaxWidth = req.GetInt("maxWidth", imaging.DefaultMaxWidth)
	opts.Quality = req.GetInt("quality", imaging.DefaultQuality)

	res, err := imaging.OptimizeFile(path, opts)
	if err != nil {
		return errorResult(fmt.Errorf("이미지 처리 실패: %w", err)), nil
	}

	out := s.cfg.OutputPath(optimizedName(path, res.Metadata.Format))
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ 이미지 최적화 완료!\n\n📄 파일: %s\n📏 크기: %dx%d\n💾 원본: %s\n💾 최적화: %s\n📉 압축률: %d%% 감소",
		out, res.Metadata.Width, res.Metadata.Height,
		imaging.FormatFileSize(res.SizeBefore), imaging.FormatFileSize(res.SizeAfter),
		res.CompressionRatio())), nil
}

// optimizedName derives a unique output name from the source file name.
func optimizedName(src string, format imaging.Format) string {
	ext := ".jpg"
	if format == imaging.PNG {
		ext = ".png"
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], ext)
}

func analyzeTool() mcp.Tool {
	return mcp.NewTool("analyze_excel",
		mcp.WithDescription("Excel 데이터 분석 및 테이블 구조 확인"),
		mcp.WithString("excelPath", mcp.Required(), mcp.Description("Excel 파일 경로")),
		mcp.WithString("sheetName", mcp.Description("시트 이름 (선택)")),
	)
}

func (s *Server) handleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("excelPath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := bizplan.DefaultOptions()
	opts.SheetName = req.GetString("sheetName", "")

	res, err := bizplan.Extract(path, opts)
	if err != nil {
		return errorResult(fmt.Errorf("Excel 분석 실패: %w", err)), nil
	}
	return mcp.NewToolResultText(analysisReport(res)), nil
}

func analysisReport(res *bizplan.Result) string {
	t := res.Table
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Excel 분석 결과\n\n📋 시트: %s\n📏 크기: %d행 x %d열\n🔤 인코딩: %s\n✨ 특수문자: %d개 발견\n\n",
		t.Metadata.SheetName, t.TotalRows, t.TotalCols, t.Metadata.Encoding, t.Metadata.SpecialCharsConverted)
	switch {
	case !res.Validation.Valid:
		b.WriteString("⚠️ 문제 발견:\n" + strings.Join(res.Validation.Issues, "\n"))
	case len(res.Warnings) > 0:
		b.WriteString("✅ 데이터 구조 정상\n\n참고:\n" + strings.Join(res.Warnings, "\n"))
	default:
		b.WriteString("✅ 데이터 구조 정상")
	}
	return b.String()
}

func planTool() mcp.Tool {
	return mcp.NewTool("generate_business_plan",
		mcp.WithDescription("대상 기관별 사업계획서 초안 생성"),
		mcp.WithString("companyName", mcp.Required(), mcp.Description("회사명")),
		mcp.WithString("businessType", mcp.Required(), mcp.Description("사업 분야")),
		mcp.WithString("targetAudience", mcp.Required(),
			mcp.Enum(string(templates.AudienceGovernment), string(templates.AudienceVC), string(templates.AudienceBank)),
			mcp.Description("대상 기관")),
		mcp.WithArray("keyPoints", mcp.Description("핵심 포인트들"), mcp.Items(map[string]any{"type": "string"})),
	)
}

func (s *Server) handleGeneratePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("companyName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	business, err := req.RequireString("businessType")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	audience := templates.Audience(req.GetString("targetAudience", string(templates.AudienceGovernment)))
	points := req.GetStringSlice("keyPoints", nil)

	return mcp.NewToolResultText(templates.Outline(audience, company, business, points)), nil
}
