package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/metrics"
)

// ── 审核模块业务错误 ──

var (
	ErrExportNoItems      = errors.New("暂无已提交的问题陈述")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ReviewService 审核跟踪与机构侧审核接口
//
// 部门侧只读：列表、指标与导出
// 机构侧推进状态：开始审核、批准、退回修改（退回时附带反馈消息）
type ReviewService interface {
	List(ctx context.Context) (*dto.ReviewListResponse, error)
	BeginReview(ctx context.Context, id string) (*dto.ProblemStatementResponse, error)
	Approve(ctx context.Context, id string) (*dto.ProblemStatementResponse, error)
	RequestRevision(ctx context.Context, actorID, id string, req *dto.RequestRevisionRequest) (*dto.ProblemStatementResponse, error)
	// ExportXLSX 导出全部已提交问题陈述，返回内容与建议文件名
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	// DeadlineICS 生成提交截止日的日历事件
	DeadlineICS(ctx context.Context) ([]byte, string, error)
}

type reviewService struct {
	repo   *repository.Repository
	cal    *calendar
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, cal *calendar, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, cal: cal, logger: logger}
}

// reviewable 已离开 draft 的问题陈述
func (s *reviewService) reviewable(ctx context.Context) ([]model.ProblemStatement, error) {
	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, err
	}

	var out []model.ProblemStatement
	for _, ps := range list {
		if ps.Status != model.StatusDraft {
			out = append(out, ps)
		}
	}
	return out, nil
}

func (s *reviewService) List(ctx context.Context) (*dto.ReviewListResponse, error) {
	items, err := s.reviewable(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.repo.Alert.List(ctx)
	if err != nil {
		s.logger.Error("查询提醒失败", zap.Error(err))
		return nil, err
	}

	m := AggregateMetrics(items, s.cal.DaysUntilDeadline(), s.cal.DeadlineString())
	return &dto.ReviewListResponse{
		Items: toProblemStatementResponses(items),
		Metrics: dto.ReviewMetrics{
			PendingReview:     m.PendingReview,
			Approved:          m.Approved,
			RevisionNeeded:    m.RevisionNeeded,
			DeadlineDate:      m.DeadlineDate,
			DaysUntilDeadline: m.DaysUntilDeadline,
			Urgent:            m.Urgent,
		},
		Alerts: toAlertResponses(alerts),
	}, nil
}

func (s *reviewService) BeginReview(ctx context.Context, id string) (*dto.ProblemStatementResponse, error) {
	return s.fire(ctx, id, model.EventBeginReview)
}

func (s *reviewService) Approve(ctx context.Context, id string) (*dto.ProblemStatementResponse, error) {
	return s.fire(ctx, id, model.EventApprove)
}

func (s *reviewService) RequestRevision(ctx context.Context, actorID, id string, req *dto.RequestRevisionRequest) (*dto.ProblemStatementResponse, error) {
	feedback := strings.TrimSpace(req.Feedback)
	if feedback == "" {
		return nil, newValidationError("feedback", "退回修改需填写反馈意见")
	}

	actor, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ps, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := planTransition(ps, model.EventRequestRevision, s.cal.Today())
	if err != nil {
		return nil, err
	}

	// 状态迁移与反馈消息同成同败
	msg := &model.Message{
		MessageID:  "msg_" + uuid.NewString(),
		PSID:       ps.PSID,
		PSTitle:    ps.Title,
		Sender:     actor.Name,
		SenderRole: model.SenderInstitutionAdmin,
		Content:    feedback,
		Timestamp:  s.cal.Now(),
	}
	if err := s.repo.ProblemStatement.TransitionWithMessage(ctx, t, msg); err != nil {
		s.logger.Warn("退回修改失败", zap.String("id", id), zap.Error(err))
		return nil, translateTransitionError(err)
	}
	metrics.RecordTransition(string(t.From), string(t.To))

	s.logger.Info("已退回修改", zap.String("id", id), zap.String("actor", actorID))
	ps.Status = t.To
	ps.LastUpdated = t.On
	resp := toProblemStatementResponse(ps)
	return &resp, nil
}

func (s *reviewService) load(ctx context.Context, id string) (*model.ProblemStatement, error) {
	ps, err := s.repo.ProblemStatement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, ErrProblemStatementNotFound
		}
		s.logger.Error("查询问题陈述失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return ps, nil
}

// fire 对单条问题陈述施加事件
func (s *reviewService) fire(ctx context.Context, id string, event model.Event) (*dto.ProblemStatementResponse, error) {
	ps, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := planTransition(ps, event, s.cal.Today())
	if err != nil {
		return nil, err
	}
	if err := applyTransition(ctx, s.repo, t); err != nil {
		s.logger.Warn("状态迁移失败", zap.String("id", id), zap.String("event", string(event)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("状态已迁移",
		zap.String("id", id),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
	)
	ps.Status = t.To
	ps.LastUpdated = t.On
	resp := toProblemStatementResponse(ps)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 导出审核列表
// ═══════════════════════════════════════════════════════════
//
// 单 Sheet：标题行 + 表头 + 每条问题陈述一行

func (s *reviewService) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.reviewable(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", ErrExportNoItems
	}

	f := excelize.NewFile()
	defer f.Close()

	title := fmt.Sprintf("Problem Statements under review (deadline %s)", s.cal.DeadlineString())
	if err := writeReviewSheet(f, reviewSheetName, title, items); err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("reviews_%s.xlsx", s.cal.Today().Format(model.DateLayout))
	return buf, filename, nil
}

const reviewSheetName = "Reviews"

var (
	reviewHeaders = []string{"ID", "Title", "Category", "Theme", "Faculty Owner", "Assigned SPOC", "Status", "Created", "Last Updated"}
	reviewWidths  = []float64{14, 40, 16, 20, 20, 20, 16, 12, 14}
)

// writeReviewSheet 写入审核 Sheet 并设为活动页，返回遇到的第一个错误
func writeReviewSheet(f *excelize.File, sheet, title string, items []model.ProblemStatement) error {
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("创建 Sheet 失败: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("删除默认 Sheet 失败: %w", err)
		}
	}

	for i, w := range reviewWidths {
		col := colName(i)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("设置列宽失败: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}

	lastCol := colName(len(reviewHeaders) - 1)

	// 标题行
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("写入标题失败: %w", err)
	}
	if err := f.MergeCell(sheet, "A1", cell(lastCol, 1)); err != nil {
		return fmt.Errorf("合并标题失败: %w", err)
	}

	// 表头
	header := make([]interface{}, len(reviewHeaders))
	for i, h := range reviewHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A2", cell(lastCol, 2), headerStyle); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}

	// 数据行
	for r, ps := range items {
		values := []interface{}{
			ps.PSID,
			ps.Title,
			ps.Category,
			ps.Theme,
			ps.FacultyOwner,
			ps.AssignedSPOC,
			ps.Status.Display().Label,
			ps.CreatedAt.Format(model.DateLayout),
			ps.LastUpdated.Format(model.DateLayout),
		}
		if err := f.SetSheetRow(sheet, cell("A", r+3), &values); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", ps.PSID, err)
		}
	}
	return nil
}

// DeadlineICS 截止日全天事件，提前一天提醒
func (s *reviewService) DeadlineICS(ctx context.Context) ([]byte, string, error) {
	list, err := s.repo.ProblemStatement.List(ctx)
	if err != nil {
		s.logger.Error("查询问题陈述列表失败", zap.Error(err))
		return nil, "", err
	}
	pending := len(ReadySet(list))

	deadline := s.cal.deadline
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//inCamp//Department Admin Portal//EN")

	event := cal.AddEvent(fmt.Sprintf("submission-deadline-%s@incamp", deadline.Format("20060102")))
	event.SetDtStampTime(time.Now().UTC())
	event.SetAllDayStartAt(deadline)
	event.SetAllDayEndAt(deadline.AddDate(0, 0, 1))
	event.SetSummary("inCamp problem statement submission deadline")
	event.SetDescription(fmt.Sprintf("%d problem statement(s) not yet submitted to the institution.", pending))

	alarm := event.AddAlarm()
	alarm.SetAction(ics.ActionDisplay)
	alarm.SetTrigger("-P1D")

	filename := fmt.Sprintf("deadline_%s.ics", deadline.Format(model.DateLayout))
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
