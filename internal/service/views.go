package service

import (
	"sort"
	"strings"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/dto"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

// ── 派生视图（纯函数，每次请求基于全量数据重新计算） ──

// AggregateMetrics 单次遍历统计仪表盘指标
func AggregateMetrics(list []model.ProblemStatement, daysUntilDeadline int, deadline string) dto.DashboardMetrics {
	m := dto.DashboardMetrics{
		TotalPrepared:     len(list),
		DeadlineDate:      deadline,
		DaysUntilDeadline: daysUntilDeadline,
		Urgent:            daysUntilDeadline < urgentWithinDays,
	}
	for _, ps := range list {
		switch ps.Status {
		case model.StatusPendingReview:
			m.PendingReview++
		case model.StatusApproved:
			m.Approved++
		case model.StatusRevisionNeeded:
			m.RevisionNeeded++
		}
		if ps.Status != model.StatusDraft {
			m.SubmittedToInstitution++
		}
	}
	return m
}

// BuildStages 计算提交周期阶段
// 活动阶段为未批准记录中推进最远的阶段，其之前的阶段视为完成
func BuildStages(list []model.ProblemStatement) []dto.StageResponse {
	active := model.PhaseDraft
	allApproved := len(list) > 0
	for _, ps := range list {
		if ps.Status == model.StatusApproved {
			continue
		}
		allApproved = false
		if p := ps.Status.Phase(); p > active {
			active = p
		}
	}

	stages := make([]dto.StageResponse, 0, len(model.Phases))
	for _, p := range model.Phases {
		st := dto.StageResponse{ID: p.ID(), Label: p.Label()}
		switch {
		case allApproved:
			st.Completed = true
		case p < active:
			st.Completed = true
		case p == active:
			st.Active = true
		}
		stages = append(stages, st)
	}
	return stages
}

// RecentProblemStatements 最近更新的前 limit 条
func RecentProblemStatements(list []model.ProblemStatement, limit int) []model.ProblemStatement {
	sorted := append([]model.ProblemStatement(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdated.After(sorted[j].LastUpdated)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FilterProblemStatements 标题或分类不区分大小写的子串匹配，空查询返回全部
func FilterProblemStatements(list []model.ProblemStatement, query string) []model.ProblemStatement {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)

	var out []model.ProblemStatement
	for _, ps := range list {
		if strings.Contains(strings.ToLower(ps.Title), q) ||
			strings.Contains(strings.ToLower(ps.Category), q) {
			out = append(out, ps)
		}
	}
	return out
}

// ReadySet 可提交集合：draft 与 revision_needed
func ReadySet(list []model.ProblemStatement) []model.ProblemStatement {
	var out []model.ProblemStatement
	for _, ps := range list {
		if ps.Status.ReadyToSubmit() {
			out = append(out, ps)
		}
	}
	return out
}

// Thread 按问题陈述分组的消息会话
type Thread struct {
	PSID     string
	PSTitle  string
	Messages []model.Message // 按时间升序
	Unread   int
}

// Latest 最后一条消息
func (t *Thread) Latest() model.Message {
	return t.Messages[len(t.Messages)-1]
}

// GroupThreads 按 psId 分组；会话内按时间升序，会话间按最近活动倒序
func GroupThreads(msgs []model.Message) []Thread {
	index := make(map[string]int)
	var threads []Thread
	for _, m := range msgs {
		i, ok := index[m.PSID]
		if !ok {
			i = len(threads)
			index[m.PSID] = i
			threads = append(threads, Thread{PSID: m.PSID, PSTitle: m.PSTitle})
		}
		threads[i].Messages = append(threads[i].Messages, m)
		if !m.IsRead {
			threads[i].Unread++
		}
	}

	for i := range threads {
		t := &threads[i]
		sort.SliceStable(t.Messages, func(a, b int) bool {
			return t.Messages[a].Timestamp.Before(t.Messages[b].Timestamp)
		})
	}
	sort.SliceStable(threads, func(a, b int) bool {
		la, lb := threads[a].Latest().Timestamp, threads[b].Latest().Timestamp
		if !la.Equal(lb) {
			return la.After(lb)
		}
		return threads[a].PSID < threads[b].PSID
	})
	return threads
}

// ── model → dto ──

func toProblemStatementResponse(ps *model.ProblemStatement) dto.ProblemStatementResponse {
	d := ps.Status.Display()
	return dto.ProblemStatementResponse{
		ID:           ps.PSID,
		Title:        ps.Title,
		Category:     ps.Category,
		Theme:        ps.Theme,
		Description:  ps.Description,
		FacultyOwner: ps.FacultyOwner,
		AssignedSPOC: ps.AssignedSPOC,
		Status:       string(ps.Status),
		StatusLabel:  d.Label,
		StatusTone:   string(d.Tone),
		CreatedAt:    ps.CreatedAt.Format(model.DateLayout),
		LastUpdated:  ps.LastUpdated.Format(model.DateLayout),
		Editable:     ps.Status.Editable(),
		Deletable:    ps.Status.Deletable(),
	}
}

func toProblemStatementResponses(list []model.ProblemStatement) []dto.ProblemStatementResponse {
	out := make([]dto.ProblemStatementResponse, 0, len(list))
	for i := range list {
		out = append(out, toProblemStatementResponse(&list[i]))
	}
	return out
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         m.MessageID,
		PSID:       m.PSID,
		PSTitle:    m.PSTitle,
		Sender:     m.Sender,
		SenderRole: string(m.SenderRole),
		Content:    m.Content,
		Timestamp:  m.Timestamp.Format(time.RFC3339),
		IsRead:     m.IsRead,
	}
}

func toAlertResponses(list []model.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AlertResponse{
			ID:          a.AlertID,
			Type:        string(a.Type),
			Title:       a.Title,
			Description: a.Description,
			Timestamp:   a.Timestamp.Format(time.RFC3339),
			Priority:    string(a.Priority),
		})
	}
	return out
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Phone: u.Phone,
	}
	if u.Department != nil {
		resp.Department = &dto.DepartmentResponse{
			ID:          u.Department.DepartmentID,
			Name:        u.Department.Name,
			FacultyID:   u.Department.FacultyID,
			Institution: u.Department.Institution,
		}
	}
	return resp
}
