package model

import "fmt"

// ── 问题陈述生命周期 ──
//
//   draft ──submit──▶ submitted ──begin_review──▶ pending_review ──approve──▶ approved
//                        ▲                              │
//                        └──────resubmit── revision_needed ◀──request_revision
//
// approved 为终态；删除仅允许在 draft。

// Status 问题陈述状态
type Status string

const (
	StatusDraft          Status = "draft"
	StatusSubmitted      Status = "submitted"
	StatusPendingReview  Status = "pending_review"
	StatusApproved       Status = "approved"
	StatusRevisionNeeded Status = "revision_needed"
)

// AllStatuses 按生命周期顺序列出全部状态
var AllStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusPendingReview,
	StatusApproved,
	StatusRevisionNeeded,
}

// Event 触发状态迁移的事件
type Event string

const (
	EventSubmit          Event = "submit"
	EventBeginReview     Event = "begin_review"
	EventApprove         Event = "approve"
	EventRequestRevision Event = "request_revision"
	EventResubmit        Event = "resubmit"
)

type edge struct {
	from  Status
	event Event
}

var transitions = map[edge]Status{
	{StatusDraft, EventSubmit}:                  StatusSubmitted,
	{StatusSubmitted, EventBeginReview}:         StatusPendingReview,
	{StatusPendingReview, EventApprove}:         StatusApproved,
	{StatusPendingReview, EventRequestRevision}: StatusRevisionNeeded,
	{StatusRevisionNeeded, EventResubmit}:       StatusSubmitted,
}

// ParseStatus 将外部输入解析为 Status，未知值返回 false
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusPendingReview, StatusApproved, StatusRevisionNeeded:
		return true
	}
	return false
}

// Next 返回 event 作用于 s 后的状态；迁移表中不存在的边返回 false
func (s Status) Next(event Event) (Status, bool) {
	to, ok := transitions[edge{s, event}]
	return to, ok
}

// Editable 仅 draft 与 revision_needed 允许编辑
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusRevisionNeeded
}

// Deletable 仅 draft 允许删除
func (s Status) Deletable() bool {
	return s == StatusDraft
}

// ReadyToSubmit draft 与 revision_needed 可进入提交批次
func (s Status) ReadyToSubmit() bool {
	return s == StatusDraft || s == StatusRevisionNeeded
}

// SubmitEvent 返回将 s 提交到机构所用的事件
func (s Status) SubmitEvent() (Event, bool) {
	switch s {
	case StatusDraft:
		return EventSubmit, true
	case StatusRevisionNeeded:
		return EventResubmit, true
	}
	return "", false
}

// Terminal 是否为终态
func (s Status) Terminal() bool {
	return s == StatusApproved
}

// ── 展示映射 ──

// Tone 状态徽章的视觉分类
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneAlert   Tone = "alert"
)

// Display 状态展示信息
type Display struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// Display 返回状态的标签与视觉分类
// 映射对枚举是全函数；未知状态属于编程错误，直接 panic
func (s Status) Display() Display {
	switch s {
	case StatusDraft:
		return Display{Label: "Draft", Tone: ToneNeutral}
	case StatusSubmitted:
		return Display{Label: "Submitted", Tone: ToneInfo}
	case StatusPendingReview:
		return Display{Label: "Pending Review", Tone: ToneWarning}
	case StatusApproved:
		return Display{Label: "Approved", Tone: ToneSuccess}
	case StatusRevisionNeeded:
		return Display{Label: "Revision Needed", Tone: ToneAlert}
	}
	panic(fmt.Sprintf("model: 未知的问题陈述状态 %q", string(s)))
}

// ── 提交周期阶段（四个粗粒度阶段） ──

// Phase 提交周期阶段
type Phase int

const (
	PhaseDraft Phase = iota
	PhaseDepartmentReview
	PhaseInstitutionReview
	PhaseApproved
)

// Phases 按顺序列出阶段
var Phases = []Phase{PhaseDraft, PhaseDepartmentReview, PhaseInstitutionReview, PhaseApproved}

// ID 阶段标识
func (p Phase) ID() string {
	switch p {
	case PhaseDraft:
		return "draft"
	case PhaseDepartmentReview:
		return "department_review"
	case PhaseInstitutionReview:
		return "institution_review"
	case PhaseApproved:
		return "approved"
	}
	panic(fmt.Sprintf("model: 未知阶段 %d", int(p)))
}

// Label 阶段显示名
func (p Phase) Label() string {
	switch p {
	case PhaseDraft:
		return "Draft"
	case PhaseDepartmentReview:
		return "Department Review"
	case PhaseInstitutionReview:
		return "Institution Review"
	case PhaseApproved:
		return "Approved"
	}
	panic(fmt.Sprintf("model: 未知阶段 %d", int(p)))
}

// Phase 状态所属的粗粒度阶段
func (s Status) Phase() Phase {
	switch s {
	case StatusDraft:
		return PhaseDraft
	case StatusSubmitted:
		return PhaseDepartmentReview
	case StatusPendingReview, StatusRevisionNeeded:
		return PhaseInstitutionReview
	case StatusApproved:
		return PhaseApproved
	}
	panic(fmt.Sprintf("model: 未知的问题陈述状态 %q", string(s)))
}
