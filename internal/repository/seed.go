package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

// 种子用户 ID
const (
	SeedDepartmentAdminID  = "usr_001"
	SeedInstitutionAdminID = "usr_inst_001"
)

// Seed 存储为空时写入门户初始数据
// passwordHash 为两个种子用户共用的 bcrypt 哈希；loc 为消息与提醒时间所在时区
// 返回 false 表示已有数据，未写入
func (r *Repository) Seed(ctx context.Context, passwordHash string, loc *time.Location) (bool, error) {
	n, err := r.ProblemStatement.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("统计问题陈述失败: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	dept := seedDepartment()
	if err := r.Department.Create(ctx, &dept); err != nil {
		return false, fmt.Errorf("写入种子部门失败: %w", err)
	}
	for _, u := range seedUsers(passwordHash) {
		u := u
		if err := r.User.Create(ctx, &u); err != nil {
			return false, fmt.Errorf("写入种子用户 %s 失败: %w", u.UserID, err)
		}
	}
	for _, ps := range seedProblemStatements(loc) {
		ps := ps
		if err := r.ProblemStatement.Create(ctx, &ps); err != nil {
			return false, fmt.Errorf("写入种子问题陈述 %s 失败: %w", ps.PSID, err)
		}
	}
	for _, m := range seedMessages(loc) {
		m := m
		if err := r.Message.Create(ctx, &m); err != nil {
			return false, fmt.Errorf("写入种子消息 %s 失败: %w", m.MessageID, err)
		}
	}
	for _, a := range seedAlerts(loc) {
		a := a
		if err := r.Alert.Create(ctx, &a); err != nil {
			return false, fmt.Errorf("写入种子提醒 %s 失败: %w", a.AlertID, err)
		}
	}
	return true, nil
}

func seedDepartment() model.Department {
	return model.Department{
		DepartmentID: "dept_cse",
		Name:         "Computer Science & Engineering",
		FacultyID:    "FAC-CSE-2024",
		Institution:  "National Institute of Technology",
	}
}

func seedUsers(passwordHash string) []model.User {
	return []model.User{
		{
			UserID:       SeedDepartmentAdminID,
			Name:         "Dr. Rajesh Kumar",
			Email:        "rajesh.kumar@university.edu",
			PasswordHash: passwordHash,
			Role:         model.RoleDepartmentAdmin,
			DepartmentID: "dept_cse",
			Phone:        "+91 98765 43210",
		},
		{
			UserID:       SeedInstitutionAdminID,
			Name:         "Institution Admin",
			Email:        "institution.admin@university.edu",
			PasswordHash: passwordHash,
			Role:         model.RoleInstitutionAdmin,
		},
	}
}

func seedProblemStatements(loc *time.Location) []model.ProblemStatement {
	day := func(s string) time.Time {
		t, _ := time.ParseInLocation(model.DateLayout, s, loc)
		return t
	}
	ps := func(id, title, category, theme string, status model.Status, updated, created, owner, spoc, desc string) model.ProblemStatement {
		return model.ProblemStatement{
			PSID: id, Title: title, Category: category, Theme: theme, Status: status,
			LastUpdated: day(updated), CreatedAt: day(created),
			FacultyOwner: owner, AssignedSPOC: spoc, Description: desc,
		}
	}

	return []model.ProblemStatement{
		ps("PS-2024-001", "Smart Campus Energy Management System", "Sustainability", "Green Campus",
			model.StatusApproved, "2024-01-28", "2024-01-10", "Dr. Priya Sharma", "Prof. Anand Verma",
			"Develop an IoT-based energy monitoring and optimization system for campus buildings."),
		ps("PS-2024-002", "AI-Powered Student Attendance Tracking", "EdTech", "Smart Education",
			model.StatusPendingReview, "2024-01-27", "2024-01-15", "Dr. Amit Patel", "Prof. Anand Verma",
			"Facial recognition-based attendance system with real-time analytics."),
		ps("PS-2024-003", "Campus Waste Segregation Platform", "Sustainability", "Green Campus",
			model.StatusSubmitted, "2024-01-26", "2024-01-18", "Dr. Meena Gupta", "Prof. Sanjay Kumar",
			"Mobile app for waste categorization and collection scheduling."),
		ps("PS-2024-004", "Virtual Lab Experiment Simulator", "EdTech", "Digital Learning",
			model.StatusRevisionNeeded, "2024-01-25", "2024-01-12", "Dr. Rajesh Kumar", "Prof. Anand Verma",
			"VR-based simulation platform for conducting physics and chemistry experiments."),
		ps("PS-2024-005", "Campus Food Delivery Optimization", "Operations", "Student Services",
			model.StatusDraft, "2024-01-24", "2024-01-20", "Dr. Sunita Reddy", model.Unassigned,
			"Algorithm for optimizing food delivery routes within campus."),
		ps("PS-2024-006", "Mental Health Support Chatbot", "Healthcare", "Student Wellness",
			model.StatusDraft, "2024-01-23", "2024-01-21", "Dr. Kavita Singh", model.Unassigned,
			"AI chatbot providing 24/7 mental health support and resources."),
	}
}

func seedMessages(loc *time.Location) []model.Message {
	at := func(s string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02T15:04:05", s, loc)
		return t
	}

	return []model.Message{
		{
			MessageID: "msg_001", PSID: "PS-2024-004", PSTitle: "Virtual Lab Experiment Simulator",
			Sender: "Institution Admin", SenderRole: model.SenderInstitutionAdmin,
			Content:   "Please revise the budget section. The proposed costs exceed the allocated funding limit. Also, include more details about the VR hardware requirements.",
			Timestamp: at("2024-01-25T10:30:00"),
		},
		{
			MessageID: "msg_002", PSID: "PS-2024-002", PSTitle: "AI-Powered Student Attendance Tracking",
			Sender: "Institution Admin", SenderRole: model.SenderInstitutionAdmin,
			Content:   "This proposal looks promising. We need additional documentation on data privacy compliance. Please provide GDPR and local regulations adherence details.",
			Timestamp: at("2024-01-27T14:15:00"),
		},
		{
			MessageID: "msg_003", PSID: "PS-2024-001", PSTitle: "Smart Campus Energy Management System",
			Sender: "Institution Admin", SenderRole: model.SenderInstitutionAdmin,
			Content:   "Congratulations! Your problem statement has been approved. You may proceed with team formation and implementation planning.",
			Timestamp: at("2024-01-28T09:00:00"),
			IsRead:    true,
		},
	}
}

func seedAlerts(loc *time.Location) []model.Alert {
	at := func(s string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02T15:04:05", s, loc)
		return t
	}

	return []model.Alert{
		{AlertID: "alert_001", Type: model.AlertOverdue, Title: "PS Pending Approval",
			Description: "Virtual Lab Experiment Simulator requires revision within 3 days",
			Timestamp:   at("2024-01-28T08:00:00"), Priority: model.PriorityHigh},
		{AlertID: "alert_002", Type: model.AlertReminder, Title: "Submission Deadline",
			Description: "Next batch submission closes in 5 days",
			Timestamp:   at("2024-01-28T07:00:00"), Priority: model.PriorityMedium},
		{AlertID: "alert_003", Type: model.AlertMessage, Title: "New Feedback",
			Description: "Institution Admin sent feedback on AI Attendance system",
			Timestamp:   at("2024-01-27T14:15:00"), Priority: model.PriorityMedium},
		{AlertID: "alert_004", Type: model.AlertApproval, Title: "PS Approved",
			Description: "Smart Campus Energy Management System approved",
			Timestamp:   at("2024-01-28T09:00:00"), Priority: model.PriorityLow},
	}
}
