package service

import (
	"math"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

// urgentWithinDays 距截止日少于该天数视为紧急
const urgentWithinDays = 3

// calendar 门户日历：时区、截止日与当前时间
type calendar struct {
	loc      *time.Location
	deadline time.Time
	now      func() time.Time
}

func newCalendar(cfg *config.PortalConfig) *calendar {
	return &calendar{
		loc:      cfg.Location(),
		deadline: cfg.DeadlineDate(),
		now:      time.Now,
	}
}

// Now 门户时区下的当前时间
func (c *calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today 门户时区下的今天零点
func (c *calendar) Today() time.Time {
	return model.TruncateDay(c.now(), c.loc)
}

// DaysUntilDeadline 今天到截止日的日历天数，已过期为负
func (c *calendar) DaysUntilDeadline() int {
	return daysBetween(c.Today(), c.deadline)
}

// DeadlineString 截止日 YYYY-MM-DD
func (c *calendar) DeadlineString() string {
	return c.deadline.Format(model.DateLayout)
}

// daysBetween 两个零点之间的天数（四舍五入以吸收夏令时偏移）
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
