package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEvents     = errors.New("暂无可导出的日程")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const icsProductID = "-//HackathonApp//Planner//EN"

// ═══════════════════════════════════════════════════════════
// ExportICS 导出 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个课程事件（课程 × 上课星期）导出为一个按周重复的 VEVENT，
// 作业与待办导出为起止相同的单次 VEVENT。

func (s *calendarService) ExportICS(ctx context.Context, userID string) ([]byte, string, error) {
	today := s.today()
	events, err := s.events(ctx, userID, today)
	if err != nil {
		return nil, "", err
	}
	if len(events) == 0 {
		return nil, "", ErrExportNoEvents
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Planner")
	cal.SetXWRTimezone(s.loc.String())

	stamp := s.now().UTC()
	for _, e := range events {
		vevent := cal.AddEvent(e.ID + "@planner")
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(e.Name)
		vevent.SetStartAt(e.Start)
		vevent.SetEndAt(e.End)
		vevent.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(e.Kind)))
		if e.Kind == calendar.KindClass {
			vevent.AddRrule("FREQ=WEEKLY")
		}
	}

	filename := fmt.Sprintf("planner_%s.ics", today.Format("20060102"))
	return []byte(cal.Serialize()), filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWeekExcel 导出周课表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：小时（00:00 ~ 23:00）
//   - 列头：周首日起 7 天
//   - 单元格：该小时内开始的事件 "HH:MM-HH:MM 名称"，多个以换行分隔

func (s *calendarService) ExportWeekExcel(ctx context.Context, userID, date string) ([]byte, string, error) {
	today := s.today()
	anchor, err := s.parseDate(date, today)
	if err != nil {
		return nil, "", err
	}

	events, err := s.events(ctx, userID, today)
	if err != nil {
		return nil, "", err
	}
	columns := calendar.LayoutWeek(anchor, events, s.rowHeight(), s.weekStart())

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "H", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	// 标题行
	first := columns[0].Date
	last := columns[len(columns)-1].Date
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s ~ %s 课表", first.Format(dateLayout), last.Format(dateLayout)))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, cell("A", 2), "时间")
	for i, col := range columns {
		f.SetCellValue(sheetName, cell(colName(1+i), 2), fmt.Sprintf("%s %s", calendar.WeekdayCode(col.Date.Weekday()), col.Date.Format("01-02")))
	}
	f.SetCellStyle(sheetName, "A2", "H2", headerStyle)

	// 数据行：每小时一行
	for hour := 0; hour < 24; hour++ {
		row := 3 + hour
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%02d:00", hour))
		for i, col := range columns {
			var lines []string
			for _, e := range col.Events {
				start := e.Start.In(s.loc)
				if !calendar.SameDate(col.Date, start) || start.Hour() != hour {
					continue
				}
				lines = append(lines, fmt.Sprintf("%s-%s %s", start.Format("15:04"), e.End.In(s.loc).Format("15:04"), e.Name))
			}
			if len(lines) > 0 {
				f.SetCellValue(sheetName, cell(colName(1+i), row), strings.Join(lines, "\n"))
			}
		}
	}
	f.SetCellStyle(sheetName, "B3", "H26", wrapStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课表_%s.xlsx", first.Format("20060102"))
	return buf.Bytes(), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

