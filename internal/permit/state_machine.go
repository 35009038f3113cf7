package permit

import (
	"fmt"
	"time"
)

// DefaultActor HR 操作人缺省标识（操作人身份不可用时落库用）。
const DefaultActor = "HR Manager"

// AllowTransition 定义许可状态机的允许流转关系。
// pending 是唯一可流出状态；approved / rejected 为终态，不允许再流转，
// 即一条许可只能被裁决一次（重复裁决会被拒绝，而不是静默覆盖）。
var AllowTransition = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
func CanTransition(from, to Status) bool {
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyDecision 对许可应用 HR 裁决，并一次性写入全部 HR 字段
// （状态、评语、操作时间、操作人），保持原子语义。
// 仅在 CanTransition 返回 true 时生效。
func ApplyDecision(p *Permit, to Status, comments, actor string, now time.Time) error {
	if p == nil {
		return fmt.Errorf("permit is nil")
	}
	if !CanTransition(p.Status, to) {
		return fmt.Errorf("invalid permit status transition: %s -> %s", p.Status, to)
	}
	if actor == "" {
		actor = DefaultActor
	}

	p.Status = to
	p.HRComments = comments
	t := now
	p.HRActionAt = &t
	p.HRActionBy = actor
	return nil
}
