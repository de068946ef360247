package shop

import "fmt"

// DeleteOutcome 删除结果
type DeleteOutcome string

const (
	Deleted DeleteOutcome = "DELETED"
	Refused DeleteOutcome = "REFUSED"
)

// DeleteResult reports a delete guarded by a child-count invariant.
// A refusal is a normal outcome, not an error.
type DeleteResult struct {
	Outcome       DeleteOutcome `json:"outcome"`
	BlockingCount int64         `json:"blockingCount,omitempty"`
	Reason        string        `json:"reason,omitempty"`
}

func (r DeleteResult) IsDeleted() bool { return r.Outcome == Deleted }

func deleted() DeleteResult { return DeleteResult{Outcome: Deleted} }

func refused(children string, count int64) DeleteResult {
	return DeleteResult{
		Outcome:       Refused,
		BlockingCount: count,
		Reason:        fmt.Sprintf("delete the %d remaining %s first", count, children),
	}
}

// GuardBoardDelete decides a board delete from its article count.
func GuardBoardDelete(articleCount int64) DeleteResult {
	if articleCount == 0 {
		return deleted()
	}
	return refused("article(s)", articleCount)
}

// GuardCategoryDelete decides a category delete from its product count.
func GuardCategoryDelete(productCount int64) DeleteResult {
	if productCount == 0 {
		return deleted()
	}
	return refused("product(s)", productCount)
}
