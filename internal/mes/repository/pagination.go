package repository

// 分页边界
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Paginate 将请求的limit/offset收敛到安全区间。
// limit 缺失或<=0取默认值，超过上限取上限；offset 缺失或为负取0。
// 对任意输入都有确定结果，不会失败。
func Paginate(limit, offset *int) (int, int) {
	l := DefaultLimit
	if limit != nil && *limit > 0 {
		l = *limit
		if l > MaxLimit {
			l = MaxLimit
		}
	}
	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}
