package phone

import "strings"

// Format 将自由输入的电话号码整理为统一的展示格式
// 支持 +1 北美号码、带国家区号的国际号码以及本地十位号码
func Format(raw string) string {
	cleaned := clean(raw)
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		// 北美号码特殊处理：+1 (AAA) BBB-CCCC
		if strings.HasPrefix(cleaned, "+1") && len(cleaned) == 12 {
			return "+1 (" + cleaned[2:5] + ") " + cleaned[5:8] + "-" + cleaned[8:]
		}

		// 其余国际号码：提取 1-3 位国家区号，剩余部分按 3 位分组
		if len(cleaned) > 3 {
			ccLen := countryCodeLength(cleaned)
			if ccLen > 0 {
				var b strings.Builder
				b.WriteString(cleaned[:1+ccLen])
				rest := cleaned[1+ccLen:]
				for i := 0; i < len(rest); i += 3 {
					end := i + 3
					if end > len(rest) {
						end = len(rest)
					}
					b.WriteString(" ")
					b.WriteString(rest[i:end])
				}
				return b.String()
			}
		}

		return cleaned
	}

	// 本地十位号码：(AAA) BBB-CCCC
	if len(cleaned) == 10 {
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	}

	// 兜底格式：按 3 位分组增加可读性
	var b strings.Builder
	for i := 0; i < len(cleaned); i += 3 {
		end := i + 3
		if end > len(cleaned) {
			end = len(cleaned)
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(cleaned[i:end])
	}
	return b.String()
}

// Validate 校验电话号码是否可接受，空字符串视为有效（可选字段）
func Validate(raw string) bool {
	if raw == "" {
		return true
	}

	cleaned := clean(raw)
	if len(cleaned) < 7 {
		return false
	}

	// 加号只允许出现在最前面
	if strings.Contains(cleaned, "+") && !strings.HasPrefix(cleaned, "+") {
		return false
	}

	// 带国家区号时，加号之后至少需要 7 位数字
	if strings.HasPrefix(cleaned, "+") && len(cleaned) < 8 {
		return false
	}

	return true
}

// clean 去掉除数字和加号以外的全部字符
func clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// countryCodeLength 返回紧跟在加号后的国家区号长度，最多取 3 位
func countryCodeLength(cleaned string) int {
	n := 0
	for i := 1; i < len(cleaned) && n < 3; i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			break
		}
		n++
	}
	return n
}
