package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxTags 单次提取返回的标签数量上限，防止OCR误识别产生超长列表
const maxTags = 30

// 预编译的正则表达式模式，避免重复编译提升性能
var (
	// 括号注释，如 "(captain)"
	parenNotePattern = regexp.MustCompile(`\([^)]*\)`)

	// 行标签前缀，如 "Front Row:"
	rowLabelPattern = regexp.MustCompile(`(?i)^(front|second|third|middle)\s+row\s*:\s*`)

	// 空白符
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// tagStopWords OCR版面结构词停用表 - 这些词来自照片排版说明而非人名
var tagStopWords = map[string]bool{
	"sigma":  true,
	"back":   true,
	"row":    true,
	"front":  true,
	"second": true,
	"third":  true,
	"middle": true,
	"side":   true,
	"group":  true,
}

// ExtractTags 从OCR识别文本中提取人名标签
// 上游OCR返回的是逗号分隔的名单，夹杂行标签、括号注释等版面噪声，
// 按固定顺序清洗、切分、过滤并去重
func ExtractTags(rawText string) []string {
	// 1. 空文本直接返回空列表
	if rawText == "" {
		return []string{}
	}

	// 2. 归一化空白并移除OCR供应商的标记符号
	normalized := normalizeOCRText(rawText)

	// 3. 按逗号切分候选片段
	segments := strings.Split(normalized, ",")

	// 4. 逐段清理，5. 过滤噪声片段，6. 截断到数量上限
	candidates := make([]string, 0, len(segments))
	for _, segment := range segments {
		cleaned := cleanTagSegment(segment)
		if !isValidTag(cleaned) {
			continue
		}
		candidates = append(candidates, cleaned)
		if len(candidates) >= maxTags {
			break
		}
	}

	// 7. 大小写不敏感去重，保留首次出现的写法和顺序
	seen := make(map[string]bool, len(candidates))
	tags := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		key := strings.ToLower(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, candidate)
	}

	return tags
}

// normalizeOCRText 归一化OCR原始文本
func normalizeOCRText(text string) string {
	normalized := text

	// 1. 上游返回的文本常含未解码的转义序列
	normalized = strings.ReplaceAll(normalized, `\n`, " ")
	normalized = strings.ReplaceAll(normalized, `\t`, " ")
	normalized = strings.ReplaceAll(normalized, `\r`, " ")

	// 2. 真实换行和制表符同样归一为空格
	normalized = strings.ReplaceAll(normalized, "\n", " ")
	normalized = strings.ReplaceAll(normalized, "\t", " ")
	normalized = strings.ReplaceAll(normalized, "\r", " ")

	// 3. 移除OCR标记符号（组织符号Σ、ocr_前缀残留）
	normalized = strings.ReplaceAll(normalized, "Σ", " ")
	normalized = strings.ReplaceAll(normalized, "ocr_", " ")

	// 4. 压缩连续空白
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")

	return strings.TrimSpace(normalized)
}

// cleanTagSegment 清理单个候选片段
func cleanTagSegment(segment string) string {
	cleaned := strings.TrimSpace(segment)

	// 1. 移除括号注释
	cleaned = parenNotePattern.ReplaceAllString(cleaned, "")

	// 2. 移除行标签前缀
	cleaned = rowLabelPattern.ReplaceAllString(cleaned, "")

	// 3. 从尾部剥离非名字字符（保留字母、空格、连字符、句点、撇号）
	cleaned = strings.TrimRightFunc(cleaned, func(r rune) bool {
		return !isNameRune(r)
	})

	return strings.TrimSpace(cleaned)
}

// isValidTag 判断清理后的片段是否为有效的人名标签
func isValidTag(tag string) bool {
	// 空或过短
	if utf8.RuneCountInString(tag) < 2 {
		return false
	}

	// 不含任何字母
	if !containsLetter(tag) {
		return false
	}

	// 命中结构词停用表
	if tagStopWords[strings.ToLower(tag)] {
		return false
	}

	// 过短且不含空格的单词视为噪声而非名字
	if utf8.RuneCountInString(tag) < 3 && !strings.Contains(tag, " ") {
		return false
	}

	return true
}

// isNameRune 判断字符是否允许出现在名字尾部
func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || r == ' ' || r == '-' || r == '.' || r == '\''
}

// containsLetter 检查字符串是否包含字母字符
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
